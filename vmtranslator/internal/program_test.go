package internal

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateProgram_KeepsUnitOrder(t *testing.T) {
	config := DefaultConfig()
	config.Parallel = 3
	translator, _ := newTestTranslator(config)
	var units []Unit
	var want strings.Builder
	for i := 0; i < 20; i++ {
		unit := Unit{Module: fmt.Sprintf("M%d", i), Source: fmt.Sprintf("push static %d\npop temp 0", i)}
		units = append(units, unit)
		output, err := translator.TranslateModule(unit.Module, unit.Source)
		require.NoError(t, err)
		want.WriteString(output)
	}
	output, err := translator.TranslateProgram(context.Background(), units)
	require.NoError(t, err)
	assert.Equal(t, want.String(), output)
}

func TestTranslateProgram_DuplicateModule(t *testing.T) {
	translator, _ := newTestTranslator(DefaultConfig())
	_, err := translator.TranslateProgram(context.Background(), []Unit{
		{Module: "Foo", Source: "push constant 1"},
		{Module: "Bar", Source: "push constant 1"},
		{Module: "Foo", Source: "push constant 2"},
	})
	assert.ErrorIs(t, err, ErrDuplicateModule)
}

func TestTranslateProgram_FailureReturnsNothing(t *testing.T) {
	translator, _ := newTestTranslator(DefaultConfig())
	output, err := translator.TranslateProgram(context.Background(), []Unit{
		{Module: "Foo", Source: "push constant 1"},
		{Module: "Bar", Source: "push local abc"},
	})
	assert.ErrorIs(t, err, ErrMalformedOperand)
	assert.Empty(t, output)
}

func TestTranslateProgram_CanceledContext(t *testing.T) {
	translator, _ := newTestTranslator(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := translator.TranslateProgram(ctx, []Unit{{Module: "Foo", Source: "push constant 1"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslateProgram_Bootstrap(t *testing.T) {
	fragment, err := Bootstrap()
	require.NoError(t, err)
	bootstrap := fragment.String()
	require.True(t, strings.HasPrefix(bootstrap, "@256\nD=A\n@SP\nM=D\n"))
	require.Contains(t, bootstrap, "@Sys.init\n0;JMP\n($bootstrap$$ret.0)\n")

	testData := []struct {
		mode    BootstrapMode
		modules []string
		want    bool
	}{
		{BootstrapAuto, []string{"Main", "Sys"}, true},
		{BootstrapAuto, []string{"Main"}, false},
		{BootstrapAlways, []string{"Main"}, true},
		{BootstrapNever, []string{"Main", "Sys"}, false},
	}
	for _, data := range testData {
		config := DefaultConfig()
		config.Bootstrap = data.mode
		translator, _ := newTestTranslator(config)
		var units []Unit
		for _, module := range data.modules {
			units = append(units, Unit{Module: module, Source: "push constant 0"})
		}
		output, err := translator.TranslateProgram(context.Background(), units)
		require.NoError(t, err)
		assert.Equal(t, data.want, strings.HasPrefix(output, bootstrap), "%s %v", data.mode, data.modules)
	}
}
