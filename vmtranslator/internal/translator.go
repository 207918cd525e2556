package internal

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xiaobogaga/hackvm/util"
)

// Translator transforms vm modules to hack assembler code. A Translator holds
// no per-module state, so one can translate many modules concurrently.
type Translator struct {
	config Config
	logger *slog.Logger
}

func NewTranslator(config Config, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{config: config, logger: logger}
}

// TranslateModule translates the vm source of one module. The module name
// prefixes the labels of its static cells, so it must be unique within a
// program.
func (translator *Translator) TranslateModule(module, source string) (string, error) {
	fragment, err := translator.translateModule(module, source)
	if err != nil {
		return "", err
	}
	return fragment.String(), nil
}

func (translator *Translator) translateModule(module, source string) (Fragment, error) {
	if !util.IsSymbol(module) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModuleName, module)
	}
	state := NewTranslationState(module)
	var output Fragment
	operations := 0
	for _, line := range Normalize(source) {
		fragment, recognized, err := translator.translateLine(state, line)
		if err != nil {
			return nil, &TranslationError{Module: module, Line: line.Number, Text: line.Text, Err: err}
		}
		if !recognized {
			if translator.config.Strict {
				return nil, &TranslationError{Module: module, Line: line.Number, Text: line.Text, Err: ErrUnhandledInstruction}
			}
			translator.logger.Debug("skip unrecognized line", "module", module, "line", line.Number, "text", line.Text)
			continue
		}
		operations++
		if translator.config.Comments {
			output = append(output, Comment(line.Text))
		}
		output = append(output, fragment...)
	}
	translator.logger.Info("translated module", "module", module, "operations", operations, "instructions", output.Size())
	return output, nil
}

func (translator *Translator) translateLine(state *TranslationState, line Line) (Fragment, bool, error) {
	op, recognized, err := ParseLine(line.Text, state)
	if err != nil || !recognized {
		return nil, recognized, err
	}
	fragment, err := op.Render(state)
	if errors.Is(err, ErrNotApplicable) {
		if _, ok := op.(*Pop); ok {
			return nil, true, fmt.Errorf("%w: %v", ErrInvalidPopTarget, err)
		}
	}
	if err != nil {
		return nil, true, err
	}
	return fragment, true, nil
}
