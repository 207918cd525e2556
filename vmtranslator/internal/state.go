package internal

import (
	"fmt"
	"strings"

	"github.com/xiaobogaga/hackvm/util"
)

// TranslationState is the context threaded through parsing and rendering of
// one module. The module name scopes static cells; the enclosing function
// scopes branch labels and return addresses; labelID keeps generated labels
// unique within the module.
type TranslationState struct {
	Module   string
	Function string
	labelID  int
}

func NewTranslationState(module string) *TranslationState {
	return &TranslationState{Module: module}
}

// Scope is the prefix for labels declared by the current line: the enclosing
// function, or the module for code outside any function.
func (state *TranslationState) Scope() string {
	if state.Function != "" {
		return state.Function
	}
	return state.Module
}

func (state *TranslationState) nextLabelID() int {
	id := state.labelID
	state.labelID++
	return id
}

func staticLabel(module string, index int) string {
	return fmt.Sprintf("%s.%d", module, index)
}

// isStaticLabel reports whether name has the <module>.<index> shape of a
// static cell. The assembler would bind such a symbol to a rom address if it
// were also declared as a function.
func isStaticLabel(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return false
	}
	for i := dot + 1; i < len(name); i++ {
		if !util.IsNumber(name[i]) {
			return false
		}
	}
	return true
}
