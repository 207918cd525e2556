package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

// A simple program to translate hack vm codes to hack assembler.

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[Translator]: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
