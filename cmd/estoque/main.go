package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "estoque: %v\n", err)
		os.Exit(1)
	}
}
