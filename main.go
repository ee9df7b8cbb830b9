package main

import (
	"errors"
	"os"

	"github.com/chinmay1088/evmctl/cmd"
	"github.com/chinmay1088/evmctl/evm"
	"github.com/fatih/color"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, evm.ErrConnect) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Connection failed: %v\n", err)
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
