package main

import (
	"os"

	"github.com/temirov/grass/cmd/cli"
)

// main executes the grass command-line application.
func main() {
	os.Exit(cli.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
