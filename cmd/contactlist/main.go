// Package main is the entry point for the contactlist CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/leeovery/contactlist/internal/cli"
)

func main() {
	os.Exit(run(os.Args, os.Getwd, os.Stdout, os.Stderr))
}

// run resolves the working directory with getwd and runs the CLI in it.
func run(args []string, getwd func() (string, error), stdout, stderr io.Writer) int {
	dir, err := getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to determine working directory: %s\n", err)
		return 1
	}
	return cli.NewApp(stdout, stderr).Run(args, dir)
}
