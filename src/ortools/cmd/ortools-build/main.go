package main

import (
	"fmt"
	"os"

	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ortools.ExitCode(err))
	}
}
