package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/monolint/cmd/cli"
	"github.com/temirov/monolint/internal/check"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the monolint command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		if !errors.Is(executionError, check.ErrIssuesFound) {
			fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		}
		os.Exit(1)
	}
}
