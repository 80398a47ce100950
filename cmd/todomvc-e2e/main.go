package main

import (
	"fmt"
	"os"

	"github.com/thruflo/todomvc-e2e/internal/cli"
	"github.com/thruflo/todomvc-e2e/internal/exitcode"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitcode.From(err))
	}
}
