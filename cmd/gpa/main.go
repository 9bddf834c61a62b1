package main

import (
	"os"

	"github.com/wonny/gpacalc/cmd/gpa/commands"
)

// main is the entry point for the gpa CLI: go run ./cmd/gpa [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
