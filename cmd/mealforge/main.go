// Package main is the entry point for the mealforge CLI.
package main

import (
	"os"

	"github.com/mealforge/mealforge/cmd/mealforge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
