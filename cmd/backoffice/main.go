package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/gctalent/talent-backoffice/internal/config"
)

func main() {
	if err := newRootCommand(config.NewConfiguration()).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
