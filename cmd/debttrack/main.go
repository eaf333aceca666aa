package main

import (
	"os"

	"github.com/cemilcan0/debt-tracking-app/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
