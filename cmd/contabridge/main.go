package main

import (
	"os"

	"github.com/contabridge-dev/contabridge/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
