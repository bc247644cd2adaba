package main

import (
	"os"

	"github.com/atlas/quota-engine/cmd/quota/commands"
)

// main is the entry point for the quota CLI: quota [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
