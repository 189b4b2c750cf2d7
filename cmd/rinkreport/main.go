package main

import (
	"os"

	"github.com/coldrink/rinkreport/cmd/rinkreport/commands"
)

// main is the entry point for the rinkreport CLI:
// go run ./cmd/rinkreport [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
