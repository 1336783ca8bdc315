// main is the entry point for the gitpulse CLI.
package main

import (
	"os"

	"github.com/gitpulse/gitpulse/cmd"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Close explicitly instead of deferring; os.Exit skips defers.
	iocache.CloseCaching()

	if err != nil {
		contract.LogWarn("command failed", err)
		os.Exit(1)
	}
}
