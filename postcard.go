package main

import (
	"log"

	"tableflip.dev/postcard/pkg/commands"
)

// Set by the linker, e.g. -ldflags "-X main.version=v0.1.0".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.AppVersion = version
	commands.Commit = commit
	commands.Date = date
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
