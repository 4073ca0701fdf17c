package main

import (
	"os"

	"github.com/wonny/putscreener/cmd/putscreener/commands"
)

// main is the entry point for the put screener CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/putscreener [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
