package main

import (
	"fmt"
	"os"

	"wallet-advisor/internal/cli"
	"wallet-advisor/internal/config"
	"wallet-advisor/internal/logging"
)

func main() {
	// The config flag is read before cobra parses flags so the directory
	// can influence construction of the command tree itself.
	configDir := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
