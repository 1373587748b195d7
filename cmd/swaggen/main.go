// Package main provides the entry point for the swaggen CLI.
package main

import (
	"os"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/vitalvas/swagger/internal/cli"
)

func main() {
	log := logger.NewConsoleLogger(os.Stderr)

	app := cli.New(log, os.Stdout)
	if err := app.Execute(); err != nil {
		log.Errorf("Error: %v", err)
		os.Exit(1)
	}
}
