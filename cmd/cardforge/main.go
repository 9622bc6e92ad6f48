// Package main provides the cardforge CLI, which turns a markdown profile and
// a photo into a presentation card.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/jonathan/cardforge/internal/config"
	"github.com/jonathan/cardforge/internal/parsing"
	"github.com/jonathan/cardforge/internal/rendering"
)

// Exit codes
const (
	exitFailure = 1
	exitInput   = 2 // Profile or photo cannot be used
	exitConfig  = 3
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	var parseErr *parsing.ParseError
	var layoutErr *rendering.LayoutError
	var configErr *config.Error

	switch {
	case err == nil:
		return 0
	case errors.As(err, &parseErr), errors.As(err, &layoutErr):
		return exitInput
	case errors.As(err, &configErr):
		return exitConfig
	default:
		return exitFailure
	}
}
