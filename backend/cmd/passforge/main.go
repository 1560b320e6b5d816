// Command passforge generates and analyzes passwords from the command line and
// can run the HTTP API.
package main

import (
	"errors"
	"fmt"
	"os"

	"passforge/backend/internal/password"
	"passforge/backend/internal/service"
)

// Exit codes
const (
	exitSuccess   = 0
	exitError     = 1
	exitBadRules  = 2
	exitExhausted = 3
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, password.ErrGenerationExhausted):
		return exitExhausted
	case errors.Is(err, password.ErrInvalidRules),
		errors.Is(err, password.ErrUnknownPreset),
		errors.Is(err, password.ErrEmptyAlphabet),
		errors.Is(err, service.ErrInvalidCount),
		errors.Is(err, service.ErrBatchTooLarge):
		return exitBadRules
	default:
		return exitError
	}
}
