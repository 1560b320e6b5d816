package password

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyAlphabet       = errors.New("no characters available: select at least one character category or a custom charset")
	ErrGenerationExhausted = errors.New("could not generate a compliant password")
	ErrInvalidRules        = errors.New("invalid password rules")
	ErrUnknownPreset       = errors.New("unknown strength preset")
	ErrPresetLocked        = errors.New("only the custom preset can be overridden")
)

// ExhaustedError is returned when the compliance loop runs out of attempts.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts; try relaxing the rules", ErrGenerationExhausted, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrGenerationExhausted
}

// RulesError lists every problem found while validating a rule set.
type RulesError struct {
	Problems []string
}

func (e *RulesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRules, strings.Join(e.Problems, "; "))
}

func (e *RulesError) Unwrap() error {
	return ErrInvalidRules
}
