package password

import "fmt"

// MaxAttempts bounds the compliance loop.
const MaxAttempts = 100

// Result is a compliant password plus the number of candidates it took.
type Result struct {
	Password string
	Attempts int
}

// Generator produces passwords that satisfy a rule set.
// A Generator holds no per-call state and may be shared between goroutines.
type Generator struct {
	source   *SecureSource
	injector *Injector
	checker  *Checker
}

// NewGenerator returns a generator backed by crypto/rand that checks dictionary
// rules against checker. A nil checker uses DefaultWords.
func NewGenerator(checker *Checker) *Generator {
	return newGenerator(NewSecureSource(), checker)
}

func newGenerator(source *SecureSource, checker *Checker) *Generator {
	if checker == nil {
		checker = NewChecker(nil)
	}
	return &Generator{
		source:   source,
		injector: NewInjector(source),
		checker:  checker,
	}
}

// Checker returns the checker used to validate candidates.
func (g *Generator) Checker() *Checker {
	return g.checker
}

// Generate returns a password satisfying rules.
//
// It fails with a *RulesError when the rules are malformed or their minimums exceed
// the length, with ErrEmptyAlphabet when no characters are selected, and with an
// *ExhaustedError when MaxAttempts candidates were all rejected.
func (g *Generator) Generate(rules Rules) (Result, error) {
	if err := rules.Validate(); err != nil {
		return Result{}, err
	}

	alphabet := []rune(BuildCharset(rules))
	if len(alphabet) == 0 {
		return Result{}, ErrEmptyAlphabet
	}

	candidate := make([]rune, rules.Length)
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		for i := range candidate {
			ch, err := g.source.Select(alphabet)
			if err != nil {
				return Result{}, err
			}
			candidate[i] = ch
		}

		enforced, err := g.injector.Enforce(candidate, rules, PlaceAtRandom)
		if err != nil {
			return Result{}, fmt.Errorf("failed to enforce minimum counts: %w", err)
		}

		pw := string(enforced)
		if g.checker.Satisfies(pw, rules) {
			return Result{Password: pw, Attempts: attempt}, nil
		}
	}

	return Result{}, &ExhaustedError{Attempts: MaxAttempts}
}
