package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks that rules can produce a password at all: a positive length,
// non-negative minimums and minimums that fit inside the length.
func (r Rules) Validate() error {
	var problems []string

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidRules, err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf(
				"field '%s' failed validation: %s",
				fe.Field(),
				describeTag(fe),
			))
		}
	}

	// Each minimum is bounded by Length before summing so the total cannot overflow.
	fits := true
	for _, m := range []struct {
		name string
		min  *int
	}{
		{"MinUppercase", r.MinUppercase},
		{"MinLowercase", r.MinLowercase},
		{"MinDigits", r.MinDigits},
		{"MinSpecial", r.MinSpecial},
	} {
		if m.min != nil && *m.min > r.Length {
			fits = false
			problems = append(problems, fmt.Sprintf(
				"field '%s' is %d but length is %d", m.name, *m.min, r.Length,
			))
		}
	}

	if total := r.MinimumTotal(); fits && r.Length > 0 && total > r.Length {
		problems = append(problems, fmt.Sprintf(
			"minimum counts add up to %d but length is %d", total, r.Length,
		))
	}

	if len(problems) > 0 {
		return &RulesError{Problems: problems}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return strings.Join([]string{fe.Tag(), fe.Param()}, "=")
}
