// Package password generates passwords that satisfy composition rules and
// estimates the strength of arbitrary passwords.
package password

import (
	"fmt"
	"strings"
)

// Rules describes what a generated password must look like.
// Minimum counts are optional: nil means the category is unconstrained.
type Rules struct {
	Length int `json:"length" yaml:"length" mapstructure:"length" validate:"min=1,max=4096"`

	IncludeUppercase bool `json:"include_uppercase" yaml:"include_uppercase" mapstructure:"include_uppercase"`
	IncludeLowercase bool `json:"include_lowercase" yaml:"include_lowercase" mapstructure:"include_lowercase"`
	IncludeDigits    bool `json:"include_digits" yaml:"include_digits" mapstructure:"include_digits"`
	IncludeSpecial   bool `json:"include_special" yaml:"include_special" mapstructure:"include_special"`

	ExcludeSimilarChars   bool `json:"exclude_similar_chars" yaml:"exclude_similar_chars" mapstructure:"exclude_similar_chars"`
	ExcludeAmbiguousChars bool `json:"exclude_ambiguous_chars" yaml:"exclude_ambiguous_chars" mapstructure:"exclude_ambiguous_chars"`

	MinUppercase *int `json:"min_uppercase,omitempty" yaml:"min_uppercase,omitempty" mapstructure:"min_uppercase" validate:"omitempty,min=0"`
	MinLowercase *int `json:"min_lowercase,omitempty" yaml:"min_lowercase,omitempty" mapstructure:"min_lowercase" validate:"omitempty,min=0"`
	MinDigits    *int `json:"min_digits,omitempty" yaml:"min_digits,omitempty" mapstructure:"min_digits" validate:"omitempty,min=0"`
	MinSpecial   *int `json:"min_special,omitempty" yaml:"min_special,omitempty" mapstructure:"min_special" validate:"omitempty,min=0"`

	// CustomCharset replaces the flag-driven alphabet when set.
	CustomCharset *string `json:"custom_charset,omitempty" yaml:"custom_charset,omitempty" mapstructure:"custom_charset"`

	AvoidRepeatedChars   bool `json:"avoid_repeated_chars" yaml:"avoid_repeated_chars" mapstructure:"avoid_repeated_chars"`
	AvoidSequentialChars bool `json:"avoid_sequential_chars" yaml:"avoid_sequential_chars" mapstructure:"avoid_sequential_chars"`
	AvoidDictionaryWords bool `json:"avoid_dictionary_words" yaml:"avoid_dictionary_words" mapstructure:"avoid_dictionary_words"`
}

// Min returns a pointer to n, for filling the optional minimum fields.
func Min(n int) *int {
	return &n
}

// Charset returns a pointer to s, for filling CustomCharset.
func Charset(s string) *string {
	return &s
}

// MinimumTotal is the sum of every specified minimum count.
func (r Rules) MinimumTotal() int {
	total := 0
	for _, m := range []*int{r.MinUppercase, r.MinLowercase, r.MinDigits, r.MinSpecial} {
		if m != nil {
			total += *m
		}
	}
	return total
}

// Preset names a fixed rule set.
type Preset string

const (
	PresetBasic      Preset = "basic"
	PresetMedium     Preset = "medium"
	PresetStrong     Preset = "strong"
	PresetVeryStrong Preset = "very-strong"
	PresetCustom     Preset = "custom"
)

// DefaultRules is the rule set behind the custom preset.
func DefaultRules() Rules {
	return Rules{
		Length:           16,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeDigits:    true,
		IncludeSpecial:   true,
	}
}

// Rules returns a fresh copy of the preset's rule set.
func (p Preset) Rules() (Rules, error) {
	switch p {
	case PresetBasic:
		return Rules{
			Length:           8,
			IncludeUppercase: true,
			IncludeLowercase: true,
			IncludeDigits:    true,
		}, nil
	case PresetMedium:
		return Rules{
			Length:             12,
			IncludeUppercase:   true,
			IncludeLowercase:   true,
			IncludeDigits:      true,
			IncludeSpecial:     true,
			MinUppercase:       Min(1),
			MinLowercase:       Min(1),
			MinDigits:          Min(1),
			AvoidRepeatedChars: true,
		}, nil
	case PresetStrong:
		return Rules{
			Length:               16,
			IncludeUppercase:     true,
			IncludeLowercase:     true,
			IncludeDigits:        true,
			IncludeSpecial:       true,
			ExcludeSimilarChars:  true,
			MinUppercase:         Min(2),
			MinLowercase:         Min(2),
			MinDigits:            Min(2),
			MinSpecial:           Min(2),
			AvoidRepeatedChars:   true,
			AvoidSequentialChars: true,
		}, nil
	case PresetVeryStrong:
		return Rules{
			Length:                24,
			IncludeUppercase:      true,
			IncludeLowercase:      true,
			IncludeDigits:         true,
			IncludeSpecial:        true,
			ExcludeSimilarChars:   true,
			ExcludeAmbiguousChars: true,
			MinUppercase:          Min(3),
			MinLowercase:          Min(3),
			MinDigits:             Min(3),
			MinSpecial:            Min(3),
			AvoidRepeatedChars:    true,
			AvoidSequentialChars:  true,
			AvoidDictionaryWords:  true,
		}, nil
	case PresetCustom:
		return DefaultRules(), nil
	default:
		return Rules{}, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownPreset, string(p), strings.Join(PresetNames(), ", "))
	}
}

// ParsePreset maps a user supplied name to a Preset. The empty string means custom.
func ParsePreset(name string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return PresetCustom, nil
	}
	if p == "verystrong" || p == "very_strong" {
		p = PresetVeryStrong
	}
	if _, err := p.Rules(); err != nil {
		return "", err
	}
	return p, nil
}

// Resolve returns the preset's rules, replaced by overrides when given.
// Only the custom preset accepts overrides.
func (p Preset) Resolve(overrides *Rules) (Rules, error) {
	rules, err := p.Rules()
	if err != nil {
		return Rules{}, err
	}
	if overrides == nil {
		return rules, nil
	}
	if p != PresetCustom {
		return Rules{}, fmt.Errorf("%w: %w (got %q)", ErrInvalidRules, ErrPresetLocked, string(p))
	}
	return *overrides, nil
}

// Presets returns every preset with its rules, keyed by name.
func Presets() map[Preset]Rules {
	out := make(map[Preset]Rules, 5)
	for _, name := range PresetNames() {
		r, _ := Preset(name).Rules()
		out[Preset(name)] = r
	}
	return out
}

// PresetNames lists the preset names in ascending strength, custom last.
func PresetNames() []string {
	return []string{
		string(PresetBasic),
		string(PresetMedium),
		string(PresetStrong),
		string(PresetVeryStrong),
		string(PresetCustom),
	}
}

