package password

import "strings"

const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	DigitChars     = "0123456789"
	// SpecialChars is every printable ASCII punctuation character.
	SpecialChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// SimilarChars look alike in many fonts.
	SimilarChars = "il1IoO0"
	// AmbiguousChars are brackets, quotes and punctuation that are easy to mistype or
	// that break shells and config files.
	AmbiguousChars = "{}[]()/\\'\"`~,;:.<>"
)

// BuildCharset returns the alphabet described by rules.
// A custom charset is returned verbatim and bypasses the exclusion flags.
// The result is empty when no category is selected.
func BuildCharset(rules Rules) string {
	if rules.CustomCharset != nil {
		return *rules.CustomCharset
	}

	var sb strings.Builder
	if rules.IncludeUppercase {
		sb.WriteString(UppercaseChars)
	}
	if rules.IncludeLowercase {
		sb.WriteString(LowercaseChars)
	}
	if rules.IncludeDigits {
		sb.WriteString(DigitChars)
	}
	if rules.IncludeSpecial {
		sb.WriteString(SpecialChars)
	}

	return applyExclusions(sb.String(), rules)
}

// categoryAlphabet is the pool injected characters are drawn from for one category.
// Exclusions still apply so that injection never reintroduces a filtered character.
func categoryAlphabet(c Category, rules Rules) []rune {
	var base string
	switch c {
	case CategoryUpper:
		base = UppercaseChars
	case CategoryLower:
		base = LowercaseChars
	case CategoryDigit:
		base = DigitChars
	default:
		base = SpecialChars
	}
	if rules.CustomCharset != nil {
		return []rune(base)
	}
	if filtered := applyExclusions(base, rules); filtered != "" {
		return []rune(filtered)
	}
	return []rune(base)
}

func applyExclusions(chars string, rules Rules) string {
	if rules.ExcludeSimilarChars {
		chars = removeChars(chars, SimilarChars)
	}
	if rules.ExcludeAmbiguousChars {
		chars = removeChars(chars, AmbiguousChars)
	}
	return chars
}

func removeChars(chars, drop string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(drop, r) {
			return -1
		}
		return r
	}, chars)
}
