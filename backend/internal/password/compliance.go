package password

import (
	"fmt"
	"strings"
	"unicode"
)

// Category is one of the four character classes rules can constrain.
type Category int

const (
	CategoryUpper Category = iota
	CategoryLower
	CategoryDigit
	CategorySpecial
)

var categories = [...]Category{CategoryUpper, CategoryLower, CategoryDigit, CategorySpecial}

func (c Category) String() string {
	switch c {
	case CategoryUpper:
		return "uppercase"
	case CategoryLower:
		return "lowercase"
	case CategoryDigit:
		return "digit"
	default:
		return "special"
	}
}

// Classify assigns r to a category. Anything that is neither a letter nor a digit
// is special; letters without case count as lowercase.
func Classify(r rune) Category {
	switch {
	case unicode.IsUpper(r):
		return CategoryUpper
	case unicode.IsLetter(r):
		return CategoryLower
	case unicode.IsDigit(r):
		return CategoryDigit
	default:
		return CategorySpecial
	}
}

// Counts holds the number of characters per category.
type Counts struct {
	Upper   int `json:"upper"`
	Lower   int `json:"lower"`
	Digit   int `json:"digit"`
	Special int `json:"special"`
}

// Get returns the count for c.
func (c Counts) Get(cat Category) int {
	switch cat {
	case CategoryUpper:
		return c.Upper
	case CategoryLower:
		return c.Lower
	case CategoryDigit:
		return c.Digit
	default:
		return c.Special
	}
}

func (c *Counts) add(cat Category, delta int) {
	switch cat {
	case CategoryUpper:
		c.Upper += delta
	case CategoryLower:
		c.Lower += delta
	case CategoryDigit:
		c.Digit += delta
	default:
		c.Special += delta
	}
}

// CountByCategory counts the characters of password per category.
func CountByCategory(password string) Counts {
	return countRunes([]rune(password))
}

func countRunes(runes []rune) Counts {
	var c Counts
	for _, r := range runes {
		c.add(Classify(r), 1)
	}
	return c
}

// minimumFor returns the configured minimum for a category, or nil.
func minimumFor(rules Rules, cat Category) *int {
	switch cat {
	case CategoryUpper:
		return rules.MinUppercase
	case CategoryLower:
		return rules.MinLowercase
	case CategoryDigit:
		return rules.MinDigits
	default:
		return rules.MinSpecial
	}
}

// HasRepeatedRun reports whether any three consecutive characters are identical.
func HasRepeatedRun(password string) bool {
	runes := []rune(password)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			return true
		}
	}
	return false
}

var sequenceWindows = buildSequenceWindows(
	LowercaseChars,
	reverse(LowercaseChars),
	UppercaseChars,
	reverse(UppercaseChars),
	DigitChars,
	reverse(DigitChars),
)

func buildSequenceWindows(sequences ...string) map[string]struct{} {
	windows := make(map[string]struct{})
	for _, seq := range sequences {
		for i := 0; i+3 <= len(seq); i++ {
			windows[seq[i:i+3]] = struct{}{}
		}
	}
	return windows
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// HasSequentialRun reports whether password contains a run of three ascending or
// descending letters (same case) or digits, such as "abc", "CBA" or "789".
func HasSequentialRun(password string) bool {
	runes := []rune(password)
	for i := 0; i+3 <= len(runes); i++ {
		if _, ok := sequenceWindows[string(runes[i:i+3])]; ok {
			return true
		}
	}
	return false
}

// DefaultWords is the fallback dictionary used when no word list can be loaded.
var DefaultWords = []string{
	"password",
	"123456",
	"12345678",
	"qwerty",
	"abc123",
	"monkey",
	"letmein",
	"dragon",
	"111111",
	"baseball",
	"iloveyou",
	"trustno1",
	"sunshine",
	"master",
	"welcome",
}

// minWordLength is the shortest dictionary word that is matched.
const minWordLength = 4

// WordList supplies dictionary words to a Checker.
type WordList interface {
	Words() []string
}

// StaticWords is a fixed WordList.
type StaticWords []string

func (w StaticWords) Words() []string {
	return w
}

// Checker evaluates passwords against rules. It is stateless apart from the word list.
type Checker struct {
	words WordList
}

// NewChecker returns a checker that matches against words, or DefaultWords when nil.
func NewChecker(words WordList) *Checker {
	if words == nil {
		words = StaticWords(DefaultWords)
	}
	return &Checker{words: words}
}

// HasDictionaryWord reports whether password contains any listed word of at least
// four characters, ignoring case.
func (c *Checker) HasDictionaryWord(password string) bool {
	lower := strings.ToLower(password)
	for _, word := range c.words.Words() {
		if len([]rune(word)) < minWordLength {
			continue
		}
		if strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// Satisfies reports whether password meets every minimum count and anti-pattern rule.
func (c *Checker) Satisfies(password string, rules Rules) bool {
	counts := CountByCategory(password)
	for _, cat := range categories {
		if m := minimumFor(rules, cat); m != nil && counts.Get(cat) < *m {
			return false
		}
	}
	if rules.AvoidRepeatedChars && HasRepeatedRun(password) {
		return false
	}
	if rules.AvoidSequentialChars && HasSequentialRun(password) {
		return false
	}
	if rules.AvoidDictionaryWords && c.HasDictionaryWord(password) {
		return false
	}
	return true
}

// Violations describes every rule password breaks. It is empty exactly when
// Satisfies returns true.
func (c *Checker) Violations(password string, rules Rules) []string {
	violations := make([]string, 0)
	counts := CountByCategory(password)
	for _, cat := range categories {
		if m := minimumFor(rules, cat); m != nil && counts.Get(cat) < *m {
			violations = append(violations, fmt.Sprintf("needs at least %d %s characters, has %d", *m, cat, counts.Get(cat)))
		}
	}
	if rules.AvoidRepeatedChars && HasRepeatedRun(password) {
		violations = append(violations, "contains three identical characters in a row")
	}
	if rules.AvoidSequentialChars && HasSequentialRun(password) {
		violations = append(violations, "contains a sequential run such as abc or 321")
	}
	if rules.AvoidDictionaryWords && c.HasDictionaryWord(password) {
		violations = append(violations, "contains a common dictionary word")
	}
	return violations
}
