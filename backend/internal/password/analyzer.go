package password

import (
	"fmt"
	"math"
)

// Pool sizes used for entropy estimates, per category present in the password.
const (
	UppercasePoolSize = 26
	LowercasePoolSize = 26
	DigitPoolSize     = 10
	SpecialPoolSize   = 33

	// GuessesPerSecond is the assumed offline attacker throughput.
	GuessesPerSecond = 1e10
)

const (
	secondsPerMinute     = 60
	secondsPerHour       = 3600
	secondsPerDay        = 86400
	secondsPerYear       = 31536000
	secondsPerCentury    = 100 * secondsPerYear
	secondsPerMillennium = 1000 * secondsPerYear
)

// MinRecommendedLength is the length below which a suggestion to lengthen is made.
const MinRecommendedLength = 12

// AnalysisResult is the strength report for one password.
type AnalysisResult struct {
	EntropyBits      float64  `json:"entropy_bits"`
	CrackTime        string   `json:"crack_time"`
	CrackTimeSeconds float64  `json:"crack_time_seconds"`
	PoolSize         int      `json:"pool_size"`
	Suggestions      []string `json:"suggestions"`
	Score            int      `json:"score"`
}

// Analyzer estimates password strength. It is pure: the same password always
// yields the same result.
type Analyzer struct {
	checker *Checker
}

// NewAnalyzer returns an analyzer whose dictionary suggestion uses checker.
func NewAnalyzer(checker *Checker) *Analyzer {
	if checker == nil {
		checker = NewChecker(nil)
	}
	return &Analyzer{checker: checker}
}

// Analyze builds the full report for password. It never fails.
func (a *Analyzer) Analyze(password string) AnalysisResult {
	bits := EntropyBits(password)
	seconds := CrackTimeSeconds(bits)
	if math.IsInf(seconds, 1) {
		// Keep the report JSON-encodable for very long passwords.
		seconds = math.MaxFloat64
	}
	return AnalysisResult{
		EntropyBits:      bits,
		CrackTime:        EstimateCrackTime(seconds),
		CrackTimeSeconds: seconds,
		PoolSize:         PoolSize(password),
		Suggestions:      a.Suggestions(password),
		Score:            StrengthScore(bits),
	}
}

// PoolSize sums the pool sizes of the categories present in password.
func PoolSize(password string) int {
	counts := CountByCategory(password)
	pool := 0
	if counts.Upper > 0 {
		pool += UppercasePoolSize
	}
	if counts.Lower > 0 {
		pool += LowercasePoolSize
	}
	if counts.Digit > 0 {
		pool += DigitPoolSize
	}
	if counts.Special > 0 {
		pool += SpecialPoolSize
	}
	return pool
}

// EntropyBits is length * log2(pool). An empty password has zero entropy.
func EntropyBits(password string) float64 {
	pool := PoolSize(password)
	if pool == 0 {
		return 0
	}
	return float64(len([]rune(password))) * math.Log2(float64(pool))
}

// CrackTimeSeconds is the expected time to exhaust the keyspace at GuessesPerSecond.
func CrackTimeSeconds(entropyBits float64) float64 {
	return math.Pow(2, entropyBits) / GuessesPerSecond
}

// EstimateCrackTime turns a number of seconds into a human readable bucket.
func EstimateCrackTime(seconds float64) string {
	switch {
	case seconds < 1:
		return "Instantly"
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%d seconds", int(seconds))
	case seconds < secondsPerHour:
		return fmt.Sprintf("%d minutes", int(seconds/secondsPerMinute))
	case seconds < secondsPerDay:
		return fmt.Sprintf("%d hours", int(seconds/secondsPerHour))
	case seconds < secondsPerYear:
		return fmt.Sprintf("%d days", int(seconds/secondsPerDay))
	case seconds < secondsPerCentury:
		return fmt.Sprintf("%d years", int(seconds/secondsPerYear))
	case seconds < secondsPerMillennium:
		return fmt.Sprintf("%d centuries", int(seconds/secondsPerCentury))
	default:
		return "Millions of years or more"
	}
}

// StrengthScore maps entropy to a score from 1 (weak) to 5 (very strong).
func StrengthScore(entropyBits float64) int {
	switch {
	case entropyBits < 28:
		return 1
	case entropyBits < 36:
		return 2
	case entropyBits < 60:
		return 3
	case entropyBits < 80:
		return 4
	default:
		return 5
	}
}

// Suggestions lists improvements for password, in a fixed order.
func (a *Analyzer) Suggestions(password string) []string {
	suggestions := make([]string, 0)
	counts := CountByCategory(password)

	if len([]rune(password)) < MinRecommendedLength {
		suggestions = append(suggestions, fmt.Sprintf("Use at least %d characters", MinRecommendedLength))
	}
	if counts.Upper == 0 {
		suggestions = append(suggestions, "Add uppercase letters")
	}
	if counts.Lower == 0 {
		suggestions = append(suggestions, "Add lowercase letters")
	}
	if counts.Digit == 0 {
		suggestions = append(suggestions, "Add numbers")
	}
	if counts.Special == 0 {
		suggestions = append(suggestions, "Add special characters (!@#$%^&*)")
	}
	if HasSequentialRun(password) {
		suggestions = append(suggestions, "Avoid sequential patterns like abc or 123")
	}
	if a.checker.HasDictionaryWord(password) {
		suggestions = append(suggestions, "Avoid common words and passwords")
	}
	if HasRepeatedRun(password) {
		suggestions = append(suggestions, "Avoid repeating the same character three times in a row")
	}

	return suggestions
}
