package password

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrengthScore(t *testing.T) {
	tests := []struct {
		bits float64
		want int
	}{
		{0, 1},
		{20, 1},
		{27.99, 1},
		{28, 2},
		{35.9, 2},
		{36, 3},
		{59.9, 3},
		{60, 4},
		{79.9, 4},
		{80, 5},
		{85, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StrengthScore(tc.bits), "bits=%v", tc.bits)
	}
}

func TestEstimateCrackTime(t *testing.T) {
	assert.Equal(t, "Instantly", EstimateCrackTime(CrackTimeSeconds(0)))

	tests := []struct {
		seconds float64
		want    string
	}{
		{0.5, "Instantly"},
		{30, "30 seconds"},
		{120, "2 minutes"},
		{7200, "2 hours"},
		{3 * 86400, "3 days"},
		{5 * 31536000, "5 years"},
		{300 * 31536000, "3 centuries"},
		{5000 * 31536000, "Millions of years or more"},
		{math.Inf(1), "Millions of years or more"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, EstimateCrackTime(tc.seconds), "seconds=%v", tc.seconds)
	}
}

func TestEntropyBits(t *testing.T) {
	assert.Equal(t, 0.0, EntropyBits(""))
	assert.Equal(t, 0, PoolSize(""))

	assert.InDelta(t, 8*math.Log2(26), EntropyBits("abcdefgh"), 1e-9)
	assert.InDelta(t, 4*math.Log2(95), EntropyBits("aA1!"), 1e-9)
	assert.Equal(t, 62, PoolSize("aZ9"))
	assert.Equal(t, 33, PoolSize(" "))
}

func TestEntropyBits_MonotonicInLength(t *testing.T) {
	base := "aB3$"
	prev := -1.0
	for n := 1; n <= 40; n++ {
		pw := strings.Repeat(base, 10)[:n]
		bits := EntropyBits(pw)
		assert.GreaterOrEqual(t, bits, prev, "length %d", n)
		prev = bits
	}

	// Same pool, one more character.
	assert.Greater(t, EntropyBits("abcdefghi"), EntropyBits("abcdefgh"))
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := NewAnalyzer(nil)
	for _, pw := range []string{"", "password", "Tr0ub4dor&3", "correct horse battery staple"} {
		assert.Equal(t, a.Analyze(pw), a.Analyze(pw), pw)
	}
}

func TestAnalyze_EmptyPassword(t *testing.T) {
	res := NewAnalyzer(nil).Analyze("")
	assert.Equal(t, 0.0, res.EntropyBits)
	assert.Equal(t, "Instantly", res.CrackTime)
	assert.Equal(t, 1, res.Score)
	assert.NotEmpty(t, res.Suggestions)
}

func TestSuggestions(t *testing.T) {
	a := NewAnalyzer(nil)

	assert.Equal(t, []string{
		"Use at least 12 characters",
		"Add uppercase letters",
		"Add numbers",
		"Add special characters (!@#$%^&*)",
		"Avoid sequential patterns like abc or 123",
	}, a.Suggestions("abc"))

	assert.Equal(t, []string{
		"Add uppercase letters",
		"Add special characters (!@#$%^&*)",
		"Avoid common words and passwords",
		"Avoid repeating the same character three times in a row",
	}, a.Suggestions("password9999"))

	assert.Empty(t, a.Suggestions("Kz8#qLm2vX!7"))
}

func TestAnalyze_StrongPassword(t *testing.T) {
	res := NewAnalyzer(nil).Analyze("Kz8#qLm2vX!7pR4$")
	assert.Equal(t, 5, res.Score)
	assert.Equal(t, 95, res.PoolSize)
	assert.Equal(t, "Millions of years or more", res.CrackTime)
	assert.Empty(t, res.Suggestions)
}

func TestAnalyze_VeryLongPasswordIsFinite(t *testing.T) {
	res := NewAnalyzer(nil).Analyze(strings.Repeat("aB3$", 1024))
	assert.False(t, math.IsInf(res.CrackTimeSeconds, 0))
	assert.Equal(t, "Millions of years or more", res.CrackTime)
	assert.Equal(t, 5, res.Score)
}
