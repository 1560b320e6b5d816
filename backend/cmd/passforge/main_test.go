package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"passforge/backend/internal/auth"
	"passforge/backend/internal/password"
	"passforge/backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in an empty working directory so no config or
// .env file from the repository is picked up.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestGenerate_DefaultPreset(t *testing.T) {
	out, _, err := execute(t, "", "generate")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 1)
	assert.Len(t, got[0], password.DefaultRules().Length)
}

func TestGenerate_PresetAndCount(t *testing.T) {
	out, _, err := execute(t, "", "generate", "--preset", "strong", "--count", "3")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 3)
	for _, pw := range got {
		assert.Len(t, pw, 16)
		assert.NotContains(t, pw, "0")
		assert.False(t, password.HasSequentialRun(pw), pw)
	}
}

func TestGenerate_RuleFlags(t *testing.T) {
	out, _, err := execute(t, "",
		"generate", "--length", "20",
		"--special=false", "--min-digits", "5", "--avoid-repeated", "--json",
	)
	require.NoError(t, err)

	var res generateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "custom", res.Preset)
	assert.Equal(t, 20, res.Rules.Length)
	assert.False(t, res.Rules.IncludeSpecial)
	require.NotNil(t, res.Rules.MinDigits)
	assert.Equal(t, 5, *res.Rules.MinDigits)
	require.Len(t, res.Passwords, 1)

	counts := password.CountByCategory(res.Passwords[0])
	assert.GreaterOrEqual(t, counts.Get(password.CategoryDigit), 5)
	assert.Zero(t, counts.Get(password.CategorySpecial))
	assert.Empty(t, res.Analysis)
}

func TestGenerate_Charset(t *testing.T) {
	out, _, err := execute(t, "", "generate", "--charset", "xyz", "--length", "12")
	require.NoError(t, err)

	pw := lines(out)[0]
	assert.Len(t, pw, 12)
	assert.Empty(t, strings.Trim(pw, "xyz"))
}

func TestGenerate_Analyze(t *testing.T) {
	out, _, err := execute(t, "", "generate", "--preset", "medium", "--analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Entropy:")
	assert.Contains(t, out, "Crack time:")
}

func TestGenerate_RulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`preset: custom
rules:
  length: 10
  include_uppercase: false
  include_lowercase: true
  include_digits: true
  include_special: false
  min_digits: 2
`), 0o644))

	out, _, err := execute(t, "", "generate", "--rules-file", path, "--length", "14", "--json")
	require.NoError(t, err)

	var res generateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 14, res.Rules.Length, "flags override the file")
	assert.False(t, res.Rules.IncludeUppercase)
	require.NotNil(t, res.Rules.MinDigits)
	assert.Equal(t, 2, *res.Rules.MinDigits)
	assert.Len(t, res.Passwords[0], 14)
}

func TestGenerate_RulesFileUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  lenght: 10\n"), 0o644))

	_, _, err := execute(t, "", "generate", "--rules-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rules file")
}

func TestGenerate_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.txt")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer than a password\n"), 0o644))

	out, errOut, err := execute(t, "", "generate", "--count", "2", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Wrote 2 password(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, lines(string(data)), 2)
	assert.NotContains(t, string(data), "old contents")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
		code int
	}{
		{"unknown preset", []string{"--preset", "ultra"}, password.ErrUnknownPreset, exitBadRules},
		{"locked preset", []string{"--preset", "strong", "--length", "30"}, password.ErrInvalidRules, exitBadRules},
		{"minimums exceed length", []string{"--length", "4", "--min-digits", "3", "--min-upper", "3"}, password.ErrInvalidRules, exitBadRules},
		{"empty alphabet", []string{"--upper=false", "--lower=false", "--digits=false", "--special=false"}, password.ErrEmptyAlphabet, exitBadRules},
		{"exhausted", []string{"--charset", "a", "--length", "5", "--avoid-repeated"}, password.ErrGenerationExhausted, exitExhausted},
		{"zero count", []string{"--count", "0"}, service.ErrInvalidCount, exitBadRules},
		{"batch too large", []string{"--count", "5000"}, service.ErrBatchTooLarge, exitBadRules},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", append([]string{"generate"}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitError, exitCode(errors.New("boom")))
	assert.Equal(t, exitExhausted, exitCode(fmt.Errorf("wrapped: %w", &password.ExhaustedError{Attempts: 100})))
	assert.Equal(t, exitBadRules, exitCode(&password.RulesError{Problems: []string{"x"}}))
	assert.Equal(t, exitBadRules, exitCode(fmt.Errorf("%w: got 0", service.ErrInvalidCount)))
	assert.Equal(t, exitBadRules, exitCode(fmt.Errorf("%w: 5000 > 100", service.ErrBatchTooLarge)))
}

func TestAnalyze_Argument(t *testing.T) {
	out, _, err := execute(t, "", "analyze", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:")
	assert.Contains(t, out, "Pool size:  26")
	assert.Contains(t, out, "common")
}

func TestAnalyze_StdinJSON(t *testing.T) {
	out, _, err := execute(t, "Tr0ub4dor&3Horse!\n", "analyze", "--json")
	require.NoError(t, err)

	var res password.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 95, res.PoolSize)
	assert.Equal(t, password.StrengthScore(res.EntropyBits), res.Score)
}

func TestAnalyze_NoInput(t *testing.T) {
	_, _, err := execute(t, "", "analyze")
	assert.ErrorIs(t, err, errNoPassword)
}

func TestPresets(t *testing.T) {
	out, _, err := execute(t, "", "presets")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 1+len(password.PresetNames()))
	assert.Contains(t, got[0], "PRESET")
	assert.True(t, strings.HasPrefix(got[1], "basic"))
	assert.True(t, strings.HasPrefix(got[4], "very-strong"))
	assert.Contains(t, got[4], "dictionary")
	assert.Contains(t, got[3], "A>=2")
}

func TestConfigValidateAndShow(t *testing.T) {
	out, _, err := execute(t, "", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, _, err = execute(t, "", "config", "show")
	require.NoError(t, err)
	var shown map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Contains(t, shown, "generator")

	out, _, err = execute(t, "", "config", "show", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Audit store: disabled")
	assert.Contains(t, out, "Dictionary:  built-in")
}

func TestConfigValidate_Invalid(t *testing.T) {
	t.Setenv("PASSFORGE_GENERATOR_DEFAULT_PRESET", "ultra")

	_, _, err := execute(t, "", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestConfigFlag_Missing(t *testing.T) {
	_, _, err := execute(t, "", "--config", "does-not-exist.yaml", "presets")
	require.NoError(t, err, "presets does not load configuration")

	_, _, err = execute(t, "", "--config", "does-not-exist.yaml", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestTokenIssue(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	t.Setenv("PASSFORGE_AUTH_SECRET", secret)

	out, errOut, err := execute(t, "", "token", "issue", "--client", "ci", "--scope", "generate", "--ttl", "2h")
	require.NoError(t, err)
	assert.Contains(t, errOut, `Token for "ci" expires`)

	claims, err := auth.NewTokenService(secret, "passforge", time.Hour).Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Client)
	assert.Equal(t, []string{auth.ScopeGenerate}, claims.Scopes)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenIssue_Errors(t *testing.T) {
	_, _, err := execute(t, "", "token", "issue", "--client", "ci")
	assert.ErrorIs(t, err, errNoSecret)

	t.Setenv("PASSFORGE_AUTH_SECRET", "0123456789abcdef0123456789abcdef")
	_, _, err = execute(t, "", "token", "issue", "--client", "ci", "--scope", "admin")
	assert.ErrorIs(t, err, auth.ErrUnknownScope)

	_, _, err = execute(t, "", "token", "issue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client")
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "very weak", scoreLabel(1))
	assert.Equal(t, "very strong", scoreLabel(5))
	assert.Equal(t, "unknown", scoreLabel(0))
}
