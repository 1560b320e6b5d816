package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"passforge/backend/internal/password"
	"passforge/backend/internal/service"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	preset    string
	rulesFile string
	count     int
	analyze   bool
	output    string
	json      bool

	length           int
	upper            bool
	lower            bool
	digits           bool
	special          bool
	excludeSimilar   bool
	excludeAmbiguous bool
	minUpper         int
	minLower         int
	minDigits        int
	minSpecial       int
	charset          string
	avoidRepeated    bool
	avoidSequential  bool
	avoidDictionary  bool
}

// ruleFlags are the flags that build a custom rule set.
var ruleFlags = []string{
	"length", "upper", "lower", "digits", "special",
	"exclude-similar", "exclude-ambiguous",
	"min-upper", "min-lower", "min-digits", "min-special",
	"charset", "avoid-repeated", "avoid-sequential", "avoid-dictionary",
}

type generateOutput struct {
	Preset    string                    `json:"preset"`
	Rules     password.Rules            `json:"rules"`
	Passwords []string                  `json:"passwords"`
	Attempts  []int                     `json:"attempts"`
	Analysis  []password.AnalysisResult `json:"analysis,omitempty"`
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	defaults := password.DefaultRules()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more passwords",
		Example: `  passforge generate --preset strong
  passforge generate --length 24 --min-digits 4 --avoid-sequential --count 5
  passforge generate --rules-file team.yaml --output secrets.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, global, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.preset, "preset", "p", "", "preset: basic, medium, strong, very-strong, custom (default from config)")
	f.StringVar(&opts.rulesFile, "rules-file", "", "YAML file with a preset and/or custom rules")
	f.IntVarP(&opts.count, "count", "n", 1, "number of passwords to generate")
	f.BoolVar(&opts.analyze, "analyze", false, "include a strength analysis for each password")
	f.StringVarP(&opts.output, "output", "o", "", "write passwords to this file (mode 0600) instead of stdout")
	f.BoolVar(&opts.json, "json", false, "print JSON")

	f.IntVarP(&opts.length, "length", "l", defaults.Length, "password length")
	f.BoolVar(&opts.upper, "upper", defaults.IncludeUppercase, "include uppercase letters")
	f.BoolVar(&opts.lower, "lower", defaults.IncludeLowercase, "include lowercase letters")
	f.BoolVar(&opts.digits, "digits", defaults.IncludeDigits, "include digits")
	f.BoolVar(&opts.special, "special", defaults.IncludeSpecial, "include special characters")
	f.BoolVar(&opts.excludeSimilar, "exclude-similar", false, "exclude look-alike characters ("+password.SimilarChars+")")
	f.BoolVar(&opts.excludeAmbiguous, "exclude-ambiguous", false, "exclude ambiguous punctuation")
	f.IntVar(&opts.minUpper, "min-upper", 0, "minimum uppercase letters")
	f.IntVar(&opts.minLower, "min-lower", 0, "minimum lowercase letters")
	f.IntVar(&opts.minDigits, "min-digits", 0, "minimum digits")
	f.IntVar(&opts.minSpecial, "min-special", 0, "minimum special characters")
	f.StringVar(&opts.charset, "charset", "", "use exactly these characters instead of the category flags")
	f.BoolVar(&opts.avoidRepeated, "avoid-repeated", false, "reject three identical characters in a row")
	f.BoolVar(&opts.avoidSequential, "avoid-sequential", false, "reject runs like abc or 321")
	f.BoolVar(&opts.avoidDictionary, "avoid-dictionary", false, "reject common words and passwords")

	return cmd
}

func runGenerate(cmd *cobra.Command, global *globalOptions, opts *generateOptions) error {
	logger := global.cliLogger()
	defer logger.Sync()

	cfg, err := global.loadConfig(logger)
	if err != nil {
		return err
	}

	req, err := opts.request(cmd)
	if err != nil {
		return err
	}

	svc := newLocalService(cfg, logger)
	batch, err := svc.GenerateBatch(cmd.Context(), req, opts.count)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := opts.render(&buf, batch); err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := writePrivateFile(opts.output, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d password(s) to %s\n", len(batch.Results), opts.output)
	return nil
}

// request combines the rules file and any rule flags. Flags override file values.
func (o *generateOptions) request(cmd *cobra.Command) (service.GenerateRequest, error) {
	req := service.GenerateRequest{Preset: o.preset}

	if o.rulesFile != "" {
		rf, err := loadRulesFile(o.rulesFile)
		if err != nil {
			return req, err
		}
		if req.Preset == "" {
			req.Preset = rf.Preset
		}
		req.Rules = rf.Rules
	}

	flags := cmd.Flags()
	changed := false
	for _, name := range ruleFlags {
		if flags.Changed(name) {
			changed = true
			break
		}
	}
	if !changed {
		return req, nil
	}

	rules := password.DefaultRules()
	if req.Rules != nil {
		rules = *req.Rules
	}
	if flags.Changed("length") {
		rules.Length = o.length
	}
	if flags.Changed("upper") {
		rules.IncludeUppercase = o.upper
	}
	if flags.Changed("lower") {
		rules.IncludeLowercase = o.lower
	}
	if flags.Changed("digits") {
		rules.IncludeDigits = o.digits
	}
	if flags.Changed("special") {
		rules.IncludeSpecial = o.special
	}
	if flags.Changed("exclude-similar") {
		rules.ExcludeSimilarChars = o.excludeSimilar
	}
	if flags.Changed("exclude-ambiguous") {
		rules.ExcludeAmbiguousChars = o.excludeAmbiguous
	}
	if flags.Changed("min-upper") {
		rules.MinUppercase = password.Min(o.minUpper)
	}
	if flags.Changed("min-lower") {
		rules.MinLowercase = password.Min(o.minLower)
	}
	if flags.Changed("min-digits") {
		rules.MinDigits = password.Min(o.minDigits)
	}
	if flags.Changed("min-special") {
		rules.MinSpecial = password.Min(o.minSpecial)
	}
	if flags.Changed("charset") {
		rules.CustomCharset = password.Charset(o.charset)
	}
	if flags.Changed("avoid-repeated") {
		rules.AvoidRepeatedChars = o.avoidRepeated
	}
	if flags.Changed("avoid-sequential") {
		rules.AvoidSequentialChars = o.avoidSequential
	}
	if flags.Changed("avoid-dictionary") {
		rules.AvoidDictionaryWords = o.avoidDictionary
	}
	req.Rules = &rules

	return req, nil
}

func (o *generateOptions) render(w io.Writer, batch *service.Batch) error {
	if o.json {
		out := generateOutput{
			Preset:    batch.Preset,
			Rules:     batch.Rules,
			Passwords: make([]string, len(batch.Results)),
			Attempts:  make([]int, len(batch.Results)),
		}
		for i, r := range batch.Results {
			out.Passwords[i] = r.Password
			out.Attempts[i] = r.Attempts
			if o.analyze {
				out.Analysis = append(out.Analysis, r.Analysis)
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, r := range batch.Results {
		fmt.Fprintln(w, r.Password)
		if o.analyze {
			writeAnalysis(w, r.Analysis, "  ")
		}
	}
	return nil
}

// writePrivateFile creates or truncates path and leaves it readable by the owner only.
func writePrivateFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return fmt.Errorf("failed to restrict output file permissions: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}
