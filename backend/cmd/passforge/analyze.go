package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"passforge/backend/internal/password"

	"github.com/spf13/cobra"
)

var errNoPassword = errors.New("no password given on the command line or stdin")

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [password]",
		Short: "Estimate the strength of a password",
		Long: `Estimate entropy, offline crack time and a 1-5 score for a password.
When no argument is given the password is read from the first line of stdin,
which keeps it out of shell history.`,
		Example: `  passforge analyze 'Tr0ub4dor&3'
  pass show mail | passforge analyze --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.cliLogger()
			defer logger.Sync()

			cfg, err := global.loadConfig(logger)
			if err != nil {
				return err
			}

			pw, err := passwordArg(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			result := newLocalService(cfg, logger).Analyze(cmd.Context(), pw)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			writeAnalysis(out, result, "")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func passwordArg(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoPassword
	}
	return line, nil
}

var scoreLabels = [...]string{"very weak", "weak", "fair", "strong", "very strong"}

func scoreLabel(score int) string {
	if score < 1 || score > len(scoreLabels) {
		return "unknown"
	}
	return scoreLabels[score-1]
}

func writeAnalysis(w io.Writer, r password.AnalysisResult, indent string) {
	fmt.Fprintf(w, "%sScore:      %d/5 (%s)\n", indent, r.Score, scoreLabel(r.Score))
	fmt.Fprintf(w, "%sEntropy:    %.2f bits\n", indent, r.EntropyBits)
	fmt.Fprintf(w, "%sPool size:  %d\n", indent, r.PoolSize)
	fmt.Fprintf(w, "%sCrack time: %s\n", indent, r.CrackTime)
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "%s  - %s\n", indent, s)
	}
}
