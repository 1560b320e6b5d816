package main

import (
	"fmt"
	"text/tabwriter"

	"passforge/backend/internal/password"

	"github.com/spf13/cobra"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in rule presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := password.Presets()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PRESET\tLENGTH\tCLASSES\tMINIMUMS\tCHECKS")
			for _, name := range password.PresetNames() {
				r := presets[password.Preset(name)]
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", name, r.Length, classes(r), minimums(r), checks(r))
			}
			return tw.Flush()
		},
	}
}

func classes(r password.Rules) string {
	if r.CustomCharset != nil {
		return "custom"
	}
	out := ""
	for _, c := range []struct {
		on   bool
		flag string
	}{
		{r.IncludeUppercase, "A"},
		{r.IncludeLowercase, "a"},
		{r.IncludeDigits, "9"},
		{r.IncludeSpecial, "#"},
	} {
		if c.on {
			out += c.flag
		}
	}
	if out == "" {
		return "-"
	}
	return out
}

func minimums(r password.Rules) string {
	out := ""
	for _, m := range []struct {
		min  *int
		flag string
	}{
		{r.MinUppercase, "A"},
		{r.MinLowercase, "a"},
		{r.MinDigits, "9"},
		{r.MinSpecial, "#"},
	} {
		if m.min != nil && *m.min > 0 {
			if out != "" {
				out += " "
			}
			out += fmt.Sprintf("%s>=%d", m.flag, *m.min)
		}
	}
	if out == "" {
		return "-"
	}
	return out
}

func checks(r password.Rules) string {
	out := ""
	for _, c := range []struct {
		on   bool
		name string
	}{
		{r.AvoidRepeatedChars, "repeat"},
		{r.AvoidSequentialChars, "sequence"},
		{r.AvoidDictionaryWords, "dictionary"},
		{r.ExcludeSimilarChars, "no-similar"},
		{r.ExcludeAmbiguousChars, "no-ambiguous"},
	} {
		if c.on {
			if out != "" {
				out += ","
			}
			out += c.name
		}
	}
	if out == "" {
		return "-"
	}
	return out
}
