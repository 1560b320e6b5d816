package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCharset(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		want  string
	}{
		{
			name:  "lowercase_only",
			rules: Rules{Length: 8, IncludeLowercase: true},
			want:  "abcdefghijklmnopqrstuvwxyz",
		},
		{
			name:  "fixed_order",
			rules: Rules{Length: 8, IncludeDigits: true, IncludeUppercase: true},
			want:  UppercaseChars + DigitChars,
		},
		{
			name:  "everything",
			rules: Rules{Length: 8, IncludeUppercase: true, IncludeLowercase: true, IncludeDigits: true, IncludeSpecial: true},
			want:  UppercaseChars + LowercaseChars + DigitChars + SpecialChars,
		},
		{
			name:  "nothing_selected",
			rules: Rules{Length: 8},
			want:  "",
		},
		{
			name:  "exclude_similar_digits",
			rules: Rules{Length: 8, IncludeDigits: true, ExcludeSimilarChars: true},
			want:  "23456789",
		},
		{
			name: "custom_charset_ignores_flags",
			rules: Rules{
				Length:                8,
				IncludeUppercase:      true,
				ExcludeSimilarChars:   true,
				ExcludeAmbiguousChars: true,
				CustomCharset:         Charset("01lI{}"),
			},
			want: "01lI{}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildCharset(tc.rules))
		})
	}
}

func TestBuildCharset_ExclusionsRemoveExactlyTheIntersection(t *testing.T) {
	all := Rules{Length: 8, IncludeUppercase: true, IncludeLowercase: true, IncludeDigits: true, IncludeSpecial: true}
	full := BuildCharset(all)

	for _, tc := range []struct {
		name      string
		similar   bool
		ambiguous bool
	}{
		{"similar", true, false},
		{"ambiguous", false, true},
		{"both", true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rules := all
			rules.ExcludeSimilarChars = tc.similar
			rules.ExcludeAmbiguousChars = tc.ambiguous
			got := BuildCharset(rules)

			var want strings.Builder
			for _, r := range full {
				if tc.similar && strings.ContainsRune(SimilarChars, r) {
					continue
				}
				if tc.ambiguous && strings.ContainsRune(AmbiguousChars, r) {
					continue
				}
				want.WriteRune(r)
			}
			assert.Equal(t, want.String(), got)

			removed := len(full) - len(got)
			expectedRemoved := 0
			for _, r := range full {
				if (tc.similar && strings.ContainsRune(SimilarChars, r)) ||
					(tc.ambiguous && strings.ContainsRune(AmbiguousChars, r)) {
					expectedRemoved++
				}
			}
			assert.Equal(t, expectedRemoved, removed)
		})
	}
}

func TestSpecialCharsAreAllSpecial(t *testing.T) {
	assert.Len(t, SpecialChars, 32)
	for _, r := range SpecialChars {
		assert.Equal(t, CategorySpecial, Classify(r), "%q", r)
	}
}

func TestCategoryAlphabet_HonorsExclusions(t *testing.T) {
	rules := Rules{ExcludeSimilarChars: true, ExcludeAmbiguousChars: true}
	assert.Equal(t, "23456789", string(categoryAlphabet(CategoryDigit, rules)))
	assert.NotContains(t, string(categoryAlphabet(CategorySpecial, rules)), "{")

	custom := Rules{ExcludeSimilarChars: true, CustomCharset: Charset("xyz")}
	assert.Equal(t, DigitChars, string(categoryAlphabet(CategoryDigit, custom)))
}
