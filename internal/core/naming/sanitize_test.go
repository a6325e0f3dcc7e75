package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmptyAlwaysFallsBack(t *testing.T) {
	for _, style := range Styles {
		for n := 1; n <= 20; n++ {
			assert.Equal(t, FallbackName, Sanitize("", n, style), "style %s max %d", style, n)
		}
	}
}

func TestSanitizeStripsIllegalCharacters(t *testing.T) {
	assert.Equal(t, "report_q1q2_final", Sanitize(`Report: Q1/Q2 "final"?`, 100, Snake))
	assert.Equal(t, "a_b", Sanitize("a\x00 <b>", 100, Snake))
}

func TestSanitizePunctuationOnly(t *testing.T) {
	for _, input := range []string{"...", "???", "___", " . _ . ", `<>:"/\|?*`} {
		assert.Equal(t, FallbackName, Sanitize(input, 100, Snake), "input %q", input)
	}
}

func TestSanitizeTruncatesAtSeparator(t *testing.T) {
	input := "alpha beta gamma delta"
	assert.Equal(t, "alpha_beta", Sanitize(input, 12, Snake))
	assert.Equal(t, "alpha-beta", Sanitize(input, 12, Kebab))
	assert.Equal(t, "alphaBetaGam", Sanitize(input, 12, Camel))
	assert.Equal(t, "AlphaBetaGam", Sanitize(input, 12, Pascal))
	assert.Equal(t, "alpha beta g", Sanitize(input, 12, Lower))
}

func TestSanitizeHardCutWithoutSeparator(t *testing.T) {
	assert.Equal(t, "abcdefgh", Sanitize("abcdefghijklmnop", 8, Snake))
}

func TestSanitizeChapterTitle(t *testing.T) {
	assert.Equal(t, "chapter_one_overview", Sanitize("Chapter One Overview", 100, Snake))
}

func TestSanitizeInvariants(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"Chapter One Overview",
		strings.Repeat("word ", 80),
		"日本語のファイル名 テスト 資料",
		"emoji 🚀🚀🚀 launch plan",
		`C:\Users\someone\Desktop\file?.txt`,
		"\u200b\u200b zero width",
		"trailing dots....",
		"__--__",
	}
	for _, style := range Styles {
		for _, max := range []int{1, 3, 7, 16, 100} {
			for _, input := range inputs {
				got := Sanitize(input, max, style)
				assert.NotEmpty(t, got)
				assert.True(t, utf8.ValidString(got))
				if got != FallbackName {
					assert.LessOrEqual(t, utf8.RuneCountInString(got), max, "style %s max %d input %q", style, max, input)
				}
				assert.False(t, strings.ContainsAny(got, illegalChars), "got %q", got)
			}
		}
	}
}
