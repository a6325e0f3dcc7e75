// Package naming turns free-form model output into safe, consistently cased file names.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type CaseStyle string

const (
	Snake  CaseStyle = "snake"
	Kebab  CaseStyle = "kebab"
	Camel  CaseStyle = "camel"
	Pascal CaseStyle = "pascal"
	Lower  CaseStyle = "lower"
	Title  CaseStyle = "title"
)

// Styles lists the accepted styles in the order they are documented.
var Styles = []CaseStyle{Snake, Kebab, Camel, Pascal, Lower, Title}

func ParseCaseStyle(raw string) (CaseStyle, error) {
	style := CaseStyle(strings.ToLower(strings.TrimSpace(raw)))
	if style == "" {
		return Snake, nil
	}
	for _, known := range Styles {
		if style == known {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown case style %q (want one of snake, kebab, camel, pascal, lower, title)", raw)
}

// Words splits text on runs of underscores, hyphens and whitespace.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
}

// Transform rewrites text in the given style. Unknown styles behave like snake.
func Transform(text string, style CaseStyle) string {
	words := Words(text)
	if len(words) == 0 {
		return ""
	}

	switch style {
	case Kebab:
		return join(words, "-", strings.ToLower)
	case Camel:
		return strings.ToLower(words[0]) + join(words[1:], "", capitalize)
	case Pascal:
		return join(words, "", capitalize)
	case Lower:
		return join(words, " ", strings.ToLower)
	case Title:
		return join(words, " ", capitalize)
	default:
		return join(words, "_", strings.ToLower)
	}
}

func join(words []string, sep string, fn func(string) string) string {
	out := make([]string, len(words))
	for i, word := range words {
		out[i] = fn(word)
	}
	return strings.Join(out, sep)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError && size <= 1 {
		return strings.ToLower(word)
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
