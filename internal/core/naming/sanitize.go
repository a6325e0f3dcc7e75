package naming

import (
	"strings"
	"unicode"
)

const (
	DefaultMaxLength = 100
	FallbackName     = "unnamed"
)

const illegalChars = `<>:"/\|?*`

// Sanitize makes text usable as a file name: illegal characters removed,
// separators collapsed, style applied and the result bounded to maxLength
// characters. The result is never empty.
func Sanitize(text string, maxLength int, style CaseStyle) string {
	if maxLength < 1 {
		maxLength = DefaultMaxLength
	}

	name := stripIllegal(text)
	name = collapseSeparators(name)
	name = strings.Trim(name, " _.")
	name = Transform(name, style)
	name = truncate(name, maxLength, separatorFor(style))

	if name == "" {
		return FallbackName
	}
	return name
}

func stripIllegal(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) || unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// collapseSeparators replaces each run of whitespace and underscores with one underscore.
func collapseSeparators(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inRun := false
	for _, r := range text {
		if r == '_' || unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte('_')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

func separatorFor(style CaseStyle) string {
	switch style {
	case Kebab:
		return "-"
	case Camel, Pascal:
		return ""
	default:
		return "_"
	}
}

// truncate cuts name to maxLength runes, backing off to the last separator
// inside the kept prefix when the style has one.
func truncate(name string, maxLength int, sep string) string {
	runes := []rune(name)
	if len(runes) <= maxLength {
		return name
	}
	prefix := string(runes[:maxLength])
	if sep != "" && strings.Contains(name, sep) {
		if idx := strings.LastIndex(prefix, sep); idx >= 0 {
			return prefix[:idx]
		}
	}
	return prefix
}
