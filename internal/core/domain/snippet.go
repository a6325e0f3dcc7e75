package domain

// TruncationMarker is appended to snippets cut at the character bound.
const TruncationMarker = "..."

// DefaultMaxSnippetChars bounds every text snippet sent for text-only inference.
const DefaultMaxSnippetChars = 2000

// Snippet bounds text to maxChars runes and appends TruncationMarker when cut.
func Snippet(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxSnippetChars
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + TruncationMarker
}
