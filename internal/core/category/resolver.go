// Package category maps free-text model replies onto a fixed, ordered label set.
//
// Matching is first-match in label order: with labels ["art", "artifact"] the
// reply "this looks like artifact" resolves to "art". Short labels also match
// inside longer words ("art" in "chart"). Operators supplying custom lists
// should order specific labels before generic ones.
package category

import (
	"fmt"
	"strings"

	"github.com/kirillkom/smartname/internal/core/domain"
)

const replyPunctuation = "\"'`.,!?;:"

// NormalizeReply trims whitespace and surrounding punctuation and lowercases.
func NormalizeReply(raw string) string {
	reply := strings.TrimSpace(raw)
	reply = strings.Trim(reply, replyPunctuation)
	return strings.ToLower(reply)
}

// Resolve returns the label for raw, falling back to domain.OtherCategory.
func Resolve(raw string, labels []string) string {
	reply := NormalizeReply(raw)

	for _, label := range labels {
		if reply == label {
			return label
		}
	}
	if reply != "" {
		for _, label := range labels {
			if label == "" {
				continue
			}
			if strings.HasPrefix(reply, label) || strings.Contains(reply, label) {
				return label
			}
		}
	}
	return domain.OtherCategory
}

// Normalize lowercases and trims a configured label list, drops blanks and
// duplicates while keeping order, and moves the catch-all to the end.
func Normalize(labels []string) []string {
	if len(labels) == 0 {
		return domain.DefaultCategoryList()
	}
	seen := make(map[string]struct{}, len(labels)+1)
	out := make([]string, 0, len(labels)+1)
	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" || label == domain.OtherCategory {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return append(out, domain.OtherCategory)
}

// Validate rejects labels that cannot be used as a single directory name
// under the target directory.
func Validate(labels []string) error {
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
			return fmt.Errorf("category %q must be a plain folder name", label)
		}
	}
	return nil
}

// Fallback returns preferred when it is one of labels, otherwise the catch-all.
func Fallback(preferred string, labels []string) string {
	for _, label := range labels {
		if label == preferred {
			return label
		}
	}
	return domain.OtherCategory
}
