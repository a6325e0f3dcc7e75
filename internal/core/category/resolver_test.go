package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirillkom/smartname/internal/core/domain"
)

func TestResolveExactMatch(t *testing.T) {
	assert.Equal(t, "photos", Resolve("photos", domain.DefaultCategories))
	assert.Equal(t, "photos", Resolve("  \"Photos.\"\n", domain.DefaultCategories))
	assert.Equal(t, "code", Resolve("`code`", domain.DefaultCategories))
}

func TestResolveFirstMatchInDefinedOrder(t *testing.T) {
	labels := []string{"art", "artifact"}
	assert.Equal(t, "art", Resolve("this looks like artifact", labels))
}

func TestResolvePrefixMatch(t *testing.T) {
	assert.Equal(t, "screenshots", Resolve("screenshots of a settings page", domain.DefaultCategories))
}

func TestResolveSubstringMatchesInsideWords(t *testing.T) {
	// "art" sits inside "chart" and comes before no other matching label.
	assert.Equal(t, "art", Resolve("a bar chart", []string{"art", "figures", "other"}))
}

func TestResolveFallsBackToCatchAll(t *testing.T) {
	assert.Equal(t, domain.OtherCategory, Resolve("a recipe for lasagna", domain.DefaultCategories))
	assert.Equal(t, domain.OtherCategory, Resolve("", domain.DefaultCategories))
	assert.Equal(t, domain.OtherCategory, Resolve("...", domain.DefaultCategories))
	assert.Equal(t, domain.OtherCategory, Resolve("books", nil))
}

func TestNormalizeLabels(t *testing.T) {
	got := Normalize([]string{" Invoices ", "", "receipts", "invoices"})
	assert.Equal(t, []string{"invoices", "receipts", domain.OtherCategory}, got)

	assert.Equal(t, domain.DefaultCategories, Normalize(nil))
	assert.Equal(t, []string{"misc", "other"}, Normalize([]string{"other", "misc"}))
}

func TestValidateRejectsPathLabels(t *testing.T) {
	assert.NoError(t, Validate([]string{"receipts", "tax 2024", "other"}))
	for _, label := range []string{"../x", "a/b", `a\b`, "..", " . "} {
		assert.Error(t, Validate([]string{"receipts", label}), label)
	}
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "documents", Fallback("documents", domain.DefaultCategories))
	assert.Equal(t, domain.OtherCategory, Fallback("documents", []string{"photos", "other"}))
}
