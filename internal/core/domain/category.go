package domain

// OtherCategory is the catch-all label and the terminal resolution fallback.
const OtherCategory = "other"

// DefaultCategories is the ordered label set used when none is configured.
// Order matters: resolution picks the first label that matches.
var DefaultCategories = []string{
	"books",
	"photos",
	"figures",
	"documents",
	"presentations",
	"screenshots",
	"art",
	"code",
	OtherCategory,
}

func DefaultCategoryList() []string {
	return append([]string(nil), DefaultCategories...)
}
