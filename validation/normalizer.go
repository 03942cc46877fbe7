package validation

import "strings"

// categoryMapping maps accepted lowercase category spellings to their
// canonical stored form.
var categoryMapping = map[string]string{
	"tops":        "Tops",
	"bottoms":     "Bottoms",
	"outerwear":   "Outerwear",
	"jackets":     "Jackets",
	"dresses":     "Dresses",
	"knitwear":    "Knitwear",
	"shoes":       "Shoes",
	"accessories": "Accessories",
	"activewear":  "Activewear",
}

var storedConditions = []string{"new", "like_new", "good", "fair"}

// NormalizeCategory maps a raw category to its canonical form. Unknown
// input is returned verbatim so invalid categories still echo back
// unchanged in error snapshots and listings.
func NormalizeCategory(category string) string {
	if canonical, ok := categoryMapping[strings.ToLower(strings.TrimSpace(category))]; ok {
		return canonical
	}
	return category
}

// NormalizeCondition lowercases, trims, and collapses whitespace runs to a
// single underscore, so "LIKE   NEW" becomes "like_new". Anything outside
// the stored vocabulary falls back to "good"; surfacing bad input to the
// user is the validator's job, this only guarantees a storable value.
func NormalizeCondition(condition string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(condition)), "_")
	for _, c := range storedConditions {
		if c == normalized {
			return normalized
		}
	}
	return "good"
}
