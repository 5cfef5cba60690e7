package classification

import (
	"strings"
	"unicode"
)

// resolveSubcategory picks a secondary label for a matched category.
//
// The matched keywords are joined into one string and each subcategory
// label is split on whitespace and '/'. The first label with any token
// inside the joined keywords wins. Without a hit the first declared label
// is returned, and with no labels the result is empty.
func resolveSubcategory(subcategories, matchedKeywords []string) string {
	if len(subcategories) == 0 {
		return ""
	}

	joined := strings.ToLower(strings.Join(matchedKeywords, " "))

	for _, label := range subcategories {
		for _, token := range labelTokens(label) {
			if strings.Contains(joined, token) {
				return label
			}
		}
	}

	return subcategories[0]
}

func labelTokens(label string) []string {
	return strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
}
