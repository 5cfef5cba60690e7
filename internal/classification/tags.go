package classification

import (
	"strings"
	"unicode"
)

// SuggestTags derives tags for a category and optional subcategory: the
// category slug, the subcategory slug when given, then the curated tags
// configured for the category.
func (c *Classifier) SuggestTags(category, subcategory string) []string {
	tags := []string{Slugify(category)}

	if subcategory != "" {
		tags = append(tags, Slugify(subcategory))
	}

	return append(tags, c.tags[category]...)
}

// Slugify lower-cases s and replaces each run of spaces and slashes with a hyphen.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSep := false
	for _, r := range strings.ToLower(s) {
		if r == '/' || unicode.IsSpace(r) {
			if !inSep {
				b.WriteByte('-')
				inSep = true
			}
			continue
		}
		b.WriteRune(r)
		inSep = false
	}

	return b.String()
}
