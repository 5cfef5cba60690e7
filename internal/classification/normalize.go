package classification

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// buildCorpus joins the inputs into one lower-cased search string.
// NFKC folds compatibility forms (full-width letters, ligatures) so they
// match the plain keywords; ASCII input passes through unchanged.
func buildCorpus(parts ...string) string {
	return normalizeText(strings.Join(parts, " "))
}

func normalizeText(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
