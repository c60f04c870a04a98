package extract

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	trailingClause = regexp.MustCompile(`(?i)\s+\b(?:to|for|which|that)\b\s+`)
	legalSuffix    = regexp.MustCompile(`(?i)\s+(?:Inc\.?|Corp\.?|LLC|Ltd\.?|Co\.?|Corporation)\.?\s*$`)

	nonCompanyWords = []string{"san", "francisco", "this", "the", "company", "headquartered", "in", "a", "new", "its"}
)

// cleanEntityName cuts a name at the first trailing clause, so
// "VectorSys to strengthen its offer" becomes "VectorSys".
func cleanEntityName(name string) string {
	name = strings.TrimSpace(name)
	if loc := trailingClause.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	return strings.TrimSpace(name)
}

// cleanCompanyName strips a legal form suffix such as "Inc." or "Ltd".
func cleanCompanyName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimSpace(legalSuffix.ReplaceAllString(name, ""))
}

// isLikelyCompany filters capitalized phrases that are places, sentence
// starts or generic nouns rather than company names.
func isLikelyCompany(name string) bool {
	if utf8.RuneCountInString(name) < 4 {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if slices.Contains(nonCompanyWords, w) {
			return false
		}
	}
	if !strings.Contains(name, " ") {
		first, _ := utf8.DecodeRuneInString(name)
		return utf8.RuneCountInString(name) >= 5 && unicode.IsUpper(first)
	}
	return true
}
