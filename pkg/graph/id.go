package graph

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// MakeID derives the node id for a (type, label) pair, e.g.
// ("Event", "Launch in 2020") -> "event_launch_in_2020".
//
// The label is lower-cased, every run of characters outside [a-z0-9]
// collapses to a single underscore and leading/trailing underscores are
// trimmed. Distinct labels that slugify identically produce the same id; the
// build keeps one of them and never merges the two.
func MakeID(nodeType, label string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(label), "_")
	slug = strings.Trim(slug, "_")
	return strings.ToLower(nodeType) + "_" + slug
}
