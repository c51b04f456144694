package helpers

import "strings"

// TagsToString normalizes a tag list into the stored form: lowercased,
// trimmed, comma-joined, empties dropped.
func TagsToString(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

// StringToTags splits the stored form back into a slice; an empty stored
// value yields an empty (non-nil) slice.
func StringToTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
