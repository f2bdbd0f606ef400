package types

import "strings"

// NormalizeText trims user input. The second return is false when nothing
// remains; callers reject such input before any network call.
func NormalizeText(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, t != ""
}

// SplitTags turns a raw comma-separated tag string into an ordered list of
// trimmed, non-empty tokens. Duplicates are preserved.
func SplitTags(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}
