package exam

import (
	"regexp"
	"strings"
)

const defaultFilename = "exam-paper"

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// SafeFilename derives the download base name from a paper title: lower
// case, runs of anything outside [a-z0-9] collapsed to a single hyphen,
// hyphens trimmed from both ends and the result capped at 80 bytes. An
// empty result falls back to "exam-paper". The ".pdf" extension is the
// caller's business.
func SafeFilename(title string) string {
	name := nonAlnumRuns.ReplaceAllString(strings.ToLower(title), "-")
	name = strings.Trim(name, "-")
	if len(name) > 80 {
		name = strings.Trim(name[:80], "-")
	}
	if name == "" {
		return defaultFilename
	}
	return name
}
