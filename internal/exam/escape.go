package exam

import "strings"

// htmlEscaper rewrites the five characters that matter inside an HTML
// document. The replacer works in a single pass over the input, so
// ampersands introduced by the other substitutions are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeHTML is the one escaping primitive for the compositor. Every
// caller-supplied string must pass through here before being written into
// the generated document; no field is ever interpreted as markup.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// optionLetter derives the display letter for a zero-based position:
// 0 is A, 1 is B and so on. Out-of-alphabet indexes yield a best-effort
// rune and negative ones an empty string; neither is an error.
func optionLetter(i int) string {
	if i < 0 {
		return ""
	}
	return string(rune('A' + i))
}
