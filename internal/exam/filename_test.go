package exam

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Sample Paper", "sample-paper"},
		{"punctuation collapsed", "Year 6 Maths — Paper #1!", "year-6-maths-paper-1"},
		{"leading and trailing junk", "  **Verbal Reasoning**  ", "verbal-reasoning"},
		{"only junk falls back", "!!!", "exam-paper"},
		{"empty falls back", "", "exam-paper"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SafeFilename(tc.title))
		})
	}
}

func TestSafeFilenameAlphabet(t *testing.T) {
	clean := regexp.MustCompile(`^[a-z0-9-]+$`)

	for _, title := range []string{
		"Year 6 Maths — Paper #1!",
		`<script>alert("x")</script>`,
		"Ünïcödé Tîtle",
		"a&b|c\\d/e",
	} {
		got := SafeFilename(title)
		assert.Regexp(t, clean, got, "title %q", title)
		assert.False(t, strings.HasPrefix(got, "-"))
		assert.False(t, strings.HasSuffix(got, "-"))
	}
}

func TestSafeFilenameTruncation(t *testing.T) {
	long := strings.Repeat("abcde ", 40)
	got := SafeFilename(long)

	assert.LessOrEqual(t, len(got), 80)
	assert.False(t, strings.HasSuffix(got, "-"))
}
