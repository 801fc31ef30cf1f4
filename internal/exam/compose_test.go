package exam

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePaper() Paper {
	return Paper{
		Title:        "Sample Paper",
		Subject:      "Maths",
		Board:        "GL",
		TimeAllowed:  "45 minutes",
		Instructions: "Answer all questions.",
		Questions: []Question{
			{
				ID:                 1,
				QuestionText:       "2+2=?",
				Options:            []string{"3", "4", "5", "6"},
				CorrectAnswerIndex: 1,
				Explanation:        "Basic addition.",
			},
		},
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"it's", "it&#039;s"},
		{"already &amp; escaped", "already &amp;amp; escaped"},
		{"plain text", "plain text"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, escapeHTML(tc.in))
	}
}

func TestComposeEscapesEveryUserField(t *testing.T) {
	hostile := `<script>alert('pwn')</script>`
	p := Paper{
		Title:        hostile,
		Subject:      hostile,
		Board:        hostile,
		TimeAllowed:  hostile,
		Instructions: hostile,
		Passage:      hostile,
		Questions: []Question{
			{
				QuestionText:       hostile,
				Options:            []string{hostile},
				CorrectAnswerIndex: 0,
				Explanation:        hostile,
			},
		},
	}

	html := Compose(p)

	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert('pwn')")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestComposeOptionLetters(t *testing.T) {
	p := samplePaper()
	p.Questions[0].Options = []string{"zero", "one", "two", "three"}

	html := Compose(p)

	for i, letter := range []string{"A", "B", "C", "D"} {
		frag := `<span class="optLetter">` + letter + `</span> ` + p.Questions[0].Options[i]
		assert.Contains(t, html, frag, "option %d should be lettered %s", i, letter)
	}
}

func TestComposeAnswerKeyLetters(t *testing.T) {
	p := samplePaper()
	p.Questions = []Question{
		{QuestionText: "q1", Options: []string{"a", "b", "c"}, CorrectAnswerIndex: 2},
		{QuestionText: "q2", Options: []string{"a", "b", "c"}, CorrectAnswerIndex: 0},
	}

	html := Compose(p)
	keyStart := strings.Index(html, "Answer Key")
	assert.GreaterOrEqual(t, keyStart, 0)
	key := html[keyStart:]

	assert.Contains(t, key, `<div class="aLetter">C</div>`)
	assert.Contains(t, key, `<div class="aLetter">A</div>`)
}

func TestComposeAnswerKeyExplanationPlaceholder(t *testing.T) {
	p := samplePaper()
	p.Questions[0].Explanation = ""

	html := Compose(p)

	assert.Contains(t, html, `<span class="aExplLabel">Explanation:</span> -`)
}

func TestComposePassageParagraphSplitting(t *testing.T) {
	p := samplePaper()
	p.Passage = "Para one.\n\nPara two."

	html := Compose(p)

	assert.Contains(t, html, "Reading Passage")
	assert.Contains(t, html, `<p class="passagePara">Para one.</p>`)
	assert.Contains(t, html, `<p class="passagePara">&nbsp;</p>`)
	assert.Contains(t, html, `<p class="passagePara">Para two.</p>`)

	// Blank paragraph sits between the two text paragraphs.
	one := strings.Index(html, "Para one.")
	blank := strings.Index(html, "&nbsp;</p>")
	two := strings.Index(html, "Para two.")
	assert.True(t, one < blank && blank < two, "expected one < blank < two, got %d %d %d", one, blank, two)
}

func TestComposeOmitsPassageWhenEmpty(t *testing.T) {
	html := Compose(samplePaper())
	assert.NotContains(t, html, "Reading Passage")
}

func TestComposeCoverPage(t *testing.T) {
	html := Compose(samplePaper())

	assert.Contains(t, html, "Sample Paper")
	assert.Contains(t, html, `<div class="coverSubject">Maths</div>`)
	assert.Contains(t, html, "GL Style Assessment")
	assert.Contains(t, html, "45 minutes")
	assert.Contains(t, html, "<b>Total Questions:</b></span><span>1</span>")
	assert.Contains(t, html, "Answer all questions.")
	assert.Contains(t, html, "Do not open this booklet until told to do so.")
}

func TestComposeFixedStructureAndGeometry(t *testing.T) {
	html := Compose(samplePaper())

	// Cover, then content, then the page-broken answer key.
	cover := strings.Index(html, "coverCard")
	question := strings.Index(html, `class="question avoid-break-inside"`)
	key := strings.Index(html, "Answer Key")
	assert.True(t, cover < question && question < key)

	assert.Contains(t, html, "@page { size: A4; margin: 0; }")
	assert.Contains(t, html, "pageBreakBefore")
	assert.Contains(t, html, "avoid-break-inside")
}

func TestComposeIsDeterministic(t *testing.T) {
	p := samplePaper()
	p.Passage = "Some passage.\nMore."

	assert.Equal(t, Compose(p), Compose(p))
}

func TestComposeToleratesMissingPerQuestionData(t *testing.T) {
	p := samplePaper()
	p.Questions = []Question{
		{QuestionText: "no options at all", CorrectAnswerIndex: 7},
		{QuestionText: "", Options: []string{"only option"}},
	}

	html := Compose(p)

	assert.Contains(t, html, "no options at all")
	assert.Contains(t, html, "only option")
	// Out-of-range answer index degrades to a best-effort letter, no panic.
	assert.Contains(t, html, `<div class="aLetter">H</div>`)
}

func TestOptionLetter(t *testing.T) {
	assert.Equal(t, "A", optionLetter(0))
	assert.Equal(t, "B", optionLetter(1))
	assert.Equal(t, "Z", optionLetter(25))
	assert.Equal(t, "", optionLetter(-1))
}
