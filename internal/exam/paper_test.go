package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPaper() Paper {
	return Paper{
		Title:        "Mock Test",
		Subject:      "English",
		TimeAllowed:  "30 minutes",
		Instructions: "Answer everything.",
		Questions:    []Question{{QuestionText: "q", Options: []string{"a", "b"}}},
	}
}

func TestValidateAcceptsMinimalPaper(t *testing.T) {
	p := validPaper()
	assert.NoError(t, p.Validate())
}

func TestValidateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Paper)
	}{
		{"missing title", func(p *Paper) { p.Title = "" }},
		{"whitespace title", func(p *Paper) { p.Title = "   " }},
		{"missing subject", func(p *Paper) { p.Subject = "" }},
		{"missing instructions", func(p *Paper) { p.Instructions = "" }},
		{"missing timeAllowed", func(p *Paper) { p.TimeAllowed = "" }},
		{"nil questions", func(p *Paper) { p.Questions = nil }},
		{"empty questions", func(p *Paper) { p.Questions = []Question{} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPaper()
			tc.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidPaper)
		})
	}
}

func TestValidateDoesNotInspectQuestions(t *testing.T) {
	// Per-question problems degrade rendering, they never reject the paper.
	p := validPaper()
	p.Questions = []Question{{CorrectAnswerIndex: 99}}
	assert.NoError(t, p.Validate())
}

func TestValidateAllowsOptionalFieldsEmpty(t *testing.T) {
	p := validPaper()
	p.Board = ""
	p.Passage = ""
	assert.NoError(t, p.Validate())
}
