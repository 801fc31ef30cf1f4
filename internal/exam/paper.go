// Package exam holds the exam-paper document model and the pure HTML
// composition logic. Keep this package free of transport (HTTP) and
// infrastructure (Chrome/Redis) concerns.
package exam

import (
	"errors"
	"strings"
)

// Question is a single multiple-choice question. Option letters are derived
// from position (index 0 is A), never from ID or content.
type Question struct {
	// ID may be a string or a number in the incoming JSON. It is carried
	// for addressing only and plays no part in rendering.
	ID                 any      `json:"id"`
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation,omitempty"`
}

// Paper is one printable exam: metadata, an optional reading passage and an
// ordered list of questions. It lives only for the duration of a render
// request.
type Paper struct {
	Title        string     `json:"title"`
	Subject      string     `json:"subject"`
	Board        string     `json:"board,omitempty"`
	TimeAllowed  string     `json:"timeAllowed"`
	Instructions string     `json:"instructions"`
	Passage      string     `json:"passage,omitempty"`
	Questions    []Question `json:"questions"`
}

// ErrInvalidPaper is returned by Validate for any shape violation.
var ErrInvalidPaper = errors.New(
	"body must be an exam paper with title, subject, instructions, timeAllowed and a non-empty questions array")

// Validate checks the minimal required shape before any rendering work is
// attempted. Per-question fields are deliberately not checked: a missing
// options list or an out-of-range correctAnswerIndex degrades the rendered
// output instead of rejecting the whole document.
func (p *Paper) Validate() error {
	if strings.TrimSpace(p.Title) == "" ||
		strings.TrimSpace(p.Subject) == "" ||
		strings.TrimSpace(p.Instructions) == "" ||
		strings.TrimSpace(p.TimeAllowed) == "" {
		return ErrInvalidPaper
	}
	if len(p.Questions) == 0 {
		return ErrInvalidPaper
	}
	return nil
}
