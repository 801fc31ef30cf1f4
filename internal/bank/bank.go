// Package bank holds a static, in-process question bank and assembles
// renderable exam papers from it. There is no persistence; the bank ships
// with the binary.
package bank

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"exampdf/internal/exam"
)

// Question is one bank entry. CorrectAnswer holds the answer text rather
// than an index; BuildPaper resolves it to a position when assembling a
// paper.
type Question struct {
	ID            string
	Text          string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Topic         string
}

var errUnknownSubject = errors.New("unknown subject")

// Subjects returns the available subject keys, sorted.
func Subjects() []string {
	keys := make([]string, 0, len(questions))
	for k := range questions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RandomQuestions picks up to n questions for a subject, optionally
// filtered by topic. Order is randomised per call.
func RandomQuestions(subject string, n int, topic string) ([]Question, error) {
	pool, ok := questions[strings.ToLower(subject)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownSubject, subject)
	}

	candidates := make([]Question, 0, len(pool))
	for _, q := range pool {
		if topic != "" && !strings.EqualFold(q.Topic, topic) {
			continue
		}
		candidates = append(candidates, q)
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n > 0 && n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// BuildPaper assembles a renderable exam paper from the bank. The board
// label defaults to "Standard" when empty.
func BuildPaper(subject, board string, n int) (exam.Paper, error) {
	picked, err := RandomQuestions(subject, n, "")
	if err != nil {
		return exam.Paper{}, err
	}
	if len(picked) == 0 {
		return exam.Paper{}, fmt.Errorf("no questions available for subject %q", subject)
	}
	if board == "" {
		board = "Standard"
	}

	label := subjectLabel(subject)
	paper := exam.Paper{
		Title:        label + " Practice Paper",
		Subject:      label,
		Board:        board,
		TimeAllowed:  "45 minutes",
		Instructions: "Answer all questions. Choose the best answer for each question and mark it clearly in the box provided.",
		Questions:    make([]exam.Question, 0, len(picked)),
	}

	for _, q := range picked {
		idx := 0
		for i, opt := range q.Options {
			if opt == q.CorrectAnswer {
				idx = i
				break
			}
		}
		paper.Questions = append(paper.Questions, exam.Question{
			ID:                 q.ID,
			QuestionText:       q.Text,
			Options:            q.Options,
			CorrectAnswerIndex: idx,
			Explanation:        q.Explanation,
		})
	}
	return paper, nil
}

// subjectLabel turns a subject key like "verbal-reasoning" into a display
// label like "Verbal Reasoning".
func subjectLabel(subject string) string {
	words := strings.Split(strings.ToLower(subject), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var questions = map[string][]Question{
	"maths": {
		{
			ID:            "math-mc-1",
			Text:          "What is 25% of 80?",
			Options:       []string{"15", "20", "25", "30"},
			CorrectAnswer: "20",
			Explanation:   "25% is the same as 1/4. To find 1/4 of 80, divide 80 by 4 = 20.",
			Topic:         "Percentages",
		},
		{
			ID:            "math-mc-2",
			Text:          "A rectangle has a length of 12cm and width of 5cm. What is its area?",
			Options:       []string{"17 cm²", "34 cm²", "60 cm²", "70 cm²"},
			CorrectAnswer: "60 cm²",
			Explanation:   "Area of rectangle = length × width = 12 × 5 = 60 cm²",
			Topic:         "Area and Perimeter",
		},
		{
			ID:            "math-mc-3",
			Text:          "What is 7 × 8?",
			Options:       []string{"54", "56", "58", "64"},
			CorrectAnswer: "56",
			Explanation:   "7 × 8 = 56. This is a key times table fact.",
			Topic:         "Multiplication",
		},
		{
			ID:            "math-mc-4",
			Text:          "What is 144 ÷ 12?",
			Options:       []string{"11", "12", "13", "14"},
			CorrectAnswer: "12",
			Explanation:   "144 ÷ 12 = 12. You can check: 12 × 12 = 144.",
			Topic:         "Division",
		},
		{
			ID:            "math-mc-5",
			Text:          "What is the next number in the sequence: 3, 6, 9, 12, ?",
			Options:       []string{"13", "14", "15", "16"},
			CorrectAnswer: "15",
			Explanation:   "This sequence increases by 3 each time. 12 + 3 = 15.",
			Topic:         "Number Sequences",
		},
		{
			ID:            "math-mc-6",
			Text:          "If a train travels at 60 mph for 2 hours, how far does it travel?",
			Options:       []string{"100 miles", "110 miles", "120 miles", "130 miles"},
			CorrectAnswer: "120 miles",
			Explanation:   "Distance = Speed × Time = 60 × 2 = 120 miles.",
			Topic:         "Speed, Distance, Time",
		},
		{
			ID:            "math-mc-7",
			Text:          "A circle has a diameter of 10cm. What is its radius?",
			Options:       []string{"3cm", "5cm", "10cm", "20cm"},
			CorrectAnswer: "5cm",
			Explanation:   "Radius is half of the diameter. 10 ÷ 2 = 5cm.",
			Topic:         "Circles",
		},
	},
	"english": {
		{
			ID:            "eng-mc-1",
			Text:          "Which word is a noun in the sentence: 'The quick fox jumped over the fence'?",
			Options:       []string{"quick", "jumped", "fence", "over"},
			CorrectAnswer: "fence",
			Explanation:   "A noun names a person, place or thing. 'Fence' is a thing.",
			Topic:         "Grammar",
		},
		{
			ID:            "eng-mc-2",
			Text:          "What is the plural of 'child'?",
			Options:       []string{"childs", "children", "childes", "childrens"},
			CorrectAnswer: "children",
			Explanation:   "'Child' has an irregular plural: children.",
			Topic:         "Spelling",
		},
		{
			ID:            "eng-mc-3",
			Text:          "Which word is a synonym of 'happy'?",
			Options:       []string{"sad", "joyful", "angry", "tired"},
			CorrectAnswer: "joyful",
			Explanation:   "A synonym has the same or similar meaning. Joyful means full of happiness.",
			Topic:         "Vocabulary",
		},
		{
			ID:            "eng-mc-4",
			Text:          "Which sentence uses the apostrophe correctly?",
			Options:       []string{"The dogs' bone was buried.", "The dog's bone was buried.", "The dogs bone' was buried.", "The do'gs bone was buried."},
			CorrectAnswer: "The dog's bone was buried.",
			Explanation:   "One dog owns the bone, so the apostrophe goes before the s.",
			Topic:         "Punctuation",
		},
	},
	"verbal-reasoning": {
		{
			ID:            "vr-mc-1",
			Text:          "Hand is to glove as foot is to ___?",
			Options:       []string{"leg", "sock", "toe", "shoe"},
			CorrectAnswer: "sock",
			Explanation:   "A glove covers a hand directly, as a sock covers a foot.",
			Topic:         "Analogies",
		},
		{
			ID:            "vr-mc-2",
			Text:          "If CAT is written as DBU, how is DOG written?",
			Options:       []string{"EPH", "CPH", "EPG", "DPH"},
			CorrectAnswer: "EPH",
			Explanation:   "Each letter moves forward one place in the alphabet: D→E, O→P, G→H.",
			Topic:         "Letter Codes",
		},
		{
			ID:            "vr-mc-3",
			Text:          "Which number comes next: 2, 4, 8, 16, ?",
			Options:       []string{"20", "24", "32", "64"},
			CorrectAnswer: "32",
			Explanation:   "Each number doubles the one before it. 16 × 2 = 32.",
			Topic:         "Sequences",
		},
		{
			ID:            "vr-mc-4",
			Text:          "Which word does not belong: apple, banana, carrot, cherry?",
			Options:       []string{"apple", "banana", "carrot", "cherry"},
			CorrectAnswer: "carrot",
			Explanation:   "Carrot is a vegetable; the others are fruits.",
			Topic:         "Odd One Out",
		},
	},
}
