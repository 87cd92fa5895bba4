package session

import (
	"errors"
	"math"
	"sync"

	"github.com/practice-exam/server/internal/quiz"
)

var ErrSubmitted = errors.New("exam already submitted")

// Summary is the aggregate returned by a bulk exam submission.
type Summary struct {
	TotalQuestions  int     `json:"totalQuestions"`
	AutoGradedCount int     `json:"autoGradedCount"`
	ShortCount      int     `json:"shortCount"`
	CorrectCount    int     `json:"correctCount"`
	AutoEarnedScore float64 `json:"autoEarnedScore"`
	AutoTotalScore  float64 `json:"autoTotalScore"`
	AccuracyPercent float64 `json:"accuracyPercent"`
}

// Exam is a whole-paper session: answers are freely revisable until the
// single Submit call grades everything at once.
type Exam struct {
	mu        sync.Mutex
	questions []quiz.Question
	answers   []string
	grades    []*quiz.Result
	summary   *Summary
	books     Books
}

func NewExam(questions []quiz.Question, books Books) (*Exam, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Exam{
		questions: questions,
		answers:   make([]string, len(questions)),
		grades:    make([]*quiz.Result, len(questions)),
		books:     books,
	}, nil
}

func (e *Exam) Len() int                   { return len(e.questions) }
func (e *Exam) Questions() []quiz.Question { return e.questions }

func (e *Exam) Answers() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.answers))
	copy(out, e.answers)
	return out
}

func (e *Exam) Submitted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary != nil
}

// Grades returns per-question results; entries are nil until Submit.
func (e *Exam) Grades() []*quiz.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*quiz.Result, len(e.grades))
	copy(out, e.grades)
	return out
}

// Record stores (or revises) the answer for one question.
func (e *Exam) Record(i int, answer string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summary != nil {
		return ErrSubmitted
	}
	if i < 0 || i >= len(e.answers) {
		return ErrIndexRange
	}
	e.answers[i] = answer
	return nil
}

// Submit grades every question, applies the wrong-book rule per
// auto-graded question, and returns the aggregate summary. A second call
// fails; the first summary stays available via Summary.
func (e *Exam) Submit() (Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summary != nil {
		return Summary{}, ErrSubmitted
	}

	sum := Summary{TotalQuestions: len(e.questions)}
	for i, q := range e.questions {
		kind := quiz.Classify(q)
		res := quiz.Grade(q, kind, e.answers[i])
		e.grades[i] = &res

		if kind == quiz.KindShort {
			sum.ShortCount++
			continue
		}
		if !res.Determinate() {
			continue
		}
		sum.AutoGradedCount++
		sum.AutoTotalScore += res.TotalScore
		sum.AutoEarnedScore += res.EarnedScore
		if res.Correct() {
			sum.CorrectCount++
		}
		e.books.applyWrongBook(q, res)
	}
	if sum.AutoGradedCount > 0 {
		acc := float64(sum.CorrectCount) / float64(sum.AutoGradedCount) * 100
		sum.AccuracyPercent = math.Round(acc*10) / 10
	}

	e.summary = &sum
	return sum, nil
}

// Summary returns the result of a past Submit, if any.
func (e *Exam) Summary() (Summary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summary == nil {
		return Summary{}, false
	}
	return *e.summary, true
}
