// Package session holds the practice and exam session controllers: the
// ordered question list, per-question answer state, navigation, and the
// aggregate statistics, with the wrong/practiced book-keeping applied on
// every graded submission.
package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/practice-exam/server/internal/book"
	"github.com/practice-exam/server/internal/quiz"
)

// AutoAdvanceDelay is how long the presentation layer should linger on a
// correct answer before moving on. The core itself never sleeps; it only
// raises the AutoAdvance signal.
const AutoAdvanceDelay = 500 * time.Millisecond

var (
	ErrNoQuestions   = errors.New("session has no questions")
	ErrFinished      = errors.New("session is finished")
	ErrEmptyAnswer   = errors.New("answer required before submitting")
	ErrAlreadyGraded = errors.New("question already graded")
	ErrIndexRange    = errors.New("question index out of range")
)

// AnswerState is the per-question record inside a session. Grade == nil
// means unanswered; within a practice session a state is written exactly
// once.
type AnswerState struct {
	UserAnswer string       `json:"userAnswer"`
	Grade      *quiz.Result `json:"grade"`
}

// Books bundles the two record stores a session writes to.
type Books struct {
	Wrong     *book.WrongBook
	Practiced *book.PracticedBook
}

// applyWrongBook applies the wrong-book rule for one graded outcome:
// objective and incorrect adds the record, objective and correct removes
// it, short or indeterminate leaves the book alone. Store failures are
// logged; a submission never fails on book-keeping.
func (b Books) applyWrongBook(q quiz.Question, res quiz.Result) {
	if b.Wrong == nil || res.Kind == quiz.KindShort || !res.Determinate() {
		return
	}
	var err error
	if res.Correct() {
		err = b.Wrong.Remove(q.Key())
	} else {
		err = b.Wrong.Add(q)
	}
	if err != nil {
		log.Printf("session: wrong book update for %s: %v", q.Key(), err)
	}
}

func (b Books) markPracticed(q quiz.Question) {
	if b.Practiced == nil {
		return
	}
	if err := b.Practiced.Mark(q.Key()); err != nil {
		log.Printf("session: mark practiced %s: %v", q.Key(), err)
	}
}

// Stats are the practice-session aggregates. Answered counts every graded
// index, short answers included; Correct and the score sums cover only
// determinate (auto-graded) outcomes.
type Stats struct {
	Total           int     `json:"total"`
	Answered        int     `json:"answered"`
	Correct         int     `json:"correct"`
	AutoTotalScore  float64 `json:"autoTotalScore"`
	AutoEarnedScore float64 `json:"autoEarnedScore"`
}

// SubmitOutcome is what one practice submission hands back to the caller.
type SubmitOutcome struct {
	Grade       quiz.Result
	AutoAdvance bool
}

// Practice is a one-question-at-a-time session. Each question locks once
// graded; the session ends in a terminal summary state after advancing
// past the last question.
type Practice struct {
	mu        sync.Mutex
	questions []quiz.Question
	states    []AnswerState
	index     int
	finished  bool
	books     Books
}

func NewPractice(questions []quiz.Question, books Books) (*Practice, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Practice{
		questions: questions,
		states:    make([]AnswerState, len(questions)),
		books:     books,
	}, nil
}

func (p *Practice) Len() int { return len(p.questions) }

func (p *Practice) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

func (p *Practice) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

// Current returns the question at the cursor and its answer state.
func (p *Practice) Current() (quiz.Question, AnswerState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.questions[p.index], p.states[p.index]
}

// State returns the answer state for an arbitrary index.
func (p *Practice) State(i int) (AnswerState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.states) {
		return AnswerState{}, ErrIndexRange
	}
	return p.states[i], nil
}

// Submit grades the current question. Objective questions require a
// non-empty answer; a graded question is read-only for the rest of the
// session. Every submission marks the question practiced; the wrong book
// is updated only for determinate objective outcomes. AutoAdvance is
// raised only for a correct objective answer.
func (p *Practice) Submit(userAnswer string) (SubmitOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return SubmitOutcome{}, ErrFinished
	}
	st := &p.states[p.index]
	if st.Grade != nil {
		return SubmitOutcome{}, ErrAlreadyGraded
	}
	q := p.questions[p.index]
	kind := quiz.Classify(q)
	if userAnswer == "" && kind != quiz.KindShort {
		return SubmitOutcome{}, ErrEmptyAnswer
	}

	res := quiz.Grade(q, kind, userAnswer)
	st.UserAnswer = userAnswer
	st.Grade = &res

	p.books.markPracticed(q)
	p.books.applyWrongBook(q, res)

	return SubmitOutcome{Grade: res, AutoAdvance: res.Correct()}, nil
}

// Advance moves the cursor to the next question, or transitions the
// session into its terminal summary state when none is left. It reports
// whether the session is now finished.
func (p *Practice) Advance() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return true
	}
	if p.index < len(p.questions)-1 {
		p.index++
		return false
	}
	p.finished = true
	return true
}

// Goto jumps the cursor to an arbitrary question for review.
func (p *Practice) Goto(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return ErrFinished
	}
	if i < 0 || i >= len(p.questions) {
		return ErrIndexRange
	}
	p.index = i
	return nil
}

func (p *Practice) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Stats{Total: len(p.questions)}
	for _, st := range p.states {
		if st.Grade == nil {
			continue
		}
		s.Answered++
		g := st.Grade
		if !g.Determinate() {
			continue
		}
		if g.Correct() {
			s.Correct++
		}
		s.AutoTotalScore += g.TotalScore
		s.AutoEarnedScore += g.EarnedScore
	}
	return s
}
