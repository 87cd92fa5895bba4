package session

import (
	"errors"
	"testing"

	"github.com/practice-exam/server/internal/book"
	"github.com/practice-exam/server/internal/quiz"
)

func testBooks() Books {
	m := book.NewMemMedium()
	return Books{Wrong: book.NewWrongBook(m), Practiced: book.NewPracticedBook(m)}
}

func single(id int64, key string, score float64) quiz.Question {
	return quiz.Question{
		ID: id, Type: "单选题", Question: "q",
		Options:   map[string]string{"A": "a", "B": "b", "C": "c"},
		RawAnswer: key, Answer: quiz.Normalize(key), Score: score,
	}
}

func short(id int64) quiz.Question {
	return quiz.Question{ID: id, Type: "简答题", Question: "q", RawAnswer: "参考答案", Score: 10}
}

func TestNewPracticeRequiresQuestions(t *testing.T) {
	if _, err := NewPractice(nil, testBooks()); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestPracticeSubmitFlow(t *testing.T) {
	books := testBooks()
	p, err := NewPractice([]quiz.Question{single(1, "B", 2), single(2, "A", 2)}, books)
	if err != nil {
		t.Fatal(err)
	}

	// empty answer on an objective question is rejected, no state change
	if _, err := p.Submit(""); !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("Submit(\"\") err = %v, want ErrEmptyAnswer", err)
	}
	if _, st := p.Current(); st.Grade != nil {
		t.Fatal("rejected submit must not record state")
	}

	out, err := p.Submit("b")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Grade.Correct() {
		t.Fatal("expected correct grade for matching answer")
	}
	if !out.AutoAdvance {
		t.Fatal("correct objective answer must raise AutoAdvance")
	}

	// question is read-only once graded
	if _, err := p.Submit("A"); !errors.Is(err, ErrAlreadyGraded) {
		t.Fatalf("resubmit err = %v, want ErrAlreadyGraded", err)
	}

	// correct answer never lands in the wrong book, but is marked practiced
	if ok, _ := books.Wrong.Contains("1"); ok {
		t.Fatal("correct answer must not enter the wrong book")
	}
	if ok, _ := books.Practiced.Contains("1"); !ok {
		t.Fatal("every submission must mark the question practiced")
	}
}

func TestPracticeWrongBookRule(t *testing.T) {
	books := testBooks()
	q := single(9, "A", 1)
	p, _ := NewPractice([]quiz.Question{q}, books)

	if out, err := p.Submit("B"); err != nil || out.AutoAdvance {
		t.Fatalf("wrong answer: out=%+v err=%v", out, err)
	}
	if ok, _ := books.Wrong.Contains("9"); !ok {
		t.Fatal("incorrect objective answer must enter the wrong book")
	}

	// a later correct attempt in a fresh session removes it
	p2, _ := NewPractice([]quiz.Question{q}, books)
	if _, err := p2.Submit("A"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := books.Wrong.Contains("9"); ok {
		t.Fatal("correct attempt must remove the question from the wrong book")
	}
}

func TestPracticeShortAndIndeterminateLeaveWrongBookAlone(t *testing.T) {
	books := testBooks()
	malformed := quiz.Question{ID: 3, Type: "单选题", Options: map[string]string{"A": "a"}, RawAnswer: "见解析", Score: 1}
	p, _ := NewPractice([]quiz.Question{short(2), malformed}, books)

	if _, err := p.Submit("随便写点"); err != nil {
		t.Fatalf("short submit: %v", err)
	}
	p.Advance()
	if _, err := p.Submit("A"); err != nil {
		t.Fatalf("indeterminate submit: %v", err)
	}

	for _, id := range []string{"2", "3"} {
		if ok, _ := books.Wrong.Contains(id); ok {
			t.Errorf("question %s must not be in the wrong book", id)
		}
		if ok, _ := books.Practiced.Contains(id); !ok {
			t.Errorf("question %s must still be marked practiced", id)
		}
	}
}

func TestPracticeAdvanceToSummary(t *testing.T) {
	p, _ := NewPractice([]quiz.Question{single(1, "A", 1), single(2, "A", 1)}, testBooks())

	if finished := p.Advance(); finished {
		t.Fatal("advance with one question left must not finish")
	}
	if p.Index() != 1 {
		t.Fatalf("Index = %d, want 1", p.Index())
	}
	if finished := p.Advance(); !finished {
		t.Fatal("advancing past the last question must finish the session")
	}
	if !p.Finished() {
		t.Fatal("Finished() = false after summary transition")
	}
	// terminal state disables further input
	if _, err := p.Submit("A"); !errors.Is(err, ErrFinished) {
		t.Fatalf("Submit after finish err = %v, want ErrFinished", err)
	}
	if err := p.Goto(0); !errors.Is(err, ErrFinished) {
		t.Fatalf("Goto after finish err = %v, want ErrFinished", err)
	}
}

func TestPracticeGoto(t *testing.T) {
	p, _ := NewPractice([]quiz.Question{single(1, "A", 1), single(2, "A", 1)}, testBooks())
	if err := p.Goto(1); err != nil {
		t.Fatal(err)
	}
	if p.Index() != 1 {
		t.Fatalf("Index = %d, want 1", p.Index())
	}
	if err := p.Goto(5); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("Goto(5) err = %v, want ErrIndexRange", err)
	}
}

func TestPracticeStatsScenario(t *testing.T) {
	// one correct (5 pts), one wrong (5 pts), one short submitted, one
	// untouched
	qs := []quiz.Question{single(1, "A", 5), single(2, "A", 5), short(3), single(4, "A", 5)}
	p, _ := NewPractice(qs, testBooks())

	if _, err := p.Submit("A"); err != nil {
		t.Fatal(err)
	}
	p.Advance()
	if _, err := p.Submit("B"); err != nil {
		t.Fatal(err)
	}
	p.Advance()
	if _, err := p.Submit("我的回答"); err != nil {
		t.Fatal(err)
	}

	got := p.Stats()
	want := Stats{Total: 4, Answered: 3, Correct: 1, AutoTotalScore: 10, AutoEarnedScore: 5}
	if got != want {
		t.Fatalf("Stats() = %+v, want %+v", got, want)
	}
}
