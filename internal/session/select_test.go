package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/practice-exam/server/internal/bank"
	"github.com/practice-exam/server/internal/quiz"
)

type fakeBank struct {
	questions []quiz.Question
	lastQuery bank.Query
	err       error
}

func (f *fakeBank) Fetch(_ context.Context, q bank.Query) ([]quiz.Question, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	out := f.questions
	if q.Count > 0 && q.Count < len(out) {
		out = out[:q.Count]
	}
	return out, nil
}

func TestSelectWrong(t *testing.T) {
	books := testBooks()
	for id := int64(1); id <= 5; id++ {
		if err := books.Wrong.Add(single(id, "A", 1)); err != nil {
			t.Fatal(err)
		}
	}

	qs, err := SelectWrong(books.Wrong, 3, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("SelectWrong: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("len = %d, want 3", len(qs))
	}

	// asking for more than the book holds returns everything
	qs, err = SelectWrong(books.Wrong, 50, nil)
	if err != nil || len(qs) != 5 {
		t.Fatalf("len = %d err = %v, want all 5", len(qs), err)
	}
}

func TestSelectWrongEmpty(t *testing.T) {
	books := testBooks()
	if _, err := SelectWrong(books.Wrong, 3, nil); !errors.Is(err, ErrWrongBookEmpty) {
		t.Fatalf("err = %v, want ErrWrongBookEmpty", err)
	}
}

func TestSelectSequenceFiltersPracticed(t *testing.T) {
	books := testBooks()
	var pool []quiz.Question
	for id := int64(1); id <= 20; id++ {
		pool = append(pool, single(id, "A", 1))
	}
	fb := &fakeBank{questions: pool}

	// ids 1-3 already practiced
	for _, id := range []string{"1", "2", "3"} {
		if err := books.Practiced.Mark(id); err != nil {
			t.Fatal(err)
		}
	}

	qs, err := SelectSequence(context.Background(), fb, bank.Query{Count: 5}, books.Practiced)
	if err != nil {
		t.Fatalf("SelectSequence: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("len = %d, want 5", len(qs))
	}
	if qs[0].ID != 4 {
		t.Errorf("first unseen id = %d, want 4", qs[0].ID)
	}

	// the bank is asked for an over-fetched, id-ordered batch
	if fb.lastQuery.Mode != bank.ModeSequence {
		t.Errorf("Mode = %q, want sequence", fb.lastQuery.Mode)
	}
	if fb.lastQuery.Count != 500 {
		t.Errorf("batch count = %d, want floor of 500", fb.lastQuery.Count)
	}
}

func TestSelectSequenceAllPracticed(t *testing.T) {
	books := testBooks()
	pool := []quiz.Question{single(1, "A", 1), single(2, "A", 1)}
	for _, q := range pool {
		if err := books.Practiced.Mark(q.Key()); err != nil {
			t.Fatal(err)
		}
	}
	fb := &fakeBank{questions: pool}
	if _, err := SelectSequence(context.Background(), fb, bank.Query{Count: 2}, books.Practiced); !errors.Is(err, ErrAllPracticed) {
		t.Fatalf("err = %v, want ErrAllPracticed", err)
	}
}

func TestSelectSequenceBatchScalesWithCount(t *testing.T) {
	books := testBooks()
	fb := &fakeBank{questions: []quiz.Question{single(1, "A", 1)}}
	if _, err := SelectSequence(context.Background(), fb, bank.Query{Count: 200}, books.Practiced); err != nil {
		t.Fatal(err)
	}
	if fb.lastQuery.Count != 1000 {
		t.Errorf("batch count = %d, want 5x requested", fb.lastQuery.Count)
	}
}
