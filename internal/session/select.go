package session

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/practice-exam/server/internal/bank"
	"github.com/practice-exam/server/internal/book"
	"github.com/practice-exam/server/internal/quiz"
)

var (
	ErrWrongBookEmpty = errors.New("wrong book is empty")
	ErrAllPracticed   = errors.New("all matching questions already practiced")
)

// sequence mode over-fetches so there is room left after dropping
// already-practiced questions
const sequenceBatchFloor = 500

// Fetcher is the slice of the bank the selectors need.
type Fetcher interface {
	Fetch(ctx context.Context, q bank.Query) ([]quiz.Question, error)
}

// SelectWrong draws up to count questions from the wrong book in random
// order. No backend call is made. rng may be nil for a time-seeded one.
func SelectWrong(wb *book.WrongBook, count int, rng *rand.Rand) ([]quiz.Question, error) {
	qs, err := wb.Questions()
	if len(qs) == 0 {
		if err != nil {
			return nil, err
		}
		return nil, ErrWrongBookEmpty
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	if count < len(qs) {
		qs = qs[:count]
	}
	return qs, nil
}

// SelectSequence fetches an id-ordered batch several times larger than
// requested, drops everything in the practiced book, and keeps the first
// q.Count unseen questions.
func SelectSequence(ctx context.Context, f Fetcher, q bank.Query, practiced *book.PracticedBook) ([]quiz.Question, error) {
	batch := q
	batch.Mode = bank.ModeSequence
	batch.Count = q.Count * 5
	if batch.Count < sequenceBatchFloor {
		batch.Count = sequenceBatchFloor
	}
	all, err := f.Fetch(ctx, batch)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, bank.ErrEmptyBank
	}

	seen, err := practiced.IDs()
	if err != nil {
		// unreadable book degrades to "nothing practiced"; selection is
		// best-effort, not a hard failure
		seen = map[string]bool{}
	}
	var unseen []quiz.Question
	for _, cand := range all {
		if seen[cand.Key()] {
			continue
		}
		unseen = append(unseen, cand)
		if len(unseen) == q.Count {
			break
		}
	}
	if len(unseen) == 0 {
		return nil, ErrAllPracticed
	}
	return unseen, nil
}
