// Package book implements the two cross-session record stores: the wrong
// book (questions most recently answered incorrectly) and the practiced
// book (ids of every question ever submitted in practice).
//
// Persistence is best-effort. A missing or corrupt entry degrades to an
// empty store; mutations still go through and the cause is returned so
// the caller can log or ignore it. Nothing here is transactional: each
// mutation is a read-modify-write of the whole map.
package book

import (
	"encoding/json"
	"fmt"

	"github.com/practice-exam/server/internal/quiz"
)

const (
	wrongBookKey     = "practiceExamWrongBook"
	practicedBookKey = "practiceExamPracticedBook"
)

// WrongBook maps stringified question ids to full question records.
// A question is present iff its most recent auto-graded attempt was
// incorrect; a correct attempt removes it.
type WrongBook struct {
	m Medium
}

func NewWrongBook(m Medium) *WrongBook { return &WrongBook{m: m} }

func (b *WrongBook) load() (map[string]quiz.Question, error) {
	raw, err := b.m.Load(wrongBookKey)
	if err != nil {
		return map[string]quiz.Question{}, fmt.Errorf("load wrong book: %w", err)
	}
	if len(raw) == 0 {
		return map[string]quiz.Question{}, nil
	}
	out := map[string]quiz.Question{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]quiz.Question{}, fmt.Errorf("decode wrong book: %w", err)
	}
	return out, nil
}

func (b *WrongBook) store(m map[string]quiz.Question) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode wrong book: %w", err)
	}
	if err := b.m.Store(wrongBookKey, raw); err != nil {
		return fmt.Errorf("store wrong book: %w", err)
	}
	return nil
}

// Add records q as currently-wrong. A failed read is treated as an empty
// book so the add still lands; the read failure is reported back once the
// write has succeeded.
func (b *WrongBook) Add(q quiz.Question) error {
	m, loadErr := b.load()
	m[q.Key()] = q
	if err := b.store(m); err != nil {
		return err
	}
	return loadErr
}

// Remove drops the id from the book. Absent ids are a no-op and nothing
// is rewritten.
func (b *WrongBook) Remove(id string) error {
	m, loadErr := b.load()
	if _, ok := m[id]; !ok {
		return loadErr
	}
	delete(m, id)
	if err := b.store(m); err != nil {
		return err
	}
	return loadErr
}

// Questions returns the current contents in unspecified order.
func (b *WrongBook) Questions() ([]quiz.Question, error) {
	m, err := b.load()
	out := make([]quiz.Question, 0, len(m))
	for _, q := range m {
		out = append(out, q)
	}
	return out, err
}

func (b *WrongBook) Contains(id string) (bool, error) {
	m, err := b.load()
	_, ok := m[id]
	return ok, err
}

func (b *WrongBook) Clear() error {
	return b.m.Delete(wrongBookKey)
}

// PracticedBook is the set of question ids ever submitted in practice.
// Ids are only removed by Clear.
type PracticedBook struct {
	m Medium
}

func NewPracticedBook(m Medium) *PracticedBook { return &PracticedBook{m: m} }

func (b *PracticedBook) load() (map[string]bool, error) {
	raw, err := b.m.Load(practicedBookKey)
	if err != nil {
		return map[string]bool{}, fmt.Errorf("load practiced book: %w", err)
	}
	if len(raw) == 0 {
		return map[string]bool{}, nil
	}
	out := map[string]bool{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]bool{}, fmt.Errorf("decode practiced book: %w", err)
	}
	return out, nil
}

// Mark records the id as practiced. Already-marked ids are a no-op.
func (b *PracticedBook) Mark(id string) error {
	m, loadErr := b.load()
	if m[id] {
		return loadErr
	}
	m[id] = true
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode practiced book: %w", err)
	}
	if err := b.m.Store(practicedBookKey, raw); err != nil {
		return fmt.Errorf("store practiced book: %w", err)
	}
	return loadErr
}

func (b *PracticedBook) Contains(id string) (bool, error) {
	m, err := b.load()
	return m[id], err
}

// IDs returns the practiced set as a lookup map.
func (b *PracticedBook) IDs() (map[string]bool, error) {
	return b.load()
}

func (b *PracticedBook) Clear() error {
	return b.m.Delete(practicedBookKey)
}
