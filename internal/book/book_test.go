package book

import (
	"errors"
	"testing"

	"github.com/practice-exam/server/internal/quiz"
)

func q(id int64) quiz.Question {
	return quiz.Question{ID: id, Type: "单选题", RawAnswer: "A", Answer: "A", Score: 1}
}

func TestWrongBookAddRemove(t *testing.T) {
	wb := NewWrongBook(NewMemMedium())

	if err := wb.Add(q(7)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ok, err := wb.Contains("7")
	if err != nil || !ok {
		t.Fatalf("Contains(7) = %v, %v; want true", ok, err)
	}

	// a later correct attempt removes the entry
	if err := wb.Remove("7"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := wb.Contains("7"); ok {
		t.Fatal("Contains(7) = true after Remove")
	}

	// removing an absent id is a no-op
	if err := wb.Remove("404"); err != nil {
		t.Fatalf("Remove(absent): %v", err)
	}
}

func TestWrongBookQuestionsRoundTrip(t *testing.T) {
	wb := NewWrongBook(NewMemMedium())
	for _, id := range []int64{1, 2, 3} {
		if err := wb.Add(q(id)); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}
	qs, err := wb.Questions()
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("len(Questions) = %d, want 3", len(qs))
	}
	for _, got := range qs {
		if got.RawAnswer != "A" || got.Type != "单选题" {
			t.Errorf("record %d lost fields: %+v", got.ID, got)
		}
	}
}

func TestCorruptEntryDegradesToEmpty(t *testing.T) {
	m := NewMemMedium()
	if err := m.Store("practiceExamWrongBook", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	wb := NewWrongBook(m)

	qs, err := wb.Questions()
	if err == nil {
		t.Fatal("Questions: want decode error, got nil")
	}
	if len(qs) != 0 {
		t.Fatalf("len(Questions) = %d, want 0 on corrupt data", len(qs))
	}

	// the add still lands on top of an empty book, with the cause reported
	if err := wb.Add(q(1)); err == nil {
		t.Fatal("Add over corrupt data: want surfaced decode error")
	}
	ok, err := wb.Contains("1")
	if err != nil {
		t.Fatalf("Contains after repair: %v", err)
	}
	if !ok {
		t.Fatal("Contains(1) = false; Add should have replaced the corrupt map")
	}
}

func TestPracticedBookMarkIsSticky(t *testing.T) {
	pb := NewPracticedBook(NewMemMedium())

	if err := pb.Mark("5"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	for _, id := range []string{"6", "7"} {
		if err := pb.Mark(id); err != nil {
			t.Fatalf("Mark(%s): %v", id, err)
		}
	}
	// unrelated additions never evict
	if ok, _ := pb.Contains("5"); !ok {
		t.Fatal("Contains(5) = false after further marks")
	}
	// double-mark is a no-op
	if err := pb.Mark("5"); err != nil {
		t.Fatalf("Mark twice: %v", err)
	}

	ids, err := pb.IDs()
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("len(IDs) = %d, want 3", len(ids))
	}

	if err := pb.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if ok, _ := pb.Contains("5"); ok {
		t.Fatal("Contains(5) = true after Clear")
	}
}

func TestBooksAreIndependent(t *testing.T) {
	m := NewMemMedium()
	wb := NewWrongBook(m)
	pb := NewPracticedBook(m)

	if err := wb.Add(q(1)); err != nil {
		t.Fatal(err)
	}
	if err := pb.Mark("1"); err != nil {
		t.Fatal(err)
	}
	if err := wb.Clear(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := pb.Contains("1"); !ok {
		t.Fatal("clearing the wrong book must not touch the practiced book")
	}
}

type failingMedium struct{ err error }

func (f failingMedium) Load(string) ([]byte, error) { return nil, f.err }
func (f failingMedium) Store(string, []byte) error { return f.err }
func (f failingMedium) Delete(string) error { return f.err }

func TestStorageFailureIsSurfacedNotFatal(t *testing.T) {
	boom := errors.New("disk gone")
	wb := NewWrongBook(failingMedium{err: boom})

	if err := wb.Add(q(1)); !errors.Is(err, boom) {
		t.Fatalf("Add: err = %v, want wrapped %v", err, boom)
	}
	qs, err := wb.Questions()
	if !errors.Is(err, boom) {
		t.Fatalf("Questions: err = %v, want wrapped %v", err, boom)
	}
	if len(qs) != 0 {
		t.Fatalf("len(Questions) = %d, want 0", len(qs))
	}
}
