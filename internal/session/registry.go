package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live sessions by id so they are addressable over HTTP.
// Sessions live only as long as the process; the durable state is in the
// record books, not here.
type Registry struct {
	mu       sync.RWMutex
	practice map[string]*Practice
	exams    map[string]*Exam
}

func NewRegistry() *Registry {
	return &Registry{
		practice: map[string]*Practice{},
		exams:    map[string]*Exam{},
	}
}

func (r *Registry) AddPractice(p *Practice) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.practice[id] = p
	return id
}

func (r *Registry) AddExam(e *Exam) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[id] = e
	return id
}

func (r *Registry) Practice(id string) (*Practice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.practice[id]
	return p, ok
}

func (r *Registry) Exam(id string) (*Exam, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exams[id]
	return e, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.practice, id)
	delete(r.exams, id)
}
