package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/practice-exam/server/internal/bank"
	"github.com/practice-exam/server/internal/quiz"
	"github.com/practice-exam/server/internal/session"
)

// sanitize strips the grading material from a question served to a client
// mid-session; the reference answer only comes back inside a grade.
func sanitize(q quiz.Question) quiz.Question {
	q.Answer = ""
	q.RawAnswer = ""
	q.Explanation = ""
	q.Analysis = ""
	return q
}

func sanitizeAll(qs []quiz.Question) []quiz.Question {
	out := make([]quiz.Question, len(qs))
	for i, q := range qs {
		out[i] = sanitize(q)
	}
	return out
}

type startRequest struct {
	Mode     string `json:"mode"`
	Count    int    `json:"count"`
	Category string `json:"category"`
	QType    string `json:"qtype"`
}

func (req startRequest) bankQuery(mode bank.Mode) bank.Query {
	count := req.Count
	if count < 1 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}
	return bank.Query{
		Mode:       mode,
		Categories: splitCSV(req.Category),
		Types:      splitCSV(req.QType),
		Count:      count,
	}
}

// CreatePracticeHandler opens a practice session. mode selects where the
// questions come from: practice (random draw), sequence (unseen-first) or
// wrong (local wrong book, no bank call).
func CreatePracticeHandler(b bank.Bank, books session.Books, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		var (
			questions []quiz.Question
			err       error
		)
		switch req.Mode {
		case "", "practice":
			questions, err = b.Fetch(r.Context(), req.bankQuery(bank.ModePractice))
		case "sequence":
			questions, err = session.SelectSequence(r.Context(), b, req.bankQuery(bank.ModeSequence), books.Practiced)
		case "wrong":
			count := req.Count
			if count < 1 {
				count = defaultCount
			}
			questions, err = session.SelectWrong(books.Wrong, count, nil)
		default:
			http.Error(w, "unknown practice mode", 400)
			return
		}
		if err != nil {
			status := 500
			if errors.Is(err, session.ErrWrongBookEmpty) || errors.Is(err, session.ErrAllPracticed) || errors.Is(err, bank.ErrEmptyBank) {
				status = 404
			}
			http.Error(w, err.Error(), status)
			return
		}
		if len(questions) == 0 {
			http.Error(w, "no questions matched", 404)
			return
		}

		p, err := session.NewPractice(questions, books)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		id := reg.AddPractice(p)
		q, st := p.Current()
		writeJSON(w, map[string]any{
			"id":       id,
			"total":    p.Len(),
			"index":    p.Index(),
			"question": sanitize(q),
			"state":    st,
		})
	}
}

// CreateExamHandler opens an exam session over a random draw (mode=exam)
// or a generated mock paper (mode=mock).
func CreateExamHandler(b bank.Bank, books session.Books, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		var mode bank.Mode
		switch req.Mode {
		case "", "exam":
			mode = bank.ModeExam
		case "mock":
			mode = bank.ModeMock
		default:
			http.Error(w, "unknown exam mode", 400)
			return
		}
		questions, err := b.Fetch(r.Context(), req.bankQuery(mode))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if len(questions) == 0 {
			http.Error(w, "no questions matched", 404)
			return
		}

		e, err := session.NewExam(questions, books)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		id := reg.AddExam(e)
		writeJSON(w, map[string]any{
			"id":        id,
			"total":     e.Len(),
			"questions": sanitizeAll(e.Questions()),
		})
	}
}

func GetSessionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if p, ok := reg.Practice(id); ok {
			resp := map[string]any{
				"total":    p.Len(),
				"index":    p.Index(),
				"finished": p.Finished(),
				"stats":    p.Stats(),
			}
			if !p.Finished() {
				q, st := p.Current()
				resp["question"] = sanitize(q)
				resp["state"] = st
			}
			writeJSON(w, resp)
			return
		}
		if e, ok := reg.Exam(id); ok {
			resp := map[string]any{
				"total":     e.Len(),
				"questions": sanitizeAll(e.Questions()),
				"answers":   e.Answers(),
				"submitted": e.Submitted(),
			}
			if sum, ok := e.Summary(); ok {
				resp["summary"] = sum
				resp["grades"] = e.Grades()
			}
			writeJSON(w, resp)
			return
		}
		http.Error(w, "session not found", 404)
	}
}

type answerRequest struct {
	Index  *int   `json:"index,omitempty"` // exam only
	Answer string `json:"answer"`
}

// SubmitAnswerHandler grades the current practice question, or records a
// revisable answer into an exam paper.
func SubmitAnswerHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		if p, ok := reg.Practice(id); ok {
			q, _ := p.Current()
			out, err := p.Submit(req.Answer)
			if err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			writeJSON(w, map[string]any{
				"grade":         out.Grade,
				"autoAdvance":   out.AutoAdvance,
				"autoAdvanceMs": session.AutoAdvanceDelay.Milliseconds(),
				"explanation":   q.Explanation,
				"analysis":      q.Analysis,
				"stats":         p.Stats(),
			})
			return
		}
		if e, ok := reg.Exam(id); ok {
			if req.Index == nil {
				http.Error(w, "index required", 400)
				return
			}
			if err := e.Record(*req.Index, req.Answer); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			writeJSON(w, map[string]any{"ok": true})
			return
		}
		http.Error(w, "session not found", 404)
	}
}

// AdvanceHandler moves a practice session forward; past the last question
// it lands in the terminal summary state.
func AdvanceHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := reg.Practice(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", 404)
			return
		}
		finished := p.Advance()
		resp := map[string]any{
			"index":    p.Index(),
			"finished": finished,
			"stats":    p.Stats(),
		}
		if !finished {
			q, st := p.Current()
			resp["question"] = sanitize(q)
			resp["state"] = st
		}
		writeJSON(w, resp)
	}
}

type gotoRequest struct {
	Index int `json:"index"`
}

func GotoHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := reg.Practice(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", 404)
			return
		}
		var req gotoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := p.Goto(req.Index); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		q, st := p.Current()
		writeJSON(w, map[string]any{
			"index":    p.Index(),
			"question": sanitize(q),
			"state":    st,
		})
	}
}

func SubmitExamHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := reg.Exam(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", 404)
			return
		}
		sum, err := e.Submit()
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, map[string]any{
			"summary": sum,
			"grades":  e.Grades(),
		})
	}
}

func StatsHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := reg.Practice(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", 404)
			return
		}
		writeJSON(w, p.Stats())
	}
}

func ClearWrongBookHandler(books session.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := books.Wrong.Clear(); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func ClearPracticedBookHandler(books session.Books) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := books.Practiced.Clear(); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}
