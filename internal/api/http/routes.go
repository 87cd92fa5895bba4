package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/practice-exam/server/internal/bank"
	"github.com/practice-exam/server/internal/session"
)

// Mount wires the whole /api surface onto r.
func Mount(r chi.Router, b bank.Bank, books session.Books, reg *session.Registry) {
	r.Get("/categories", CategoriesHandler(b))
	r.Get("/types", TypesHandler(b))
	r.Get("/questions", QuestionsHandler(b))

	r.Post("/sessions/practice", CreatePracticeHandler(b, books, reg))
	r.Post("/sessions/exam", CreateExamHandler(b, books, reg))
	r.Route("/sessions/{sessionID}", func(sr chi.Router) {
		sr.Get("/", GetSessionHandler(reg))
		sr.Post("/answers", SubmitAnswerHandler(reg))
		sr.Post("/next", AdvanceHandler(reg))
		sr.Post("/goto", GotoHandler(reg))
		sr.Post("/submit", SubmitExamHandler(reg))
		sr.Get("/stats", StatsHandler(reg))
	})

	r.Delete("/books/wrong", ClearWrongBookHandler(books))
	r.Delete("/books/practiced", ClearPracticedBookHandler(books))
}
