package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/practice-exam/server/internal/bank"
)

const (
	defaultCount = 20
	maxCount     = 5000
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func CategoriesHandler(b bank.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := b.Categories(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"categories": cats})
	}
}

func TypesHandler(b bank.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := b.Types(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"types": types})
	}
}

func QuestionsHandler(b bank.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := bankQueryFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		questions, err := b.Fetch(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{
			"mode":      q.Mode,
			"count":     len(questions),
			"questions": questions,
		})
	}
}

// bankQueryFromRequest parses mode/count/category/qtype query params.
// category and qtype accept comma-separated multi-select values.
func bankQueryFromRequest(r *http.Request) (bank.Query, error) {
	mode, err := bank.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return bank.Query{}, err
	}
	count := defaultCount
	if s := r.URL.Query().Get("count"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return bank.Query{}, errors.New("count must be a positive integer")
		}
		count = v
	}
	if count > maxCount {
		count = maxCount
	}
	return bank.Query{
		Mode:       mode,
		Categories: splitCSV(r.URL.Query().Get("category")),
		Types:      splitCSV(r.URL.Query().Get("qtype")),
		Count:      count,
	}, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
