// Package bank serves question records out of the SQL question bank.
package bank

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/practice-exam/server/internal/quiz"
)

// Mode selects how questions are drawn from the bank.
type Mode string

const (
	ModePractice Mode = "practice" // random draw, one question at a time client-side
	ModeExam     Mode = "exam"     // random draw, bulk submit
	ModeMock     Mode = "mock"     // generated 100-point paper over the whole bank
	ModeSequence Mode = "sequence" // id order, for unseen-first practice
)

// ParseMode validates a mode string, defaulting to practice when empty.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModePractice, nil
	case ModePractice, ModeExam, ModeMock, ModeSequence:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Query describes one draw from the bank. Categories and Types filter by
// exact value; both are ignored in mock mode, as is Count.
type Query struct {
	Mode       Mode
	Categories []string
	Types      []string
	Count      int
}

type Bank interface {
	Categories(ctx context.Context) ([]string, error)
	Types(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, q Query) ([]quiz.Question, error)
}

// parseScore resolves a question's score from the raw bank value:
// an explicit positive number wins; otherwise short-answer questions
// default to 10 points and everything else to 1.
func parseScore(raw, typeLabel string) float64 {
	var base float64
	valid := false
	if s := strings.TrimSpace(raw); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			base, valid = v, true
		}
	}
	label := strings.TrimSpace(typeLabel)
	short := strings.Contains(label, "简答") || strings.Contains(label, "问答")
	if !valid || base <= 0 {
		if short {
			return 10
		}
		return 1
	}
	return base
}
