package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/practice-exam/server/internal/quiz"
)

// ErrEmptyBank is returned when a draw matches no questions at all.
var ErrEmptyBank = errors.New("question bank is empty")

type SQLBank struct {
	db *sql.DB
}

func NewSQLBank(db *sql.DB) *SQLBank { return &SQLBank{db: db} }

const questionColumns = `id, category, type, question, options, answer, explanation, analysis, score, code_id`

func (b *SQLBank) Categories(ctx context.Context) ([]string, error) {
	return b.distinct(ctx, "category")
}

func (b *SQLBank) Types(ctx context.Context) ([]string, error) {
	return b.distinct(ctx, "type")
}

func (b *SQLBank) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT DISTINCT %s FROM questions WHERE %s IS NOT NULL AND TRIM(%s) != '' ORDER BY %s`,
		column, column, column, column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (b *SQLBank) Fetch(ctx context.Context, q Query) ([]quiz.Question, error) {
	if q.Mode == ModeMock {
		all, err := b.selectQuestions(ctx, Query{Count: -1})
		if err != nil {
			return nil, err
		}
		return BuildMockExam(all, MockTotalScore, MockShortCount, nil)
	}
	return b.selectQuestions(ctx, q)
}

func (b *SQLBank) selectQuestions(ctx context.Context, q Query) ([]quiz.Question, error) {
	var (
		where []string
		args  []any
	)
	if vals := nonBlank(q.Categories); len(vals) > 0 {
		where = append(where, inClause("category", len(args)+1, len(vals)))
		for _, v := range vals {
			args = append(args, v)
		}
	}
	if vals := nonBlank(q.Types); len(vals) > 0 {
		where = append(where, inClause("type", len(args)+1, len(vals)))
		for _, v := range vals {
			args = append(args, v)
		}
	}

	sqlText := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		sqlText += " WHERE " + strings.Join(where, " AND ")
	}
	if q.Mode == ModeSequence {
		sqlText += " ORDER BY id ASC"
	} else {
		sqlText += " ORDER BY RANDOM()"
	}
	if q.Count > 0 {
		sqlText += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, q.Count)
	}

	rows, err := b.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quiz.Question
	for rows.Next() {
		qr, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qr)
	}
	return out, rows.Err()
}

func inClause(column string, firstArg, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", firstArg+i)
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(ph, ","))
}

func nonBlank(vals []string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func scanQuestion(rows *sql.Rows) (quiz.Question, error) {
	var (
		q                     quiz.Question
		optionsRaw, answerRaw sql.NullString
		explanation, analysis sql.NullString
		scoreRaw, codeID      sql.NullString
	)
	if err := rows.Scan(&q.ID, &q.Category, &q.Type, &q.Question,
		&optionsRaw, &answerRaw, &explanation, &analysis, &scoreRaw, &codeID); err != nil {
		return quiz.Question{}, err
	}
	q.Options = map[string]string{}
	if optionsRaw.String != "" {
		// a bank with hand-edited rows may hold broken JSON here; treat it
		// as "no options" instead of failing the whole draw
		if err := json.Unmarshal([]byte(optionsRaw.String), &q.Options); err != nil {
			q.Options = map[string]string{}
		}
	}
	q.RawAnswer = answerRaw.String
	q.Answer = quiz.Normalize(answerRaw.String)
	q.Explanation = explanation.String
	q.Analysis = analysis.String
	q.CodeID = codeID.String
	q.Score = parseScore(scoreRaw.String, q.Type)
	return q, nil
}
