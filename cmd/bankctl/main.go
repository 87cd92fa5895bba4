// bankctl imports question records into the bank database from a JSON
// export: an array of objects with question/category/type/options/answer
// and optional explanation/analysis/score/codeId fields.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/practice-exam/server/internal/db"
)

type record struct {
	Category    string            `json:"category"`
	Type        string            `json:"type"`
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
	Analysis    string            `json:"analysis"`
	Score       string            `json:"score"`
	CodeID      string            `json:"codeId"`
}

func main() {
	var (
		driver = flag.String("driver", "sqlite", "db driver: sqlite|postgres")
		dsn    = flag.String("dsn", "", "db dsn (driver default when empty)")
		file   = flag.String("file", "questions.json", "JSON file to import")
		purge  = flag.Bool("purge", false, "delete existing questions first")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(*driver), *dsn)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}
	if len(records) == 0 {
		log.Fatalf("%s holds no records", *file)
	}

	n, err := importRecords(ctx, dbh, records, *purge)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	fmt.Printf("imported %d questions from %s\n", n, *file)
}

func importRecords(ctx context.Context, dbh *sql.DB, records []record, purge bool) (int, error) {
	tx, err := dbh.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if purge {
		if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
			return 0, err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO questions
		(category, type, question, options, answer, explanation, analysis, score, code_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for i, rec := range records {
		if rec.Question == "" {
			log.Printf("skipping record %d: empty question text", i)
			continue
		}
		opts := rec.Options
		if opts == nil {
			opts = map[string]string{}
		}
		optJSON, err := json.Marshal(opts)
		if err != nil {
			return n, fmt.Errorf("record %d: encode options: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.Category, rec.Type, rec.Question,
			string(optJSON), rec.Answer, rec.Explanation, rec.Analysis, rec.Score, rec.CodeID); err != nil {
			return n, fmt.Errorf("record %d: %w", i, err)
		}
		n++
	}
	return n, tx.Commit()
}
