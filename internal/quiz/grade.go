package quiz

import (
	"sort"
	"strings"
)

// Result is the outcome of grading a single question response.
// IsCorrect == nil means the question could not be auto-graded: short
// answers are never compared, and a reference answer the grader cannot
// interpret leaves the question ungraded rather than silently wrong.
type Result struct {
	Kind           Kind    `json:"kind"`
	IsCorrect      *bool   `json:"isCorrect"` // nil = not auto-gradable
	EarnedScore    float64 `json:"earnedScore"`
	TotalScore     float64 `json:"totalScore"`
	CorrectDisplay string  `json:"correctDisplay"`
}

// Correct reports whether the result is a determinate correct outcome.
func (r Result) Correct() bool { return r.IsCorrect != nil && *r.IsCorrect }

// Determinate reports whether the question was auto-graded at all.
func (r Result) Determinate() bool { return r.IsCorrect != nil }

// Token tables for reading a true/false reference answer. True patterns
// are checked before false patterns; first substring containment wins.
// Matching runs against the normalized (uppercased, whitespace-free) text.
var (
	truePatterns  = []string{"1", "T", "Y", "YES", "TRUE", "对", "正确", "是", "√", "✔"}
	falsePatterns = []string{"0", "F", "N", "NO", "FALSE", "错", "错误", "否", "×", "✘"}
)

// trueFalseKey maps a normalized reference answer to the binary option
// letter: "A" for true, "B" for false, "" when the reference cannot be
// read. Containment matching means a "1" buried anywhere in the text
// reads as true.
func trueFalseKey(normalized string) string {
	if normalized == "" {
		return ""
	}
	for _, p := range truePatterns {
		if strings.Contains(normalized, p) {
			return "A"
		}
	}
	for _, p := range falsePatterns {
		if strings.Contains(normalized, p) {
			return "B"
		}
	}
	// last resort: the answer may literally be the option letter
	if s := strings.Join(letterSet(normalized), ""); s == "A" || s == "B" {
		return s
	}
	return ""
}

// letterSet extracts the A-Z runes of an already-normalized string,
// sorted. Everything else (digits, CJK, punctuation) is dropped.
func letterSet(normalized string) []string {
	var out []string
	for _, r := range normalized {
		if r >= 'A' && r <= 'Z' {
			out = append(out, string(r))
		}
	}
	sort.Strings(out)
	return out
}

func boolPtr(b bool) *bool { return &b }

// Grade grades one question of the given kind against userAnswer.
//
// Objective kinds with an empty userAnswer count as wrong, not ungraded.
// Scoring is all-or-nothing: a multi-select answer missing one letter
// earns zero.
func Grade(q Question, kind Kind, userAnswer string) Result {
	raw := q.RawAnswer
	if raw == "" {
		raw = q.Answer
	}
	res := Result{Kind: kind, TotalScore: q.Score, CorrectDisplay: raw}

	// Short answers only surface the reference text; no comparison.
	if kind == KindShort {
		return res
	}

	if userAnswer == "" {
		res.IsCorrect = boolPtr(false)
		return res
	}

	reference := Normalize(raw)

	if kind == KindTrueFalse {
		key := trueFalseKey(reference)
		if key == "" {
			return res // reference unreadable, leave ungraded
		}
		ok := Normalize(userAnswer) == key
		res.IsCorrect = &ok
		if ok {
			res.EarnedScore = q.Score
		}
		return res
	}

	// Single / multiple choice: compare sorted letter sets.
	correct := letterSet(reference)
	if len(correct) == 0 {
		// A key without option letters is malformed, not "no letters are
		// correct" -- refuse to grade.
		return res
	}
	res.CorrectDisplay = strings.Join(correct, "")

	user := letterSet(Normalize(userAnswer))
	if len(correct) != len(user) {
		res.IsCorrect = boolPtr(false)
		return res
	}
	ok := true
	for i := range correct {
		if correct[i] != user[i] {
			ok = false
			break
		}
	}
	res.IsCorrect = &ok
	if ok {
		res.EarnedScore = q.Score
	}
	return res
}
