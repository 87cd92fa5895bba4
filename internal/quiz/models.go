package quiz

import "strconv"

// Question is one record from the question bank. Records are immutable
// once fetched; sessions hold their own slices.
type Question struct {
	ID          int64             `json:"id"`
	Category    string            `json:"category"`
	Type        string            `json:"type"` // raw type label from the bank, e.g. "单选题"
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"` // option letter -> text, may be empty
	Answer      string            `json:"answer"`  // normalized at load time
	RawAnswer   string            `json:"rawAnswer"`
	Explanation string            `json:"explanation,omitempty"`
	Analysis    string            `json:"analysis,omitempty"`
	Score       float64           `json:"score"`
	CodeID      string            `json:"codeId,omitempty"`
}

// Key is the stringified id used by the record books.
func (q Question) Key() string { return strconv.FormatInt(q.ID, 10) }

// Kind is the grading category of a question. It is derived from the type
// label and options via Classify and never stored.
type Kind string

const (
	KindSingle    Kind = "single"
	KindMultiple  Kind = "multiple"
	KindTrueFalse Kind = "truefalse"
	KindShort     Kind = "short"
)
