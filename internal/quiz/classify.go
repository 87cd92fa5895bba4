package quiz

import "strings"

// Classify assigns a question to one of the four kinds. The result is a
// pure function of the type label and the options map; every downstream
// rendering and grading decision keys off it. First matching rule wins.
func Classify(q Question) Kind {
	label := strings.TrimSpace(q.Type)
	switch {
	case strings.Contains(label, "判断"):
		return KindTrueFalse
	case strings.Contains(label, "多选"), strings.Contains(label, "多项"):
		return KindMultiple
	case strings.Contains(label, "简答"), strings.Contains(label, "问答"):
		return KindShort
	case len(q.Options) == 0:
		// no options to pick from: treat as free text
		return KindShort
	default:
		// "单选" and anything unrecognized both grade as single choice
		return KindSingle
	}
}
