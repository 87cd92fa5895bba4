package bank

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/practice-exam/server/internal/quiz"
)

const (
	MockTotalScore = 100
	MockShortCount = 2
)

// ErrMockInfeasible means the bank's score values cannot be combined into
// a paper worth exactly the requested total.
var ErrMockInfeasible = errors.New("bank scores cannot compose the requested mock total")

type mockEntry struct {
	q     quiz.Question
	kind  quiz.Kind
	score int
}

// BuildMockExam composes a mock paper worth exactly totalScore points:
// exactly shortCount short-answer questions plus an objective-question
// subset found by subset-sum over integerized scores. Paper order is
// singles, multiples, true/false, then the short answers. rng may be nil;
// pass a seeded source in tests for a deterministic paper.
func BuildMockExam(questions []quiz.Question, totalScore, shortCount int, rng *rand.Rand) ([]quiz.Question, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var shorts, others []mockEntry
	for _, q := range questions {
		e := mockEntry{q: q, kind: quiz.Classify(q)}
		e.score = int(math.Round(q.Score))
		if e.score <= 0 {
			if e.kind == quiz.KindShort {
				e.score = 10
			} else {
				e.score = 1
			}
		}
		if e.kind == quiz.KindShort {
			shorts = append(shorts, e)
		} else {
			others = append(others, e)
		}
	}
	if len(shorts) < shortCount {
		return nil, errors.New("not enough short-answer questions for a mock paper")
	}

	rng.Shuffle(len(shorts), func(i, j int) { shorts[i], shorts[j] = shorts[j], shorts[i] })
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	// subset-sum over the objective questions: dp[sum] = indices into
	// others reaching sum; first subset found per sum wins
	dp := map[int][]int{0: {}}
	for idx, e := range others {
		sums := make([]int, 0, len(dp))
		for s := range dp {
			sums = append(sums, s)
		}
		for _, s := range sums {
			next := s + e.score
			if next > totalScore {
				continue
			}
			if _, ok := dp[next]; ok {
				continue
			}
			subset := append(append([]int(nil), dp[s]...), idx)
			dp[next] = subset
		}
	}

	// try every shortCount-combination of short questions against the DP
	combo := make([]int, shortCount)
	var found []quiz.Question
	var pick func(start, depth, sum int) bool
	pick = func(start, depth, sum int) bool {
		if sum > totalScore {
			return false
		}
		if depth == shortCount {
			indices, ok := dp[totalScore-sum]
			if !ok {
				return false
			}
			found = assemble(others, indices, shorts, combo)
			return true
		}
		for i := start; i < len(shorts); i++ {
			combo[depth] = i
			if pick(i+1, depth+1, sum+shorts[i].score) {
				return true
			}
		}
		return false
	}
	if !pick(0, 0, 0) {
		return nil, ErrMockInfeasible
	}
	return found, nil
}

func assemble(others []mockEntry, objective []int, shorts []mockEntry, chosen []int) []quiz.Question {
	var singles, multiples, truefalses []quiz.Question
	for _, i := range objective {
		switch others[i].kind {
		case quiz.KindMultiple:
			multiples = append(multiples, others[i].q)
		case quiz.KindTrueFalse:
			truefalses = append(truefalses, others[i].q)
		default:
			singles = append(singles, others[i].q)
		}
	}
	out := make([]quiz.Question, 0, len(objective)+len(chosen))
	out = append(out, singles...)
	out = append(out, multiples...)
	out = append(out, truefalses...)
	for _, i := range chosen {
		out = append(out, shorts[i].q)
	}
	return out
}
