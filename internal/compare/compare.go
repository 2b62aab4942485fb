// Package compare produces a field-by-field comparison of two processors
// and a value-for-money verdict.
package compare

import (
	"github.com/HerbHall/chipmatch/internal/scoring"
	"github.com/HerbHall/chipmatch/pkg/models"
)

// DefaultMargin is how much better one value score must be before the
// verdict names a winner.
const DefaultMargin = 0.10

// Outcome is the result for one field.
type Outcome int

const (
	Tie Outcome = iota
	FirstBetter
	SecondBetter
)

func (o Outcome) String() string {
	switch o {
	case FirstBetter:
		return "first"
	case SecondBetter:
		return "second"
	default:
		return "tie"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// invert swaps which side won.
func (o Outcome) invert() Outcome {
	switch o {
	case FirstBetter:
		return SecondBetter
	case SecondBetter:
		return FirstBetter
	default:
		return Tie
	}
}

// Verdict is the overall value-for-money call.
type Verdict int

const (
	SimilarValue Verdict = iota
	FirstBetterValue
	SecondBetterValue
)

func (v Verdict) String() string {
	switch v {
	case FirstBetterValue:
		return "first"
	case SecondBetterValue:
		return "second"
	default:
		return "similar"
	}
}

// MarshalText encodes the verdict by name.
func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// FieldOutcome compares one field.
type FieldOutcome struct {
	Field   models.Field `json:"-"`
	Key     string       `json:"field"`
	First   float64      `json:"first"`
	Second  float64      `json:"second"`
	Outcome Outcome      `json:"outcome"`
}

// Result is a full comparison.
type Result struct {
	First       string         `json:"first"`
	Second      string         `json:"second"`
	Fields      []FieldOutcome `json:"fields"`
	FirstValue  float64        `json:"first_value"`
	SecondValue float64        `json:"second_value"`
	Verdict     Verdict        `json:"verdict"`
}

// Wins counts fields won by each side and ties.
func (r *Result) Wins() (first, second, ties int) {
	for _, fo := range r.Fields {
		switch fo.Outcome {
		case FirstBetter:
			first++
		case SecondBetter:
			second++
		default:
			ties++
		}
	}
	return first, second, ties
}

// Compare compares a and b with DefaultMargin.
func Compare(a, b *models.Processor) Result {
	return CompareWithMargin(a, b, DefaultMargin)
}

// CompareWithMargin compares every field both processors publish, using
// each field's polarity. Only exactly equal values tie. The verdict uses
// the balanced scorer so no usage profile skews it; a negative margin is
// treated as zero.
func CompareWithMargin(a, b *models.Processor, margin float64) Result {
	r := Result{First: a.Name, Second: b.Name}

	for _, f := range models.Fields() {
		if !a.Known(f) || !b.Known(f) {
			continue
		}
		va, vb := a.Value(f), b.Value(f)
		r.Fields = append(r.Fields, FieldOutcome{
			Field:   f,
			Key:     f.String(),
			First:   va,
			Second:  vb,
			Outcome: outcome(f.Spec().Polarity, va, vb),
		})
	}

	balanced := scoring.Neutral()
	r.FirstValue = scoring.Value(balanced.Score(a), a.Price)
	r.SecondValue = scoring.Value(balanced.Score(b), b.Price)
	r.Verdict = verdict(r.FirstValue, r.SecondValue, max(0, margin))
	return r
}

func outcome(pol models.Polarity, a, b float64) Outcome {
	if a == b {
		return Tie
	}
	better := a > b
	if pol == models.LowerIsBetter {
		better = a < b
	}
	if better {
		return FirstBetter
	}
	return SecondBetter
}

func verdict(first, second, margin float64) Verdict {
	switch {
	case first > second*(1+margin):
		return FirstBetterValue
	case second > first*(1+margin):
		return SecondBetterValue
	default:
		return SimilarValue
	}
}
