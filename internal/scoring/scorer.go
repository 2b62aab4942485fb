package scoring

import (
	"fmt"
	"maps"
	"slices"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// Weights maps a field to a non-negative weight. Only higher-is-better
// fields that never fall when another weighted field rises may carry
// weight, which keeps every score monotone.
type Weights map[models.Field]float64

var profileWeights = [...]Weights{
	Gaming: {
		models.FieldMaxTurbo:         5,
		models.FieldBaseFreq:         2,
		models.FieldPerformanceCores: 2,
		models.FieldCache:            2,
		models.FieldTotalCores:       1,
		models.FieldGfxMaxDyn:        1,
		models.FieldMemBandwidth:     1,
	},
	ContentCreation: {
		models.FieldTotalCores:     4,
		models.FieldTotalThreads:   3,
		models.FieldCache:          2,
		models.FieldMaxTurbo:       2,
		models.FieldMemBandwidth:   2,
		models.FieldMaxMemory:      1,
		models.FieldExecutionUnits: 1,
	},
	Office: {
		models.FieldFreqPerWatt:    3,
		models.FieldCoresPerWatt:   2,
		models.FieldGfxMaxDyn:      2,
		models.FieldExecutionUnits: 1,
		models.FieldBaseFreq:       1,
		models.FieldMaxTurbo:       1,
	},
	Programming: {
		models.FieldMaxTurbo:     3,
		models.FieldTotalCores:   3,
		models.FieldTotalThreads: 2,
		models.FieldCache:        2,
		models.FieldMaxMemory:    1,
		models.FieldBaseFreq:     1,
	},
	Enterprise: {
		models.FieldTotalCores:   4,
		models.FieldCache:        3,
		models.FieldMaxMemory:    3,
		models.FieldMemChannels:  2,
		models.FieldMemBandwidth: 2,
		models.FieldPCIeLanes:    2,
		models.FieldTotalThreads: 2,
	},
}

// priorityMultipliers reshape profile weights. Fields not listed keep
// their weight.
var priorityMultipliers = [...]map[models.Field]float64{
	Balanced: {},
	SingleCore: {
		models.FieldMaxTurbo:         2,
		models.FieldBaseFreq:         1.5,
		models.FieldPerformanceCores: 1.25,
		models.FieldTotalCores:       0.5,
		models.FieldTotalThreads:     0.5,
	},
	MultiCore: {
		models.FieldTotalCores:     2,
		models.FieldTotalThreads:   2,
		models.FieldEfficientCores: 1.5,
		models.FieldCache:          1.25,
		models.FieldMaxTurbo:       0.75,
	},
	PowerEfficiency: {
		models.FieldFreqPerWatt:  2.5,
		models.FieldCoresPerWatt: 2.5,
		models.FieldMaxTurbo:     0.75,
		models.FieldBaseFreq:     0.75,
	},
}

// balancedWeights is the profile-agnostic performance mix used for value
// verdicts and the stats report.
var balancedWeights = Weights{
	models.FieldMaxTurbo:    0.4,
	models.FieldTotalCores:  0.3,
	models.FieldFreqPerWatt: 0.3,
}

// Scorer computes a 0-100 usage score. It is immutable and safe for
// concurrent use.
type Scorer struct {
	fields  []models.Field
	weights []float64
	total   float64
}

// New returns the scorer for a profile and priority. Effective weights
// are the profile's base weights times the priority's multipliers.
func New(profile Profile, priority Priority) (*Scorer, error) {
	if !profile.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPriority, priority)
	}

	w := make(Weights, len(profileWeights[profile]))
	for f, base := range profileWeights[profile] {
		mult, ok := priorityMultipliers[priority][f]
		if !ok {
			mult = 1
		}
		w[f] = base * mult
	}
	return fromWeights(w), nil
}

// Neutral returns the scorer used for profile-independent value: the
// catalog performance score weighting turbo, cores and efficiency.
func Neutral() *Scorer {
	return fromWeights(balancedWeights)
}

func fromWeights(w Weights) *Scorer {
	s := &Scorer{}
	for _, f := range slices.Sorted(maps.Keys(w)) {
		if w[f] <= 0 {
			continue
		}
		s.fields = append(s.fields, f)
		s.weights = append(s.weights, w[f])
		s.total += w[f]
	}
	return s
}

// Weights returns a copy of the effective weights.
func (s *Scorer) Weights() Weights {
	w := make(Weights, len(s.fields))
	for i, f := range s.fields {
		w[f] = s.weights[i]
	}
	return w
}

// Score returns 100 times the weighted mean of p's scaled fields.
func (s *Scorer) Score(p *models.Processor) float64 {
	if s.total == 0 {
		return 0
	}
	var sum float64
	for i, f := range s.fields {
		sum += s.weights[i] * Scale(f, p.Value(f))
	}
	return 100 * sum / s.total
}

// Scale maps v into [0, 1] against the field's documented range. The
// unknown sentinel of an optional field scales to 0.
func Scale(f models.Field, v float64) float64 {
	spec := f.Spec()
	span := spec.Max - spec.Min
	if span <= 0 || span > 1e12 {
		return 0
	}
	return max(0, min(1, (v-spec.Min)/span))
}

// Value is score points per $1000 of price. A non-positive price has no
// value.
func Value(score, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return score / (price / 1000)
}
