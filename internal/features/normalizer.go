// Package features turns processor records into standardised feature
// vectors and ranks them by cosine similarity.
package features

import (
	"errors"
	"math"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// ErrNoRecords is returned by Fit when there is nothing to fit.
var ErrNoRecords = errors.New("features: no records to fit")

// Vector is a standardised feature vector laid out in models.Fields order.
type Vector []float64

// Normalizer holds per-field z-score parameters fitted over a whole
// catalog. It is immutable after Fit and safe for concurrent use.
type Normalizer struct {
	fields  []models.Field
	means   []float64
	stddevs []float64
}

// Fit computes the mean and population standard deviation of every field
// over records.
func Fit(records []models.Processor) (*Normalizer, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	fields := models.Fields()
	n := &Normalizer{
		fields:  fields,
		means:   make([]float64, len(fields)),
		stddevs: make([]float64, len(fields)),
	}
	count := float64(len(records))

	for j, f := range fields {
		var sum float64
		for i := range records {
			sum += records[i].Value(f)
		}
		mean := sum / count

		var sq float64
		for i := range records {
			d := records[i].Value(f) - mean
			sq += d * d
		}
		n.means[j] = mean
		n.stddevs[j] = math.Sqrt(sq / count)
	}
	return n, nil
}

// Transform returns the z-scores of p. A field with zero spread scales
// to 0.
func (n *Normalizer) Transform(p *models.Processor) Vector {
	v := make(Vector, len(n.fields))
	for j, f := range n.fields {
		if n.stddevs[j] == 0 {
			continue
		}
		v[j] = (p.Value(f) - n.means[j]) / n.stddevs[j]
	}
	return v
}

// Fields returns the vector layout.
func (n *Normalizer) Fields() []models.Field { return append([]models.Field(nil), n.fields...) }

// Means returns a copy of the fitted means.
func (n *Normalizer) Means() []float64 { return append([]float64(nil), n.means...) }

// StdDevs returns a copy of the fitted standard deviations.
func (n *Normalizer) StdDevs() []float64 { return append([]float64(nil), n.stddevs...) }
