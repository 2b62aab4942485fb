package report

import (
	"github.com/HerbHall/chipmatch/internal/scoring"
	"github.com/HerbHall/chipmatch/pkg/models"
)

// Trend is the least-squares line of balanced score against price.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	// R2 is the coefficient of determination.
	R2 float64 `json:"r2"`
	// Valid is false when prices do not vary, so no line fits.
	Valid bool `json:"valid"`
}

// At evaluates the line at price.
func (t Trend) At(price float64) float64 {
	return t.Intercept + t.Slope*price
}

func fitTrend(records []models.Processor, scorer *scoring.Scorer) Trend {
	n := float64(len(records))
	if n < 2 {
		return Trend{}
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	var sumX, sumY float64
	for i := range records {
		xs[i] = records[i].Price
		ys[i] = scorer.Score(&records[i])
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy, syy float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	if sxx == 0 {
		return Trend{}
	}

	t := Trend{Slope: sxy / sxx, Valid: true}
	t.Intercept = meanY - t.Slope*meanX
	if syy > 0 {
		t.R2 = (sxy * sxy) / (sxx * syy)
	} else {
		t.R2 = 1
	}
	return t
}
