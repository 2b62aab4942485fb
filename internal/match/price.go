package match

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// ErrInvalidRange is returned when a lower price bound exceeds the upper.
var ErrInvalidRange = errors.New("invalid price range")

// Criteria bounds a price interval, inclusive at both ends. An infinite
// bound is open. Families, when set, further restricts the family.
type Criteria struct {
	Lower    float64         `json:"lower"`
	Upper    float64         `json:"upper"`
	Families []models.Family `json:"families,omitempty"`
}

// Between returns criteria for lower <= price <= upper.
func Between(lower, upper float64) Criteria {
	return Criteria{Lower: lower, Upper: upper}
}

// AtLeast returns criteria with no upper bound.
func AtLeast(lower float64) Criteria {
	return Criteria{Lower: lower, Upper: math.Inf(1)}
}

// AtMost returns criteria with no lower bound.
func AtMost(upper float64) Criteria {
	return Criteria{Lower: math.Inf(-1), Upper: upper}
}

// AnyPrice returns criteria that accept every price.
func AnyPrice() Criteria {
	return Criteria{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Validate reports ErrInvalidRange when the bounds are reversed or NaN.
func (c Criteria) Validate() error {
	if math.IsNaN(c.Lower) || math.IsNaN(c.Upper) {
		return fmt.Errorf("%w: bound is not a number", ErrInvalidRange)
	}
	if c.Lower > c.Upper {
		return fmt.Errorf("%w: lower %s exceeds upper %s", ErrInvalidRange, formatBound(c.Lower), formatBound(c.Upper))
	}
	return nil
}

// Contains reports whether p is inside the criteria.
func (c Criteria) Contains(p *models.Processor) bool {
	if p.Price < c.Lower || p.Price > c.Upper {
		return false
	}
	return len(c.Families) == 0 || slices.Contains(c.Families, p.Family)
}

// IsZero reports whether c is the zero Criteria, which names no bounds at
// all. Query builders treat it as AnyPrice.
func (c Criteria) IsZero() bool {
	return c.Lower == 0 && c.Upper == 0 && len(c.Families) == 0
}

// Unbounded reports whether c accepts every price of every family.
func (c Criteria) Unbounded() bool {
	lowOpen, highOpen := c.open()
	return lowOpen && highOpen && len(c.Families) == 0
}

func (c Criteria) open() (low, high bool) {
	return math.IsInf(c.Lower, -1) || c.Lower <= 0, math.IsInf(c.Upper, 1)
}

func (c Criteria) String() string {
	lowOpen, highOpen := c.open()
	var s string
	switch {
	case lowOpen && highOpen:
		s = "any price"
	case highOpen:
		s = formatBound(c.Lower) + "+"
	case lowOpen:
		s = "up to " + formatBound(c.Upper)
	default:
		s = formatBound(c.Lower) + "-" + formatBound(c.Upper)
	}
	if len(c.Families) > 0 {
		names := make([]string, len(c.Families))
		for i, f := range c.Families {
			names[i] = f.String()
		}
		s += " (" + strings.Join(names, ", ") + ")"
	}
	return s
}

// MarshalJSON writes open bounds as null, since JSON has no infinity.
func (c Criteria) MarshalJSON() ([]byte, error) {
	bound := func(v float64) *float64 {
		if math.IsInf(v, 0) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		Lower    *float64        `json:"lower"`
		Upper    *float64        `json:"upper"`
		Families []models.Family `json:"families,omitempty"`
	}{bound(c.Lower), bound(c.Upper), c.Families})
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return fmt.Sprintf("$%g", v)
	}
}

// FilterByPrice returns the records inside c, in order, in one pass.
// An empty result is not an error.
func FilterByPrice(c Criteria, records []models.Processor) ([]models.Processor, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]models.Processor, 0, len(records))
	for i := range records {
		if c.Contains(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}
