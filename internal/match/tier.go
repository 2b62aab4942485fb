package match

import (
	"math"
	"strings"
)

// Tier is a named price band.
type Tier int

const (
	TierBudget Tier = iota
	TierMidRange
	TierHighEnd
	TierPremium
	TierUltraPremium
)

var tierTable = [...]struct {
	lower, upper float64
	label        string
}{
	TierBudget:       {0, 300, "Budget"},
	TierMidRange:     {300, 600, "Mid-range"},
	TierHighEnd:      {600, 1000, "High-end"},
	TierPremium:      {1000, 2000, "Premium"},
	TierUltraPremium: {2000, math.Inf(1), "Ultra Premium"},
}

// Tiers lists every tier from cheapest to most expensive.
func Tiers() []Tier {
	return []Tier{TierBudget, TierMidRange, TierHighEnd, TierPremium, TierUltraPremium}
}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierTable) {
		return "Unknown"
	}
	return tierTable[t].label
}

// MarshalText encodes the tier by label.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Bounds returns the tier's lower and upper price.
func (t Tier) Bounds() (lower, upper float64) {
	if t < 0 || int(t) >= len(tierTable) {
		return math.NaN(), math.NaN()
	}
	return tierTable[t].lower, tierTable[t].upper
}

// Criteria returns the inclusive filter for the tier, so a record priced
// exactly on a boundary is offered by both neighbouring tiers.
func (t Tier) Criteria() Criteria {
	lo, hi := t.Bounds()
	return Between(lo, hi)
}

// TierOf labels a price using half-open [lower, upper) bands.
func TierOf(price float64) Tier {
	for _, t := range Tiers() {
		if lo, hi := t.Bounds(); price >= lo && price < hi {
			return t
		}
	}
	if price < 0 {
		return TierBudget
	}
	return TierUltraPremium
}

// ParseTier accepts a tier label in any case, with or without separators.
func ParseTier(s string) (Tier, bool) {
	key := tierKey(s)
	for _, t := range Tiers() {
		if tierKey(t.String()) == key {
			return t, true
		}
	}
	return 0, false
}

func tierKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
