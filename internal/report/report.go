// Package report summarises a processor catalog: counts and price ranges
// per family, segment, category and price tier, top performers, the best
// value processors and a price/performance trend line.
package report

import (
	"cmp"
	"slices"

	"github.com/HerbHall/chipmatch/internal/match"
	"github.com/HerbHall/chipmatch/internal/scoring"
	pkgcatalog "github.com/HerbHall/chipmatch/pkg/catalog"
	"github.com/HerbHall/chipmatch/pkg/models"
)

const (
	topPerformers = 5
	bestValueSize = 10
)

// Range is a closed min/max interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Group summarises the records sharing one family, segment or category.
type Group struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Price    Range   `json:"price"`
	AvgPrice float64 `json:"avg_price"`
	AvgTurbo float64 `json:"avg_turbo_ghz"`
	AvgCores float64 `json:"avg_cores"`
	AvgCache float64 `json:"avg_cache_mb"`
}

// TierGroup counts the records in one price tier.
type TierGroup struct {
	Tier     match.Tier      `json:"tier"`
	Count    int             `json:"count"`
	Families []models.Family `json:"families"`
}

// Ranked is one entry of a top list.
type Ranked struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Metric float64 `json:"metric"`
}

// Stats is the full catalog report.
type Stats struct {
	Count      int         `json:"count"`
	Price      Range       `json:"price"`
	Families   []Group     `json:"families"`
	Segments   []Group     `json:"segments"`
	Categories []Group     `json:"categories"`
	Tiers      []TierGroup `json:"tiers"`

	TopTurbo      []Ranked `json:"top_turbo"`
	TopCores      []Ranked `json:"top_cores"`
	TopEfficiency []Ranked `json:"top_efficiency"`
	// BestValue ranks by balanced score per $1000.
	BestValue []Ranked `json:"best_value"`
	Trend     Trend    `json:"trend"`
}

// Build computes the report for records.
func Build(records []models.Processor) (*Stats, error) {
	if len(records) == 0 {
		return nil, pkgcatalog.ErrEmptyCatalog
	}

	s := &Stats{
		Count: len(records),
		Price: priceRange(records),
	}

	for _, f := range models.Families {
		if g, ok := group(f.String(), records, func(p *models.Processor) bool { return p.Family == f }); ok {
			s.Families = append(s.Families, g)
		}
	}
	for _, seg := range models.Segments {
		if g, ok := group(string(seg), records, func(p *models.Processor) bool { return p.Segment == seg }); ok {
			s.Segments = append(s.Segments, g)
		}
	}
	for _, c := range categories(records) {
		g, _ := group(c, records, func(p *models.Processor) bool { return p.Category == c })
		s.Categories = append(s.Categories, g)
	}

	for _, t := range match.Tiers() {
		tg := TierGroup{Tier: t}
		seen := make(map[models.Family]bool)
		for i := range records {
			if match.TierOf(records[i].Price) != t {
				continue
			}
			tg.Count++
			seen[records[i].Family] = true
		}
		for _, f := range models.Families {
			if seen[f] {
				tg.Families = append(tg.Families, f)
			}
		}
		s.Tiers = append(s.Tiers, tg)
	}

	s.TopTurbo = top(records, topPerformers, func(p *models.Processor) float64 { return p.MaxTurboGHz })
	s.TopCores = top(records, topPerformers, func(p *models.Processor) float64 { return float64(p.TotalCores) })
	s.TopEfficiency = top(records, topPerformers, (*models.Processor).FreqPerWatt)

	balanced := scoring.Neutral()
	s.BestValue = top(records, bestValueSize, func(p *models.Processor) float64 {
		return scoring.Value(balanced.Score(p), p.Price)
	})
	s.Trend = fitTrend(records, balanced)
	return s, nil
}

func priceRange(records []models.Processor) Range {
	r := Range{Min: records[0].Price, Max: records[0].Price}
	for i := range records {
		r.Min = min(r.Min, records[i].Price)
		r.Max = max(r.Max, records[i].Price)
	}
	return r
}

func group(name string, records []models.Processor, keep func(*models.Processor) bool) (Group, bool) {
	var members []models.Processor
	for i := range records {
		if keep(&records[i]) {
			members = append(members, records[i])
		}
	}
	if len(members) == 0 {
		return Group{}, false
	}

	g := Group{Name: name, Count: len(members), Price: priceRange(members)}
	for i := range members {
		g.AvgPrice += members[i].Price
		g.AvgTurbo += members[i].MaxTurboGHz
		g.AvgCores += float64(members[i].TotalCores)
		g.AvgCache += members[i].CacheMB
	}
	n := float64(len(members))
	g.AvgPrice /= n
	g.AvgTurbo /= n
	g.AvgCores /= n
	g.AvgCache /= n
	return g, true
}

func categories(records []models.Processor) []string {
	var out []string
	for i := range records {
		if records[i].Category != "" && !slices.Contains(out, records[i].Category) {
			out = append(out, records[i].Category)
		}
	}
	slices.Sort(out)
	return out
}

// top returns the n records with the highest metric, ties by price then name.
func top(records []models.Processor, n int, metric func(*models.Processor) float64) []Ranked {
	out := make([]Ranked, len(records))
	for i := range records {
		out[i] = Ranked{Name: records[i].Name, Price: records[i].Price, Metric: metric(&records[i])}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(b.Metric, a.Metric); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Price, b.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out[:min(n, len(out))]
}
