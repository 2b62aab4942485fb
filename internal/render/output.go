package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HerbHall/chipmatch/internal/catalog"
	"github.com/HerbHall/chipmatch/internal/compare"
	"github.com/HerbHall/chipmatch/internal/features"
	"github.com/HerbHall/chipmatch/internal/report"
	"github.com/HerbHall/chipmatch/pkg/models"
)

// Recommendations writes a recommendation result.
func (r *Renderer) Recommendations(res *catalog.Result) error {
	if r.format == FormatJSON {
		return r.writeJSON(res)
	}

	r.line(r.styles.title.Render(fmt.Sprintf("Recommendations: %s, %s, %s (%s)",
		res.Resolution, res.Criteria, res.Profile.Label(), res.Priority.Label())))
	if res.Empty() {
		r.printf("No processors match %s in the %s range.\n", res.Resolution, res.Criteria)
		if hint := widenHint(res); hint != "" {
			r.line(r.styles.dim.Render(hint))
		}
		return nil
	}

	rows := make([][]string, 0, len(res.Recommendations))
	for _, rec := range res.Recommendations {
		rows = append(rows, []string{
			strconv.Itoa(rec.Rank),
			truncate(rec.Processor.Name, maxNameWidth),
			rec.Processor.Family.String(),
			string(rec.Processor.Segment),
			r.currency(rec.Processor.Price),
			rec.Tier.String(),
			fmt.Sprintf("%.1f", rec.Score),
			fmt.Sprintf("%.2f", rec.Value),
			r.styles.badge.Render(strings.Join(rec.BestFor, ", ")),
		})
	}
	r.table([]string{"#", "Processor", "Family", "Segment", "Price", "Tier", "Score", "Value", "Best for"},
		rows, 0, 4, 6, 7)

	if res.BestValue >= 0 {
		best := res.Recommendations[res.BestValue]
		r.line(r.styles.good.Render(fmt.Sprintf("Best value: %s (%.2f points per $1000)",
			best.Processor.Name, best.Value)))
	}
	r.line(r.styles.dim.Render(fmt.Sprintf("%d of %d matching processors shown. Query %s",
		len(res.Recommendations), res.Matched, res.QueryID)))
	return nil
}

// widenHint suggests which criteria to relax after an empty result.
func widenHint(res *catalog.Result) string {
	var relax []string
	if !res.Criteria.Unbounded() {
		relax = append(relax, "widen the price range")
	}
	if !res.Resolution.Wildcard() {
		relax = append(relax, "try a broader name or family")
	}
	if len(relax) == 0 {
		return ""
	}
	hint := strings.Join(relax, " or ")
	return "Hint: " + hint + "."
}

type similarOutput struct {
	Reference string           `json:"reference"`
	Matches   []features.Match `json:"matches"`
}

// Similar writes the nearest neighbours of ref.
func (r *Renderer) Similar(ref models.Processor, matches []features.Match) error {
	if r.format == FormatJSON {
		if matches == nil {
			matches = []features.Match{}
		}
		return r.writeJSON(similarOutput{Reference: ref.Name, Matches: matches})
	}

	r.line(r.styles.title.Render("Processors similar to " + ref.Name))
	if len(matches) == 0 {
		r.line("No other processors in the catalog.")
		return nil
	}
	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(m.Processor.Name, maxNameWidth),
			m.Processor.Family.String(),
			string(m.Processor.Segment),
			r.currency(m.Processor.Price),
			fmt.Sprintf("%.3f", m.Similarity),
		})
	}
	r.table([]string{"#", "Processor", "Family", "Segment", "Price", "Similarity"}, rows, 0, 4, 5)
	return nil
}

// Comparison writes a side-by-side comparison.
func (r *Renderer) Comparison(res compare.Result) error {
	if r.format == FormatJSON {
		return r.writeJSON(res)
	}

	r.line(r.styles.title.Render(res.First + " vs " + res.Second))
	mark := func(won bool, s string) string {
		if won {
			return r.styles.good.Render(s + " *")
		}
		return s
	}
	rows := make([][]string, 0, len(res.Fields))
	for _, fo := range res.Fields {
		spec := fo.Field.Spec()
		rows = append(rows, []string{
			spec.Label,
			mark(fo.Outcome == compare.FirstBetter, quantity(fo.First, spec.Unit)),
			mark(fo.Outcome == compare.SecondBetter, quantity(fo.Second, spec.Unit)),
		})
	}
	r.table([]string{"Specification", "First", "Second"}, rows)

	first, second, ties := res.Wins()
	r.printf("Wins: %d-%d (%d tied). Value score per $1000: %.2f vs %.2f\n",
		first, second, ties, res.FirstValue, res.SecondValue)
	switch res.Verdict {
	case compare.FirstBetterValue:
		r.line(r.styles.good.Render(res.First + " offers better value"))
	case compare.SecondBetterValue:
		r.line(r.styles.good.Render(res.Second + " offers better value"))
	default:
		r.line("Both offer similar value")
	}
	return nil
}

func quantity(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if len(s) > 8 {
		s = strconv.FormatFloat(v, 'f', 3, 64)
	}
	switch unit {
	case "":
		return s
	case "USD":
		return "$" + s
	default:
		return s + " " + unit
	}
}

// Processors writes a plain list, as returned by a search.
func (r *Renderer) Processors(list []models.Processor) error {
	if r.format == FormatJSON {
		if list == nil {
			list = []models.Processor{}
		}
		return r.writeJSON(list)
	}

	rows := make([][]string, 0, len(list))
	for i := range list {
		p := &list[i]
		rows = append(rows, []string{
			truncate(p.Name, maxNameWidth),
			p.Model,
			p.Family.String(),
			string(p.Segment),
			r.currency(p.Price),
			strconv.Itoa(p.TotalCores),
			fmt.Sprintf("%.1f GHz", p.MaxTurboGHz),
		})
	}
	r.table([]string{"Processor", "Model", "Family", "Segment", "Price", "Cores", "Turbo"}, rows, 4, 5, 6)
	return nil
}

type suggestionOutput struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Suggestions reports a query with no match and the closest model numbers.
func (r *Renderer) Suggestions(query string, suggestions []string) error {
	if r.format == FormatJSON {
		if suggestions == nil {
			suggestions = []string{}
		}
		return r.writeJSON(suggestionOutput{Query: query, Suggestions: suggestions})
	}

	r.printf("No processor matches %q.\n", query)
	if len(suggestions) > 0 {
		r.line("Did you mean: " + strings.Join(suggestions, ", ") + "?")
	}
	return nil
}

// Stats writes a catalog report.
func (r *Renderer) Stats(s *report.Stats) error {
	if r.format == FormatJSON {
		return r.writeJSON(s)
	}

	r.line(r.styles.title.Render("Catalog summary"))
	r.printf("%d processors, %s to %s\n\n", s.Count, r.currency(s.Price.Min), r.currency(s.Price.Max))

	r.groups("Family", s.Families)
	r.line("")
	r.groups("Segment", s.Segments)
	r.line("")

	tiers := make([][]string, 0, len(s.Tiers))
	for _, tg := range s.Tiers {
		lo, hi := tg.Tier.Bounds()
		span := r.currency(lo) + "+"
		if hi < 1e12 {
			span = r.currency(lo) + "-" + r.currency(hi)
		}
		fams := make([]string, len(tg.Families))
		for i, f := range tg.Families {
			fams[i] = f.String()
		}
		tiers = append(tiers, []string{tg.Tier.String(), span, strconv.Itoa(tg.Count), strings.Join(fams, ", ")})
	}
	r.table([]string{"Tier", "Range", "Count", "Families"}, tiers, 2)
	r.line("")

	r.ranked("Highest turbo", s.TopTurbo, "%.1f GHz")
	r.ranked("Most cores", s.TopCores, "%.0f")
	r.ranked("Most efficient", s.TopEfficiency, "%.3f GHz/W")
	r.ranked("Best value", s.BestValue, "%.2f")

	if s.Trend.Valid {
		r.line(r.styles.dim.Render(fmt.Sprintf(
			"Trend: score = %.4f x price + %.2f (r2 %.2f)", s.Trend.Slope, s.Trend.Intercept, s.Trend.R2)))
	}
	return nil
}

func (r *Renderer) groups(label string, groups []report.Group) {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Name,
			strconv.Itoa(g.Count),
			r.currency(g.Price.Min) + "-" + r.currency(g.Price.Max),
			r.currency(g.AvgPrice),
			fmt.Sprintf("%.1f", g.AvgCores),
			fmt.Sprintf("%.2f", g.AvgTurbo),
		})
	}
	r.table([]string{label, "Count", "Price range", "Avg price", "Avg cores", "Avg turbo"}, rows, 1, 3, 4, 5)
}

func (r *Renderer) ranked(title string, list []report.Ranked, metric string) {
	r.line(r.styles.header.Render(title))
	rows := make([][]string, 0, len(list))
	for i, e := range list {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(e.Name, maxNameWidth),
			r.currency(e.Price),
			fmt.Sprintf(metric, e.Metric),
		})
	}
	r.table([]string{"#", "Processor", "Price", "Metric"}, rows, 0, 2, 3)
	r.line("")
}
