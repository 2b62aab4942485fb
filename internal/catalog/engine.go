// Package catalog provides the recommendation engine that matches the
// processor catalog against a user's name query, budget and usage.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/chipmatch/internal/compare"
	"github.com/HerbHall/chipmatch/internal/features"
	"github.com/HerbHall/chipmatch/internal/match"
	"github.com/HerbHall/chipmatch/internal/metrics"
	"github.com/HerbHall/chipmatch/internal/scoring"
	pkgcatalog "github.com/HerbHall/chipmatch/pkg/catalog"
	"github.com/HerbHall/chipmatch/pkg/models"
)

var (
	// ErrNotFound is returned when a name lookup matches no record.
	ErrNotFound = errors.New("processor not found")
	// ErrAmbiguous is returned when a query names more than one record.
	ErrAmbiguous = errors.New("query matches more than one processor")
)

// Defaults applied when a query leaves a count unset.
const (
	DefaultTopN        = 5
	DefaultSimilarTopN = 5
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l.Named("engine") }
}

// WithMetrics records every query on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithDefaultTopN sets the recommendation and similarity counts used when
// a query asks for zero or fewer results.
func WithDefaultTopN(recommend, similar int) Option {
	return func(e *Engine) {
		if recommend > 0 {
			e.topN = recommend
		}
		if similar > 0 {
			e.similarTopN = similar
		}
	}
}

// WithValueMargin sets the comparator's value verdict margin.
func WithValueMargin(m float64) Option {
	return func(e *Engine) { e.valueMargin = m }
}

// WithClock replaces time.Now for result timestamps and latency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine answers recommendation, similarity, comparison and search
// queries over one catalog. Everything it holds is fixed at construction,
// so it is safe for concurrent use.
type Engine struct {
	records []models.Processor
	cat     *pkgcatalog.Catalog
	norm    *features.Normalizer
	suggest *suggestIndex

	logger  *zap.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	topN        int
	similarTopN int
	valueMargin float64
}

// NewEngine creates a recommendation engine backed by the given catalog.
// The feature normaliser is fitted once over the whole catalog here.
func NewEngine(cat *pkgcatalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		records:     cat.Processors(),
		cat:         cat,
		logger:      zap.NewNop(),
		now:         time.Now,
		topN:        DefaultTopN,
		similarTopN: DefaultSimilarTopN,
		valueMargin: compare.DefaultMargin,
	}
	for _, opt := range opts {
		opt(e)
	}

	if norm, err := features.Fit(e.records); err == nil {
		e.norm = norm
	}
	e.suggest = newSuggestIndex(e.records)
	e.metrics.SetCatalogSize(len(e.records))
	e.logger.Debug("engine ready", zap.Int("records", len(e.records)))
	return e
}

// Len returns the number of catalog records.
func (e *Engine) Len() int { return len(e.records) }

// Records returns a copy of the catalog records.
func (e *Engine) Records() []models.Processor { return e.cat.Processors() }

// Query is a recommendation request.
type Query struct {
	Name string `json:"name"`
	// Price left as the zero Criteria means any price.
	Price    match.Criteria   `json:"price"`
	Profile  scoring.Profile  `json:"profile"`
	Priority scoring.Priority `json:"priority"`
	TopN     int              `json:"top_n"`
}

// Recommendation is one ranked entry.
type Recommendation struct {
	Rank      int              `json:"rank"`
	Processor models.Processor `json:"processor"`
	Score     float64          `json:"score"`
	Value     float64          `json:"value"`
	Tier      match.Tier       `json:"tier"`
	BestFor   []string         `json:"best_for"`
}

// Result is the answer to a Query. An empty Recommendations list means
// nothing survived the filters.
type Result struct {
	QueryID         string           `json:"query_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Resolution      match.Resolution `json:"resolution"`
	Criteria        match.Criteria   `json:"criteria"`
	Profile         scoring.Profile  `json:"profile"`
	Priority        scoring.Priority `json:"priority"`
	Matched         int              `json:"matched"`
	Recommendations []Recommendation `json:"recommendations"`
	// BestValue indexes the entry with the highest value score, or -1.
	BestValue int `json:"best_value"`
}

// Empty reports whether no processor matched.
func (r *Result) Empty() bool { return len(r.Recommendations) == 0 }

// ResolveName resolves a free-text query. It never fails.
func (e *Engine) ResolveName(query string) match.Resolution {
	return match.Resolve(query)
}

// FilterByPrice returns catalog records inside c.
func (e *Engine) FilterByPrice(c match.Criteria) (out []models.Processor, err error) {
	defer e.observe("filter", e.now(), func() int { return len(out) }, &err)

	if len(e.records) == 0 {
		return nil, pkgcatalog.ErrEmptyCatalog
	}
	return match.FilterByPrice(c, e.records)
}

// Recommend resolves the name, narrows the catalog, applies the price
// filter, scores survivors for the profile and priority, and returns the
// top N by score, then value, then price, then name.
func (e *Engine) Recommend(q Query) (res *Result, err error) {
	start := e.now()
	defer e.observe("recommend", start, func() int {
		if res == nil {
			return 0
		}
		return len(res.Recommendations)
	}, &err)

	if len(e.records) == 0 {
		return nil, pkgcatalog.ErrEmptyCatalog
	}
	scorer, err := scoring.New(q.Profile, q.Priority)
	if err != nil {
		return nil, err
	}
	if q.Price.IsZero() {
		q.Price = match.AnyPrice()
	}
	if err := q.Price.Validate(); err != nil {
		return nil, err
	}
	topN := q.TopN
	if topN <= 0 {
		topN = e.topN
	}

	res = &Result{
		QueryID:     uuid.NewString(),
		GeneratedAt: start,
		Resolution:  match.Resolve(q.Name),
		Criteria:    q.Price,
		Profile:     q.Profile,
		Priority:    q.Priority,
		BestValue:   -1,
	}
	log := e.logger.With(zap.String("query_id", res.QueryID))

	narrowed := res.Resolution.Filter(e.records)
	priced, err := match.FilterByPrice(q.Price, narrowed)
	if err != nil {
		return nil, err
	}
	log.Debug("recommend filtered",
		zap.Stringer("resolution", res.Resolution),
		zap.Stringer("criteria", q.Price),
		zap.Int("narrowed", len(narrowed)),
		zap.Int("priced", len(priced)),
	)

	recs := make([]Recommendation, len(priced))
	for i := range priced {
		score := scorer.Score(&priced[i])
		recs[i] = Recommendation{
			Processor: priced[i],
			Score:     score,
			Value:     scoring.Value(score, priced[i].Price),
			Tier:      match.TierOf(priced[i].Price),
			BestFor:   scoring.BestFor(&priced[i]),
		}
	}
	slices.SortStableFunc(recs, compareRecommendations)

	res.Matched = len(recs)
	res.Recommendations = recs[:min(topN, len(recs))]
	for i := range res.Recommendations {
		res.Recommendations[i].Rank = i + 1
		if res.BestValue < 0 || res.Recommendations[i].Value > res.Recommendations[res.BestValue].Value {
			res.BestValue = i
		}
	}

	log.Debug("recommend done",
		zap.Stringer("profile", q.Profile),
		zap.Stringer("priority", q.Priority),
		zap.Int("matched", res.Matched),
		zap.Int("returned", len(res.Recommendations)),
	)
	return res, nil
}

func compareRecommendations(a, b Recommendation) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Value, a.Value); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Processor.Price, b.Processor.Price); c != 0 {
		return c
	}
	return cmp.Compare(a.Processor.Name, b.Processor.Name)
}

// FindSimilar returns the topN catalog records most similar to p. The
// reference itself is never included.
func (e *Engine) FindSimilar(p models.Processor, topN int) (out []features.Match, err error) {
	defer e.observe("similar", e.now(), func() int { return len(out) }, &err)

	if e.norm == nil {
		return nil, pkgcatalog.ErrEmptyCatalog
	}
	if topN <= 0 {
		topN = e.similarTopN
	}
	ranked := e.norm.Rank(&p, e.records)
	e.logger.Debug("similar",
		zap.String("query_id", uuid.NewString()),
		zap.String("reference", p.Name),
		zap.Int("candidates", len(ranked)),
	)
	return ranked[:min(topN, len(ranked))], nil
}

// Compare compares two processors field by field.
func (e *Engine) Compare(a, b models.Processor) (res compare.Result, err error) {
	defer e.observe("compare", e.now(), func() int { return len(res.Fields) }, &err)

	if len(e.records) == 0 {
		return compare.Result{}, pkgcatalog.ErrEmptyCatalog
	}
	res = compare.CompareWithMargin(&a, &b, e.valueMargin)
	e.logger.Debug("compare",
		zap.String("query_id", uuid.NewString()),
		zap.String("first", a.Name),
		zap.String("second", b.Name),
		zap.Stringer("verdict", res.Verdict),
	)
	return res, nil
}

// Lookup finds a record by exact name, ignoring case.
func (e *Engine) Lookup(name string) (models.Processor, error) {
	if len(e.records) == 0 {
		return models.Processor{}, pkgcatalog.ErrEmptyCatalog
	}
	p, ok := e.cat.Lookup(name)
	if !ok {
		return models.Processor{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// Search applies a resolved query to the whole catalog and returns the
// matches by price, then name.
func (e *Engine) Search(query string) (out []models.Processor, err error) {
	defer e.observe("search", e.now(), func() int { return len(out) }, &err)

	if len(e.records) == 0 {
		return nil, pkgcatalog.ErrEmptyCatalog
	}
	out = match.Resolve(query).Filter(e.records)
	slices.SortStableFunc(out, func(a, b models.Processor) int {
		if c := cmp.Compare(a.Price, b.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Find returns the record a user most likely meant: an exact name match,
// else the only search hit. Several hits give ErrAmbiguous.
func (e *Engine) Find(query string) (models.Processor, error) {
	if p, err := e.Lookup(query); err == nil || errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		return p, err
	}
	hits, err := e.Search(query)
	if err != nil {
		return models.Processor{}, err
	}
	switch len(hits) {
	case 0:
		return models.Processor{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	case 1:
		return hits[0], nil
	}

	// A model number that matches one record exactly wins over longer ones.
	for _, h := range hits {
		if strings.EqualFold(h.Model, strings.TrimSpace(query)) {
			return h, nil
		}
	}
	names := make([]string, 0, min(len(hits), 5))
	for _, h := range hits[:min(len(hits), 5)] {
		names = append(names, h.Name)
	}
	return models.Processor{}, fmt.Errorf("%w: %q (%d matches, e.g. %s)", ErrAmbiguous, query, len(hits), strings.Join(names, "; "))
}

// Suggest returns up to n model numbers starting with prefix.
func (e *Engine) Suggest(prefix string, n int) []string {
	return e.suggest.complete(prefix, n)
}

// observe logs failures and records metrics for one operation.
func (e *Engine) observe(op string, start time.Time, count func() int, err *error) {
	elapsed := e.now().Sub(start)
	e.metrics.ObserveQuery(op, count(), elapsed, *err)
	if *err != nil {
		e.logger.Debug("query failed", zap.String("operation", op), zap.Error(*err))
	}
}
