package catalog

import (
	"errors"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/HerbHall/chipmatch/internal/compare"
	"github.com/HerbHall/chipmatch/internal/match"
	"github.com/HerbHall/chipmatch/internal/metrics"
	"github.com/HerbHall/chipmatch/internal/scoring"
	"github.com/HerbHall/chipmatch/internal/testutil"
	pkgcatalog "github.com/HerbHall/chipmatch/pkg/catalog"
	"github.com/HerbHall/chipmatch/pkg/models"
)

func twoRecordEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cat, err := pkgcatalog.New([]models.Processor{
		testutil.NewProcessor(
			testutil.WithName("Core i7-13700"),
			testutil.WithModel("i7-13700"),
			testutil.WithFamily(models.FamilyCore7),
			testutil.WithPrice(450),
		),
		testutil.NewProcessor(
			testutil.WithName("Core Ultra 9 185H"),
			testutil.WithModel("185H"),
			testutil.WithFamily(models.FamilyCoreUltra),
			testutil.WithSegment(models.SegmentMobile),
			testutil.WithPrice(650),
		),
	})
	if err != nil {
		t.Fatalf("pkgcatalog.New: %v", err)
	}
	return NewEngine(cat, append([]Option{WithLogger(testutil.QuietLogger())}, opts...)...)
}

func defaultEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cat, err := pkgcatalog.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return NewEngine(cat, opts...)
}

func TestEngine_ConcreteScenario(t *testing.T) {
	e := twoRecordEngine(t)

	res := e.ResolveName("i7")
	if len(res.Families) != 1 || res.Families[0] != models.FamilyCore7 {
		t.Fatalf("ResolveName(i7) = %+v, want Core 7", res)
	}

	priced, err := e.FilterByPrice(match.Between(300, 600))
	if err != nil {
		t.Fatalf("FilterByPrice: %v", err)
	}
	if len(priced) != 1 || priced[0].Price != 450 {
		t.Fatalf("FilterByPrice(300,600) = %+v, want only the $450 record", priced)
	}

	got, err := e.Recommend(Query{
		Name:     "i7",
		Price:    match.Between(300, 600),
		Profile:  scoring.Gaming,
		Priority: scoring.SingleCore,
		TopN:     5,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(got.Recommendations))
	}
	first := got.Recommendations[0]
	if first.Rank != 1 || first.Processor.Name != "Core i7-13700" {
		t.Errorf("rank 1 = %q (rank %d), want Core i7-13700", first.Processor.Name, first.Rank)
	}
	if got.BestValue != 0 {
		t.Errorf("BestValue = %d, want 0", got.BestValue)
	}
	if got.QueryID == "" {
		t.Error("expected a query id")
	}
}

func TestEngine_EmptyWindowIsNotError(t *testing.T) {
	e := twoRecordEngine(t)
	res, err := e.Recommend(Query{Price: match.Between(600, 640), Profile: scoring.Gaming})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !res.Empty() || res.Matched != 0 {
		t.Errorf("expected empty result, got %d recommendations", len(res.Recommendations))
	}
	if res.BestValue != -1 {
		t.Errorf("BestValue = %d, want -1", res.BestValue)
	}
}

func TestEngine_NoRecordsBetween600And1000(t *testing.T) {
	cat, err := pkgcatalog.New([]models.Processor{
		testutil.NewProcessor(testutil.WithName("cheap"), testutil.WithPrice(450)),
		testutil.NewProcessor(testutil.WithName("dear"), testutil.WithPrice(1200)),
	})
	if err != nil {
		t.Fatalf("pkgcatalog.New: %v", err)
	}
	e := NewEngine(cat)
	res, err := e.Recommend(Query{Price: match.Between(600, 1000), Profile: scoring.Office})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected no recommendations, got %d", len(res.Recommendations))
	}
}

func TestEngine_RecommendErrors(t *testing.T) {
	e := twoRecordEngine(t)

	_, err := e.Recommend(Query{Price: match.Between(600, 100)})
	if !errors.Is(err, match.ErrInvalidRange) {
		t.Errorf("reversed range: got %v, want ErrInvalidRange", err)
	}
	_, err = e.Recommend(Query{Price: match.AnyPrice(), Profile: scoring.Profile(42)})
	if !errors.Is(err, scoring.ErrUnknownProfile) {
		t.Errorf("bad profile: got %v, want ErrUnknownProfile", err)
	}
	_, err = e.Recommend(Query{Price: match.AnyPrice(), Priority: scoring.Priority(42)})
	if !errors.Is(err, scoring.ErrUnknownPriority) {
		t.Errorf("bad priority: got %v, want ErrUnknownPriority", err)
	}
}

func TestEngine_EmptyCatalog(t *testing.T) {
	cat, err := pkgcatalog.New(nil)
	if err != nil {
		t.Fatalf("pkgcatalog.New: %v", err)
	}
	e := NewEngine(cat)

	if _, err := e.Recommend(Query{Price: match.AnyPrice()}); !errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		t.Errorf("Recommend: got %v, want ErrEmptyCatalog", err)
	}
	if _, err := e.FilterByPrice(match.AnyPrice()); !errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		t.Errorf("FilterByPrice: got %v, want ErrEmptyCatalog", err)
	}
	if _, err := e.FindSimilar(testutil.NewProcessor(), 3); !errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		t.Errorf("FindSimilar: got %v, want ErrEmptyCatalog", err)
	}
	a := testutil.NewProcessor()
	if _, err := e.Compare(a, a); !errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		t.Errorf("Compare: got %v, want ErrEmptyCatalog", err)
	}
	if _, err := e.Search("i7"); !errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		t.Errorf("Search: got %v, want ErrEmptyCatalog", err)
	}
	if _, err := e.Lookup("x"); !errors.Is(err, pkgcatalog.ErrEmptyCatalog) {
		t.Errorf("Lookup: got %v, want ErrEmptyCatalog", err)
	}
	if got := e.Suggest("i", 5); len(got) != 0 {
		t.Errorf("Suggest on empty catalog = %v", got)
	}
}

func TestEngine_Recommend_SortedAndTruncated(t *testing.T) {
	e := defaultEngine(t)
	res, err := e.Recommend(Query{Price: match.AnyPrice(), Profile: scoring.ContentCreation, Priority: scoring.MultiCore, TopN: 8})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Recommendations) != 8 {
		t.Fatalf("expected 8 recommendations, got %d", len(res.Recommendations))
	}
	if res.Matched != e.Len() {
		t.Errorf("Matched = %d, want %d", res.Matched, e.Len())
	}
	for i, r := range res.Recommendations {
		if r.Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, r.Rank)
		}
		if i > 0 && compareRecommendations(res.Recommendations[i-1], r) > 0 {
			t.Errorf("entries %d and %d out of order", i-1, i)
		}
		if len(r.BestFor) == 0 {
			t.Errorf("%s has no badges", r.Processor.Name)
		}
	}
	best := res.Recommendations[res.BestValue]
	for _, r := range res.Recommendations {
		if r.Value > best.Value {
			t.Errorf("%s has value %v above best value %v", r.Processor.Name, r.Value, best.Value)
		}
	}
}

func TestEngine_Recommend_DefaultTopN(t *testing.T) {
	e := defaultEngine(t, WithDefaultTopN(3, 2))
	res, err := e.Recommend(Query{Price: match.AnyPrice()})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Recommendations) != 3 {
		t.Errorf("expected default of 3, got %d", len(res.Recommendations))
	}

	p, err := e.Lookup("Intel® Core™ i5-12400 Processor")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	sim, err := e.FindSimilar(p, 0)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(sim) != 2 {
		t.Errorf("expected default of 2 similar, got %d", len(sim))
	}
}

func TestEngine_Recommend_UnsetPriceMeansAny(t *testing.T) {
	e := twoRecordEngine(t)
	res, err := e.Recommend(Query{TopN: 10})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Matched != 2 {
		t.Errorf("Matched = %d, want 2", res.Matched)
	}
	if !res.Criteria.Unbounded() {
		t.Errorf("Criteria = %s, want any price", res.Criteria)
	}

	// An explicit window is still honoured.
	res, err = e.Recommend(Query{Price: match.AtMost(500)})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Matched != 1 {
		t.Errorf("Matched = %d, want 1 under $500", res.Matched)
	}
}

func TestEngine_Recommend_NameAndTier(t *testing.T) {
	e := defaultEngine(t)
	res, err := e.Recommend(Query{Name: "i9", Price: match.TierMidRange.Criteria(), Profile: scoring.Gaming})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Empty() {
		t.Fatal("expected Core 9 processors between $300 and $600")
	}
	for _, r := range res.Recommendations {
		if r.Processor.Family != models.FamilyCore9 {
			t.Errorf("%s is %s, want Core 9", r.Processor.Name, r.Processor.Family)
		}
		if r.Processor.Price < 300 || r.Processor.Price > 600 {
			t.Errorf("%s priced %v outside $300-$600", r.Processor.Name, r.Processor.Price)
		}
	}
}

func TestEngine_FindSimilar(t *testing.T) {
	e := defaultEngine(t)
	ref, err := e.Lookup("Intel® Core™ i9-14900K Processor")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got, err := e.FindSimilar(ref, 3)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for _, m := range got {
		if m.Processor.Name == ref.Name {
			t.Error("reference returned as its own neighbour")
		}
	}
	if got[0].Processor.Model != "i9-13900K" {
		t.Errorf("nearest = %s, want i9-13900K", got[0].Processor.Model)
	}
}

func TestEngine_Compare(t *testing.T) {
	e := defaultEngine(t, WithValueMargin(0))
	a, err := e.Find("i5-12400")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	b, err := e.Find("i9-14900KS")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	res, err := e.Compare(a, b)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.First != a.Name || res.Second != b.Name {
		t.Errorf("names = %q, %q", res.First, res.Second)
	}
	if res.Verdict == compare.SimilarValue {
		t.Error("zero margin should always pick a side for different values")
	}
}

func TestEngine_SearchAndFind(t *testing.T) {
	e := defaultEngine(t)

	hits, err := e.Search("xeon max")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 Xeon Max hits, got %d", len(hits))
	}
	if hits[0].Price > hits[1].Price {
		t.Error("search results not sorted by price")
	}

	if _, err := e.Find("13700"); err != nil {
		t.Errorf("Find(13700): %v", err)
	}
	if _, err := e.Find("Pentium 4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(Pentium 4): got %v, want ErrNotFound", err)
	}
	if _, err := e.Find("i7"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("Find(i7): got %v, want ErrAmbiguous", err)
	}
	p, err := e.Find("i9-14900K")
	if err != nil {
		t.Fatalf("Find(i9-14900K): %v", err)
	}
	if p.Model != "i9-14900K" {
		t.Errorf("exact model match lost to %s", p.Model)
	}
}

func TestEngine_Suggest(t *testing.T) {
	e := defaultEngine(t)
	got := e.Suggest("I9-1", 10)
	want := []string{"i9-13900K", "i9-13980HX", "i9-14900K", "i9-14900KS"}
	if len(got) != len(want) {
		t.Fatalf("Suggest(I9-1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := e.Suggest("i", 2); len(got) != 2 {
		t.Errorf("expected cap of 2, got %v", got)
	}
	if got := e.Suggest("zzz", 5); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestEngine_RecordsMetrics(t *testing.T) {
	rec := metrics.New()
	clock := testutil.NewClock()
	e := twoRecordEngine(t, WithMetrics(rec), WithClock(clock.Now))

	if _, err := e.Recommend(Query{Name: "i7", Price: match.AnyPrice()}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if _, err := e.Recommend(Query{Name: "xeon", Price: match.AnyPrice()}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	_, _ = e.Recommend(Query{Price: match.Between(2, 1)})

	n, err := promtest.GatherAndCount(rec.Registry(), "chipmatch_queries_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 outcome series, got %d", n)
	}

	res, _ := e.Recommend(Query{Price: match.AnyPrice()})
	if !res.GeneratedAt.Equal(clock.Now()) {
		t.Errorf("GeneratedAt = %v, want clock time %v", res.GeneratedAt, clock.Now())
	}
}
