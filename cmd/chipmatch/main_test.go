package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HerbHall/chipmatch/internal/catalog"
	"github.com/HerbHall/chipmatch/internal/match"
	"github.com/HerbHall/chipmatch/internal/scoring"
	pkgcatalog "github.com/HerbHall/chipmatch/pkg/catalog"
)

// run executes the CLI with args from an empty working directory and
// returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(""), &stdout, &stderr)
	a.logger = zap.NewNop()
	err := execute(args, a)
	return stdout.String(), err
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"not found", fmt.Errorf("wrapped: %w", catalog.ErrNotFound), ExitNoMatch},
		{"ambiguous", catalog.ErrAmbiguous, ExitError},
		{"other", errors.New("boom"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRecommend(t *testing.T) {
	out, err := run(t, "--no-color", "recommend", "--name", "i7", "--min", "300", "--max", "600", "--usage", "gaming")
	require.NoError(t, err)
	assert.Contains(t, out, "family Core 7")
	assert.Contains(t, out, "$300-$600")
	assert.Contains(t, out, "Best value:")
}

func TestRecommend_EmptyExitsNoMatch(t *testing.T) {
	out, err := run(t, "--no-color", "recommend", "--name", "i7", "--min", "600", "--max", "1000")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, ExitNoMatch, exitCode(err))
	assert.Contains(t, out, "No processors match")
	assert.Contains(t, out, "Hint: widen the price range")

	out, err = run(t, "--format", "json", "recommend", "--name", "i7", "--min", "600", "--max", "1000")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	var res struct {
		Matched int `json:"matched"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Zero(t, res.Matched)
}

func TestRecommend_JSONTop(t *testing.T) {
	out, err := run(t, "--format", "json", "recommend", "--usage", "enterprise", "--priority", "multi-core", "--top", "2")
	require.NoError(t, err)

	var res struct {
		Profile         string `json:"profile"`
		Priority        string `json:"priority"`
		Recommendations []struct {
			Processor struct {
				Segment string `json:"segment"`
			} `json:"processor"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "enterprise", res.Profile)
	assert.Equal(t, "multi-core", res.Priority)
	assert.Len(t, res.Recommendations, 2)
}

func TestRecommend_BadInput(t *testing.T) {
	_, err := run(t, "recommend", "--usage", "mining")
	assert.ErrorIs(t, err, scoring.ErrUnknownProfile)

	_, err = run(t, "recommend", "--min", "600", "--max", "300")
	assert.ErrorIs(t, err, match.ErrInvalidRange)

	_, err = run(t, "recommend", "--tier", "premium", "--min", "10")
	assert.Error(t, err)

	_, err = run(t, "--format", "xml", "stats")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	out, err := run(t, "--format", "json", "search", "xeon", "max")
	require.NoError(t, err)
	var hits []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	assert.Len(t, hits, 2)
}

func TestSearch_MissSuggests(t *testing.T) {
	out, err := run(t, "--no-color", "search", "i9-1x")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, ExitNoMatch, exitCode(err))
	assert.Contains(t, out, `No processor matches "i9-1x"`)
}

func TestSimilarAndCompare(t *testing.T) {
	out, err := run(t, "--no-color", "similar", "i9-14900K", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "i9-13900K")
	assert.NotContains(t, out, "i9-14900KS")

	out, err = run(t, "--no-color", "compare", "i9-14900K", "i9-13900K")
	require.NoError(t, err)
	assert.Contains(t, out, "Wins:")

	_, err = run(t, "compare", "i7", "i9-14900K")
	assert.ErrorIs(t, err, catalog.ErrAmbiguous)
}

func TestStats(t *testing.T) {
	out, err := run(t, "--no-color", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog summary")
	assert.Contains(t, out, "Xeon Max")
}

func TestConvertAndLoad(t *testing.T) {
	dir := t.TempDir()
	cat, err := pkgcatalog.Default()
	require.NoError(t, err)

	in := filepath.Join(dir, "in.yaml")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, pkgcatalog.Encode(f, pkgcatalog.FormatYAML, cat.Processors()[:4]))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "out.csv")
	_, err = run(t, "convert", in, out)
	require.NoError(t, err)

	records, err := pkgcatalog.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, cat.Processors()[:4], records)

	stdout, err := run(t, "--catalog", out, "--format", "json", "search", "")
	require.NoError(t, err)
	var hits []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stdout), &hits))
	assert.Len(t, hits, 4)
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chipmatch.prom")
	_, err := run(t, "--metrics-file", path, "recommend")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `chipmatch_queries_total{operation="recommend",outcome="ok"} 1`)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chipmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recommend:\n  top_n: 1\noutput:\n  format: json\n"), 0o600))

	out, err := run(t, "--config", path, "recommend")
	require.NoError(t, err)
	var res struct {
		Recommendations []json.RawMessage `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Recommendations, 1)
}

func TestPreferencesQuery(t *testing.T) {
	tests := []struct {
		name      string
		prefs     preferences
		wantLower float64
		wantUpper float64
		wantErr   bool
	}{
		{"any", preferences{Budget: budgetAny}, math.Inf(-1), math.Inf(1), false},
		{"tier", preferences{Budget: "Mid-range"}, 300, 600, false},
		{"custom", preferences{Budget: budgetCustom, Min: "$1,000", Max: "2000"}, 1000, 2000, false},
		{"custom open", preferences{Budget: budgetCustom, Max: "450"}, math.Inf(-1), 450, false},
		{"custom inverted", preferences{Budget: budgetCustom, Min: "900", Max: "100"}, 0, 0, true},
		{"bad amount", preferences{Budget: budgetCustom, Min: "cheap"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.prefs.query()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLower, q.Price.Lower)
			assert.Equal(t, tt.wantUpper, q.Price.Upper)
		})
	}
}
