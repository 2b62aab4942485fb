package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/chipmatch/internal/testutil"
	"github.com/HerbHall/chipmatch/pkg/catalog"
	"github.com/HerbHall/chipmatch/pkg/models"
)

func TestParseProfile(t *testing.T) {
	tests := map[string]Profile{
		"gaming":            Gaming,
		"Gaming":            Gaming,
		"Content Creation":  ContentCreation,
		"content_creation":  ContentCreation,
		"content-creation":  ContentCreation,
		"Office Work":       Office,
		"office":            Office,
		"programming":       Programming,
		"Server/Enterprise": Enterprise,
		"server":            Enterprise,
	}
	for in, want := range tests {
		got, err := ParseProfile(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseProfile("mining")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestParsePriority(t *testing.T) {
	tests := map[string]Priority{
		"balanced":                Balanced,
		"":                        Balanced,
		"single_core":             SingleCore,
		"Single-core Performance": SingleCore,
		"multi-core":              MultiCore,
		"Multi-core Performance":  MultiCore,
		"efficiency":              PowerEfficiency,
		"Power Efficiency":        PowerEfficiency,
	}
	for in, want := range tests {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePriority("turbo")
	assert.ErrorIs(t, err, ErrUnknownPriority)
}

func TestProfile_StringRoundTrip(t *testing.T) {
	for _, p := range Profiles() {
		got, err := ParseProfile(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	for _, p := range Priorities() {
		got, err := ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestNew_RejectsUnknownEnums(t *testing.T) {
	_, err := New(Profile(99), Balanced)
	assert.ErrorIs(t, err, ErrUnknownProfile)

	_, err = New(Gaming, Priority(-1))
	assert.ErrorIs(t, err, ErrUnknownPriority)
}

func TestWeights_NonNegativeAndHigherIsBetter(t *testing.T) {
	for _, prof := range Profiles() {
		for _, prio := range Priorities() {
			s, err := New(prof, prio)
			require.NoError(t, err)
			w := s.Weights()
			require.NotEmpty(t, w)
			for f, weight := range w {
				assert.Positive(t, weight, "%s/%s %s", prof, prio, f)
				assert.Equal(t, models.HigherIsBetter, f.Spec().Polarity, "%s/%s %s", prof, prio, f)
				assert.NotEqual(t, models.FieldCachePerCore, f, "cache per core falls as cores rise")
			}
		}
	}
}

func TestPriority_ReshapesWeights(t *testing.T) {
	bal, err := New(Gaming, Balanced)
	require.NoError(t, err)
	single, err := New(Gaming, SingleCore)
	require.NoError(t, err)

	assert.Greater(t, single.Weights()[models.FieldMaxTurbo], bal.Weights()[models.FieldMaxTurbo])
	assert.Less(t, single.Weights()[models.FieldTotalCores], bal.Weights()[models.FieldTotalCores])
}

// Raising any weighted stored field, with everything else fixed, must
// never lower the score.
func TestScore_Monotone(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	records := append(cat.Processors(), testutil.NewProcessor())

	steps := []float64{0.1, 1, 4, 64}
	for _, prof := range Profiles() {
		for _, prio := range Priorities() {
			s, err := New(prof, prio)
			require.NoError(t, err)
			for f := range s.Weights() {
				if f.Spec().Derived {
					continue
				}
				for i := range records {
					base := records[i]
					before := s.Score(&base)
					for _, step := range steps {
						raised := base.With(f, base.Value(f)+step)
						after := s.Score(&raised)
						if after < before {
							t.Fatalf("%s/%s: raising %s of %q by %v lowered score %v -> %v",
								prof, prio, f, base.Name, step, before, after)
						}
					}
				}
			}
		}
	}
}

func TestScore_Range(t *testing.T) {
	s, err := New(Enterprise, MultiCore)
	require.NoError(t, err)

	var empty models.Processor
	assert.Zero(t, s.Score(&empty))

	p := testutil.NewProcessor()
	got := s.Score(&p)
	assert.Greater(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}

func TestScale(t *testing.T) {
	assert.Zero(t, Scale(models.FieldPCIeLanes, 0), "unknown sentinel")
	assert.Equal(t, 1.0, Scale(models.FieldMaxTurbo, 9), "clamped above")
	assert.Zero(t, Scale(models.FieldBaseFreq, 0.1), "clamped below")
	assert.InDelta(t, 0.5, Scale(models.FieldMemChannels, 8), 1e-12)
	assert.Zero(t, Scale(models.FieldPrice, 500), "open-ended range")
}

func TestValue(t *testing.T) {
	assert.InDelta(t, 100.0, Value(50, 500), 1e-12)
	assert.Zero(t, Value(50, 0))
	assert.Zero(t, Value(50, -1))
}

func TestNeutral(t *testing.T) {
	w := Neutral().Weights()
	assert.Len(t, w, 3)
	assert.InDelta(t, 0.4, w[models.FieldMaxTurbo], 1e-12)

	fast := testutil.NewProcessor(testutil.WithField(models.FieldMaxTurbo, 6))
	slow := testutil.NewProcessor(testutil.WithField(models.FieldMaxTurbo, 3))
	assert.Greater(t, Neutral().Score(&fast), Neutral().Score(&slow))
}

func TestBestFor(t *testing.T) {
	tests := []struct {
		name string
		p    models.Processor
		want []string
	}{
		{
			name: "desktop all-rounder",
			p:    testutil.NewProcessor(),
			want: []string{"Gaming", "Content Creation", "Programming"},
		},
		{
			name: "low power mobile",
			p: testutil.NewProcessor(
				testutil.WithField(models.FieldMaxTurbo, 3.8),
				testutil.WithField(models.FieldTotalCores, 4),
				testutil.WithField(models.FieldBasePower, 15),
			),
			want: []string{"Power Efficiency"},
		},
		{
			name: "server",
			p: testutil.NewProcessor(
				testutil.WithSegment(models.SegmentServer),
				testutil.WithField(models.FieldMaxTurbo, 3.5),
				testutil.WithField(models.FieldTotalCores, 4),
				testutil.WithField(models.FieldMemChannels, 8),
			),
			want: []string{"Server/Enterprise"},
		},
		{
			name: "nothing stands out",
			p: testutil.NewProcessor(
				testutil.WithField(models.FieldMaxTurbo, 3.0),
				testutil.WithField(models.FieldTotalCores, 4),
			),
			want: []string{GeneralUse},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BestFor(&tc.p))
		})
	}
}
