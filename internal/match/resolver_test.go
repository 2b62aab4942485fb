package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/chipmatch/internal/testutil"
	"github.com/HerbHall/chipmatch/pkg/models"
)

func TestResolve_LegacyAliasesMatchModernNames(t *testing.T) {
	pairs := map[string]models.Family{
		"i3": models.FamilyCore3,
		"i5": models.FamilyCore5,
		"i7": models.FamilyCore7,
		"i9": models.FamilyCore9,
	}
	for alias, fam := range pairs {
		t.Run(alias, func(t *testing.T) {
			legacy := Resolve(alias)
			modern := Resolve(fam.String())
			assert.Equal(t, []models.Family{fam}, legacy.Families)
			assert.Equal(t, modern.Families, legacy.Families)
			assert.Empty(t, legacy.Substring)
		})
	}
}

func TestResolve_ModernNameIsIdempotent(t *testing.T) {
	for _, fam := range models.Families {
		res := Resolve(fam.String())
		require.Len(t, res.Families, 1, fam.String())
		assert.Equal(t, fam, res.Families[0])

		again := Resolve(res.Families[0].String())
		assert.Equal(t, res.Families, again.Families)
	}
}

func TestResolve_Normalisation(t *testing.T) {
	tests := []struct {
		query string
		want  models.Family
	}{
		{" I7 ", models.FamilyCore7},
		{"Core i9", models.FamilyCore9},
		{"CORE   ULTRA", models.FamilyCoreUltra},
		{"ultra", models.FamilyCoreUltra},
		{"Core™ 5", models.FamilyCore5},
		{"Xeon® Max", models.FamilyXeonMax},
		{"xeon", models.FamilyXeon},
	}
	for _, tc := range tests {
		res := Resolve(tc.query)
		assert.Equal(t, []models.Family{tc.want}, res.Families, "query %q", tc.query)
	}
}

func TestResolve_SubstringFallback(t *testing.T) {
	res := Resolve("  13700 ")
	assert.Empty(t, res.Families)
	assert.Equal(t, "13700", res.Substring)
	assert.False(t, res.Wildcard())
}

func TestResolve_EmptyIsWildcard(t *testing.T) {
	for _, q := range []string{"", "   ", "™"} {
		res := Resolve(q)
		assert.True(t, res.Wildcard(), "query %q", q)
		assert.True(t, res.Matches(&models.Processor{Name: "anything"}))
	}
}

func TestResolution_Matches(t *testing.T) {
	i7 := testutil.NewProcessor(
		testutil.WithName("Intel® Core™ i7-13700 Processor"),
		testutil.WithModel("i7-13700"),
		testutil.WithFamily(models.FamilyCore7),
	)
	ultra := testutil.NewProcessor(
		testutil.WithName("Intel® Core™ Ultra 9 Processor 185H"),
		testutil.WithModel("185H"),
		testutil.WithFamily(models.FamilyCoreUltra),
	)

	assert.True(t, Resolve("i7").Matches(&i7))
	assert.False(t, Resolve("i7").Matches(&ultra))
	assert.True(t, Resolve("ultra").Matches(&ultra))

	assert.True(t, Resolve("13700").Matches(&i7))
	assert.True(t, Resolve("core i7-13700").Matches(&i7), "trademarks are ignored in names")
	assert.True(t, Resolve("185h").Matches(&ultra), "model numbers match case-insensitively")
	assert.False(t, Resolve("pentium").Matches(&i7))

	got := Resolve("i7").Filter([]models.Processor{ultra, i7})
	require.Len(t, got, 1)
	assert.Equal(t, i7.Name, got[0].Name)
}

func TestResolution_String(t *testing.T) {
	assert.Equal(t, "family Core 7", Resolve("i7").String())
	assert.Equal(t, `name contains "13700"`, Resolve("13700").String())
	assert.Equal(t, "any processor", Resolve("").String())
}
