// Package match resolves free-text processor queries into family and name
// predicates and narrows record sets by price.
package match

import (
	"slices"
	"strings"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// legacyAliases maps pre-2023 Core i-series names to the family that
// replaced them. Keys are compact keys (see models.CompactKey).
var legacyAliases = map[string]models.Family{
	"i3":     models.FamilyCore3,
	"i5":     models.FamilyCore5,
	"i7":     models.FamilyCore7,
	"i9":     models.FamilyCore9,
	"corei3": models.FamilyCore3,
	"corei5": models.FamilyCore5,
	"corei7": models.FamilyCore7,
	"corei9": models.FamilyCore9,
}

// familyTokens maps modern family names, written any way, to families.
var familyTokens = map[string]models.Family{
	"core3":     models.FamilyCore3,
	"core5":     models.FamilyCore5,
	"core7":     models.FamilyCore7,
	"core9":     models.FamilyCore9,
	"coreultra": models.FamilyCoreUltra,
	"ultra":     models.FamilyCoreUltra,
	"xeon":      models.FamilyXeon,
	"xeonmax":   models.FamilyXeonMax,
}

// Resolution is what a query resolved to: either a family constraint, a
// name substring, or neither (wildcard).
type Resolution struct {
	Query     string          `json:"query"`
	Families  []models.Family `json:"families,omitempty"`
	Substring string          `json:"substring,omitempty"`
}

// Wildcard reports whether the resolution matches every record.
func (r Resolution) Wildcard() bool {
	return len(r.Families) == 0 && r.Substring == ""
}

// Matches reports whether p satisfies the resolution.
func (r Resolution) Matches(p *models.Processor) bool {
	if len(r.Families) > 0 {
		return slices.Contains(r.Families, p.Family)
	}
	if r.Substring == "" {
		return true
	}
	needle := foldName(r.Substring)
	return strings.Contains(foldName(p.Name), needle) || strings.Contains(foldName(p.Model), needle)
}

// String describes the resolution for logs and summaries.
func (r Resolution) String() string {
	switch {
	case len(r.Families) > 0:
		names := make([]string, len(r.Families))
		for i, f := range r.Families {
			names[i] = f.String()
		}
		return "family " + strings.Join(names, ", ")
	case r.Substring != "":
		return "name contains " + `"` + r.Substring + `"`
	default:
		return "any processor"
	}
}

// Resolve turns a query into a Resolution. It never fails: a query that
// names no family becomes a substring predicate, and an empty query is a
// wildcard. Resolving a family's own name yields that family.
func Resolve(query string) Resolution {
	trimmed := strings.TrimSpace(query)
	res := Resolution{Query: trimmed}
	key := models.CompactKey(trimmed)
	if key == "" {
		return res
	}

	if f, ok := legacyAliases[key]; ok {
		res.Families = []models.Family{f}
		return res
	}
	if f, ok := familyTokens[key]; ok {
		res.Families = []models.Family{f}
		return res
	}
	res.Substring = trimmed
	return res
}

// Filter returns the records r matches, in their original order.
func (r Resolution) Filter(records []models.Processor) []models.Processor {
	out := make([]models.Processor, 0, len(records))
	for i := range records {
		if r.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func foldName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(models.StripTrademarks(s)), " "))
}
