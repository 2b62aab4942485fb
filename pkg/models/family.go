package models

import (
	"regexp"
	"strings"
)

// Family is the product family a processor belongs to.
type Family string

const (
	FamilyCore3     Family = "Core 3"
	FamilyCore5     Family = "Core 5"
	FamilyCore7     Family = "Core 7"
	FamilyCore9     Family = "Core 9"
	FamilyCoreUltra Family = "Core Ultra"
	FamilyXeon      Family = "Xeon"
	FamilyXeonMax   Family = "Xeon Max"
)

// Families lists every family in display order.
var Families = []Family{
	FamilyCore3, FamilyCore5, FamilyCore7, FamilyCore9,
	FamilyCoreUltra, FamilyXeon, FamilyXeonMax,
}

// String returns the canonical display name.
func (f Family) String() string { return string(f) }

// Valid reports whether f is one of the enumerated families.
func (f Family) Valid() bool {
	for _, known := range Families {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFamily matches a display name case-insensitively, ignoring
// whitespace and trademark marks. The second result is false when s
// names no family.
func ParseFamily(s string) (Family, bool) {
	key := CompactKey(s)
	for _, f := range Families {
		if CompactKey(string(f)) == key {
			return f, true
		}
	}
	return "", false
}

var (
	trademarkReplacer = strings.NewReplacer("™", "", "®", "", "(tm)", "", "(r)", "", "(TM)", "", "(R)", "")
	legacyCorePattern = regexp.MustCompile(`(?i)\bcore\s*i([3579])\b|\bi([3579])-\d`)
	modernCorePattern = regexp.MustCompile(`(?i)\bcore\s+([3579])\b`)
)

// StripTrademarks removes ™, ® and their ASCII spellings.
func StripTrademarks(s string) string {
	return trademarkReplacer.Replace(s)
}

// CompactKey lower-cases s, strips trademark marks and removes all
// whitespace. Two strings with equal keys name the same thing.
func CompactKey(s string) string {
	s = strings.ToLower(StripTrademarks(s))
	return strings.Join(strings.Fields(s), "")
}

// ClassifyFamily infers a family from a product name such as
// "Intel® Core™ i7-13700 Processor" or "Intel® Xeon® CPU Max 9480".
func ClassifyFamily(name string) (Family, bool) {
	clean := StripTrademarks(name)
	lower := strings.ToLower(clean)

	switch {
	case strings.Contains(lower, "xeon") && strings.Contains(lower, "max"):
		return FamilyXeonMax, true
	case strings.Contains(lower, "xeon"):
		return FamilyXeon, true
	case strings.Contains(lower, "core ultra"):
		return FamilyCoreUltra, true
	}

	if m := modernCorePattern.FindStringSubmatch(clean); m != nil {
		return Family("Core " + m[1]), true
	}
	if m := legacyCorePattern.FindStringSubmatch(clean); m != nil {
		digit := m[1]
		if digit == "" {
			digit = m[2]
		}
		return Family("Core " + digit), true
	}
	return "", false
}
