// Package scoring ranks processors for a usage profile and priority with a
// single weighted-sum scorer, and derives value-for-money and suitability
// badges from the result.
package scoring

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnknownProfile is returned for a usage profile outside the enumerated set.
	ErrUnknownProfile = errors.New("unknown usage profile")
	// ErrUnknownPriority is returned for a priority outside the enumerated set.
	ErrUnknownPriority = errors.New("unknown performance priority")
)

// Profile is the workload a processor is being chosen for.
type Profile int

const (
	Gaming Profile = iota
	ContentCreation
	Office
	Programming
	Enterprise
)

var profileNames = [...]struct{ key, label string }{
	Gaming:          {"gaming", "Gaming"},
	ContentCreation: {"content-creation", "Content Creation"},
	Office:          {"office", "Office Work"},
	Programming:     {"programming", "Programming"},
	Enterprise:      {"enterprise", "Server/Enterprise"},
}

// Profiles lists every profile in menu order.
func Profiles() []Profile {
	return []Profile{Gaming, ContentCreation, Office, Programming, Enterprise}
}

// Valid reports whether p is an enumerated profile.
func (p Profile) Valid() bool { return p >= 0 && int(p) < len(profileNames) }

// String returns the profile's flag and config spelling.
func (p Profile) String() string {
	if !p.Valid() {
		return fmt.Sprintf("profile(%d)", int(p))
	}
	return profileNames[p].key
}

// MarshalText encodes the profile by key.
func (p Profile) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Label returns the profile's menu label.
func (p Profile) Label() string {
	if !p.Valid() {
		return p.String()
	}
	return profileNames[p].label
}

// ParseProfile accepts a profile's key or menu label in any case and
// with any punctuation, e.g. "content_creation" or "Server/Enterprise".
func ParseProfile(s string) (Profile, error) {
	key := looseKey(s)
	for _, p := range Profiles() {
		if key == looseKey(profileNames[p].key) || key == looseKey(profileNames[p].label) {
			return p, nil
		}
	}
	switch key {
	case "server", "workstation":
		return Enterprise, nil
	case "content", "creator", "creation":
		return ContentCreation, nil
	case "dev", "development", "coding":
		return Programming, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// Priority reshapes a profile's weights toward one performance axis.
type Priority int

const (
	Balanced Priority = iota
	SingleCore
	MultiCore
	PowerEfficiency
)

var priorityNames = [...]struct{ key, label string }{
	Balanced:        {"balanced", "Balanced"},
	SingleCore:      {"single-core", "Single-core Performance"},
	MultiCore:       {"multi-core", "Multi-core Performance"},
	PowerEfficiency: {"efficiency", "Power Efficiency"},
}

// Priorities lists every priority in menu order.
func Priorities() []Priority {
	return []Priority{Balanced, SingleCore, MultiCore, PowerEfficiency}
}

// Valid reports whether p is an enumerated priority.
func (p Priority) Valid() bool { return p >= 0 && int(p) < len(priorityNames) }

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityNames[p].key
}

// MarshalText encodes the priority by key.
func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Label returns the priority's menu label.
func (p Priority) Label() string {
	if !p.Valid() {
		return p.String()
	}
	return priorityNames[p].label
}

// ParsePriority accepts a priority's key or menu label, plus the short
// forms "single", "multi" and "power-efficiency".
func ParsePriority(s string) (Priority, error) {
	key := looseKey(s)
	for _, p := range Priorities() {
		if key == looseKey(priorityNames[p].key) || key == looseKey(priorityNames[p].label) {
			return p, nil
		}
	}
	switch key {
	case "single", "singlethread", "singlecoreperf":
		return SingleCore, nil
	case "multi", "multithread":
		return MultiCore, nil
	case "power", "efficient":
		return PowerEfficiency, nil
	case "", "default", "none":
		return Balanced, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

// looseKey lower-cases s and drops everything but letters and digits.
func looseKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
