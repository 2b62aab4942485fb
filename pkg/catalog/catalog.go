// Package catalog holds the immutable processor catalog and the loaders
// that build it from embedded or on-disk datasets.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// ErrEmptyCatalog is returned by operations that need at least one record.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Catalog is a read-only collection of validated processor records.
// It is never mutated after New returns and is safe for concurrent use.
type Catalog struct {
	processors []models.Processor
	byName     map[string]int
}

// New validates records and builds a Catalog from a private copy of them.
// Names must be unique, compared case-insensitively.
func New(records []models.Processor) (*Catalog, error) {
	if err := ValidateAll(records); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c := &Catalog{
		processors: make([]models.Processor, len(records)),
		byName:     make(map[string]int, len(records)),
	}
	copy(c.processors, records)

	for i := range c.processors {
		key := nameKey(c.processors[i].Name)
		if prev, exists := c.byName[key]; exists {
			return nil, fmt.Errorf("catalog: duplicate processor %q (records %d and %d)", c.processors[i].Name, prev, i)
		}
		c.byName[key] = i
	}
	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.processors)
}

// Processors returns a copy of all records in catalog order.
func (c *Catalog) Processors() []models.Processor {
	if c == nil {
		return nil
	}
	cp := make([]models.Processor, len(c.processors))
	copy(cp, c.processors)
	return cp
}

// Lookup finds a record by exact name, ignoring case and surrounding
// whitespace.
func (c *Catalog) Lookup(name string) (models.Processor, bool) {
	if c == nil {
		return models.Processor{}, false
	}
	i, ok := c.byName[nameKey(name)]
	if !ok {
		return models.Processor{}, false
	}
	return c.processors[i], true
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
