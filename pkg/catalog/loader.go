package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/chipmatch/pkg/models"
)

//go:embed processors.yaml
var defaultRawData []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded dataset. It is
// parsed on first use and shared afterwards.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		records, err := Decode(bytes.NewReader(defaultRawData), FormatYAML)
		if err != nil {
			defaultErr = fmt.Errorf("catalog: embedded dataset: %w", err)
			return
		}
		defaultCatalog, defaultErr = New(records)
	})
	return defaultCatalog, defaultErr
}

// LoadFile reads one dataset file, choosing the decoder by extension.
func LoadFile(path string) ([]models.Processor, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadFiles reads every path concurrently and builds one catalog from the
// records in argument order. No paths means the embedded dataset.
func LoadFiles(ctx context.Context, paths ...string) (*Catalog, error) {
	if len(paths) == 0 {
		return Default()
	}

	parts := make([][]models.Processor, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := LoadFile(path)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.Processor
	for _, part := range parts {
		all = append(all, part...)
	}
	return New(all)
}
