package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pkgcatalog "github.com/HerbHall/chipmatch/pkg/catalog"
)

func newConvertCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a dataset between csv, yaml, json, toml and msgpack",
		Long: `Convert reads a dataset, validates every record and writes it in the
format named by the output file's extension.`,
		Example: `  chipmatch convert processors.csv processors.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(a, args[0], args[1])
		},
	}
}

func runConvert(a *app, in, out string) (err error) {
	format, err := pkgcatalog.FormatFromPath(out)
	if err != nil {
		return err
	}
	records, err := pkgcatalog.LoadFile(in)
	if err != nil {
		return err
	}
	cat, err := pkgcatalog.New(records)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := pkgcatalog.Encode(f, format, cat.Processors()); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	a.logger.Info("dataset converted",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("records", cat.Len()),
	)
	return nil
}
