package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HerbHall/chipmatch/internal/catalog"
)

const suggestionLimit = 5

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by name, model number or family",
		Long: `Search lists every processor whose family matches the query, or whose
name or model number contains it. When nothing matches, model numbers
starting with the query are suggested.`,
		Example: `  chipmatch search i5
  chipmatch search "xeon max"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			engine, err := a.engineFor(cmd.Context())
			if err != nil {
				return err
			}
			hits, err := engine.Search(query)
			if err != nil {
				return err
			}
			if len(hits) > 0 {
				return a.render.Processors(hits)
			}
			if err := a.render.Suggestions(query, engine.Suggest(query, suggestionLimit)); err != nil {
				return err
			}
			return fmt.Errorf("%w: %q", catalog.ErrNotFound, query)
		},
	}
}
