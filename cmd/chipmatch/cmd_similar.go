package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/HerbHall/chipmatch/internal/config"
)

func newSimilarCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <processor>",
		Short: "List the processors most similar to one processor",
		Long: `Similar compares every processor's normalised specification vector with
the reference's and prints the closest ones. The reference may be a full
name, a model number or any query that identifies exactly one processor.`,
		Example: `  chipmatch similar i9-14900K --top 3`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engineFor(cmd.Context())
			if err != nil {
				return err
			}
			ref, err := engine.Find(strings.Join(args, " "))
			if err != nil {
				return err
			}
			matches, err := engine.FindSimilar(ref, 0)
			if err != nil {
				return err
			}
			return a.render.Similar(ref, matches)
		},
	}
	cmd.Flags().Int("top", 0, "Number of similar processors (default from config)")
	bind(a.v, cmd.Flags().Lookup("top"), config.KeySimilarTopN)
	return cmd
}
