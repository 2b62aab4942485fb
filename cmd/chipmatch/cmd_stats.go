package main

import (
	"github.com/spf13/cobra"

	"github.com/HerbHall/chipmatch/internal/report"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the catalog",
		Long: `Stats prints counts and price ranges per family, segment and price tier,
the top performers, the best value processors and the price/performance
trend line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.engineFor(cmd.Context())
			if err != nil {
				return err
			}
			s, err := report.Build(engine.Records())
			if err != nil {
				return err
			}
			return a.render.Stats(s)
		},
	}
}
