package main

import (
	"github.com/spf13/cobra"

	"github.com/HerbHall/chipmatch/internal/config"
)

func newCompareCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <first> <second>",
		Short: "Compare two processors side by side",
		Long: `Compare shows each specification both processors report, marks the
better side, and says which one offers better value for money.`,
		Example: `  chipmatch compare i9-14900K i9-13900K
  chipmatch compare "Core Ultra 7 155H" 1365U`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engineFor(cmd.Context())
			if err != nil {
				return err
			}
			first, err := engine.Find(args[0])
			if err != nil {
				return err
			}
			second, err := engine.Find(args[1])
			if err != nil {
				return err
			}
			res, err := engine.Compare(first, second)
			if err != nil {
				return err
			}
			return a.render.Comparison(res)
		},
	}
	cmd.Flags().Float64("margin", 0.10, "Fractional value difference treated as similar")
	bind(a.v, cmd.Flags().Lookup("margin"), config.KeyValueMargin)
	return cmd
}
