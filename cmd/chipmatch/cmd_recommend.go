package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerbHall/chipmatch/internal/catalog"
	"github.com/HerbHall/chipmatch/internal/config"
	"github.com/HerbHall/chipmatch/internal/match"
	"github.com/HerbHall/chipmatch/internal/scoring"
)

type recommendFlags struct {
	name string
	min  float64
	max  float64
	tier string
}

func newRecommendCommand(a *app) *cobra.Command {
	flags := &recommendFlags{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend processors for a budget and usage profile",
		Long: `Recommend narrows the catalog by name or family and price, scores the
survivors for a usage profile and priority, and prints the best matches.

Usage profiles: gaming, content-creation, office, programming, enterprise.
Priorities: balanced, single-core, multi-core, efficiency.`,
		Example: `  chipmatch recommend --name i7 --min 300 --max 600 --usage gaming
  chipmatch recommend --tier premium --usage enterprise --priority multi-core`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, a, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.name, "name", "", "Name fragment or family (i7, core ultra, xeon, 13700)")
	f.Float64Var(&flags.min, "min", 0, "Minimum price in USD")
	f.Float64Var(&flags.max, "max", 0, "Maximum price in USD")
	f.StringVar(&flags.tier, "tier", "", "Price tier: budget, mid-range, high-end, premium, ultra-premium")
	f.String("usage", "gaming", "Usage profile")
	f.String("priority", "balanced", "Performance priority")
	f.Int("top", 0, "Number of recommendations (default from config)")
	cmd.MarkFlagsMutuallyExclusive("tier", "min")
	cmd.MarkFlagsMutuallyExclusive("tier", "max")

	bind(a.v, f.Lookup("usage"), config.KeyRecommendProfile)
	bind(a.v, f.Lookup("priority"), config.KeyRecommendPriority)
	bind(a.v, f.Lookup("top"), config.KeyRecommendTopN)
	return cmd
}

func runRecommend(cmd *cobra.Command, a *app, flags *recommendFlags) error {
	price, err := priceCriteria(flags.min, flags.max, flags.tier)
	if err != nil {
		return err
	}
	q, err := buildQuery(flags.name, price, a.settings.Recommend.Profile, a.settings.Recommend.Priority)
	if err != nil {
		return err
	}

	engine, err := a.engineFor(cmd.Context())
	if err != nil {
		return err
	}
	res, err := engine.Recommend(q)
	if err != nil {
		return err
	}
	return renderRecommendations(a, res)
}

// renderRecommendations writes res and reports an empty result as
// catalog.ErrNotFound so the process exits with ExitNoMatch.
func renderRecommendations(a *app, res *catalog.Result) error {
	if err := a.render.Recommendations(res); err != nil {
		return err
	}
	if res.Empty() {
		return fmt.Errorf("%w: %s in the %s range", catalog.ErrNotFound, res.Resolution, res.Criteria)
	}
	return nil
}

// priceCriteria turns the price flags into a filter. Zero bounds are open.
func priceCriteria(lower, upper float64, tier string) (match.Criteria, error) {
	if tier != "" {
		t, ok := match.ParseTier(tier)
		if !ok {
			return match.Criteria{}, fmt.Errorf("unknown price tier %q", tier)
		}
		return t.Criteria(), nil
	}

	var c match.Criteria
	switch {
	case lower > 0 && upper > 0:
		c = match.Between(lower, upper)
	case lower > 0:
		c = match.AtLeast(lower)
	case upper > 0:
		c = match.AtMost(upper)
	default:
		c = match.AnyPrice()
	}
	return c, c.Validate()
}

func buildQuery(name string, price match.Criteria, profile, priority string) (catalog.Query, error) {
	p, err := scoring.ParseProfile(profile)
	if err != nil {
		return catalog.Query{}, err
	}
	pr, err := scoring.ParsePriority(priority)
	if err != nil {
		return catalog.Query{}, err
	}
	return catalog.Query{Name: name, Price: price, Profile: p, Priority: pr}, nil
}
