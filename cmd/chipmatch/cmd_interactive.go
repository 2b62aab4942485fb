package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HerbHall/chipmatch/internal/catalog"
	"github.com/HerbHall/chipmatch/internal/match"
	"github.com/HerbHall/chipmatch/internal/scoring"
)

// Budget choices besides the named tiers.
const (
	budgetCustom = "custom"
	budgetAny    = "any"
)

// preferences are the answers collected by the interactive form.
type preferences struct {
	Name     string
	Budget   string
	Min      string
	Max      string
	Profile  scoring.Profile
	Priority scoring.Priority
}

// query converts the answers into an engine query.
func (p *preferences) query() (catalog.Query, error) {
	var price match.Criteria
	switch p.Budget {
	case budgetAny, "":
		price = match.AnyPrice()
	case budgetCustom:
		lower, err := parseAmount(p.Min)
		if err != nil {
			return catalog.Query{}, fmt.Errorf("minimum price: %w", err)
		}
		upper, err := parseAmount(p.Max)
		if err != nil {
			return catalog.Query{}, fmt.Errorf("maximum price: %w", err)
		}
		if price, err = priceCriteria(lower, upper, ""); err != nil {
			return catalog.Query{}, err
		}
	default:
		t, ok := match.ParseTier(p.Budget)
		if !ok {
			return catalog.Query{}, fmt.Errorf("unknown price tier %q", p.Budget)
		}
		price = t.Criteria()
	}
	return catalog.Query{
		Name:     strings.TrimSpace(p.Name),
		Price:    price,
		Profile:  p.Profile,
		Priority: p.Priority,
	}, nil
}

// parseAmount reads a dollar amount; blank means no bound.
func parseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func validAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func newInteractiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Answer a few questions and get recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs := &preferences{Budget: budgetAny}
			if err := runPreferencesForm(a, prefs); err != nil {
				return err
			}
			q, err := prefs.query()
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
		},
	}
}

func runPreferencesForm(a *app, prefs *preferences) error {
	budgets := []huh.Option[string]{huh.NewOption("No limit", budgetAny)}
	for _, t := range match.Tiers() {
		budgets = append(budgets, huh.NewOption(fmt.Sprintf("%s (%s)", t, t.Criteria()), t.String()))
	}
	budgets = append(budgets, huh.NewOption("Custom range", budgetCustom))

	profiles := make([]huh.Option[scoring.Profile], 0, len(scoring.Profiles()))
	for _, p := range scoring.Profiles() {
		profiles = append(profiles, huh.NewOption(p.Label(), p))
	}
	priorities := make([]huh.Option[scoring.Priority], 0, len(scoring.Priorities()))
	for _, p := range scoring.Priorities() {
		priorities = append(priorities, huh.NewOption(p.Label(), p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Processor name or family").
				Description("For example i7, core ultra, xeon or 13700. Leave blank for any.").
				Value(&prefs.Name),
			huh.NewSelect[string]().
				Title("Budget").
				Options(budgets...).
				Value(&prefs.Budget),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum price (USD)").
				Value(&prefs.Min).
				Validate(validAmount),
			huh.NewInput().
				Title("Maximum price (USD)").
				Value(&prefs.Max).
				Validate(validAmount),
		).WithHideFunc(func() bool { return prefs.Budget != budgetCustom }),
		huh.NewGroup(
			huh.NewSelect[scoring.Profile]().
				Title("Primary use").
				Options(profiles...).
				Value(&prefs.Profile),
			huh.NewSelect[scoring.Priority]().
				Title("Performance priority").
				Options(priorities...).
				Value(&prefs.Priority),
		),
	).
		WithInput(a.stdin).
		WithOutput(a.stdout)

	if f, ok := a.stdin.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}
	if err := form.Run(); err != nil {
		return fmt.Errorf("preferences form: %w", err)
	}
	return nil
}
