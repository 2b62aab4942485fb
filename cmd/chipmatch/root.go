package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/chipmatch/internal/catalog"
	"github.com/HerbHall/chipmatch/internal/config"
	"github.com/HerbHall/chipmatch/internal/metrics"
	"github.com/HerbHall/chipmatch/internal/render"
	"github.com/HerbHall/chipmatch/internal/version"
	pkgcatalog "github.com/HerbHall/chipmatch/pkg/catalog"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// logger is built from configuration unless already set.
	logger   *zap.Logger
	settings config.Settings
	metrics  *metrics.Recorder
	render   *render.Renderer
	engine   *catalog.Engine
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:      config.NewViper(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

type globalFlags struct {
	configPath string
	noColor    bool
	debug      bool
}

func newRootCommand(a *app) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "chipmatch",
		Short: "Find, compare and recommend processors",
		Long: `chipmatch matches a catalog of processor specifications against what you
need: a name or family, a budget, a usage profile and a performance priority.

With no --catalog flag the bundled catalog is used.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(flags)
		},
	}
	cmd.SetVersionTemplate(version.Info() + "\n")
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a configuration file")
	pf.StringSlice("catalog", nil, "Dataset file to load (csv, yaml, json, toml, msgpack); repeatable")
	pf.String("format", "table", "Output format: table|json")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	pf.String("metrics-file", "", "Write query metrics to this Prometheus textfile on exit")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	bind(a.v, pf.Lookup("catalog"), config.KeyCatalogPaths)
	bind(a.v, pf.Lookup("format"), config.KeyOutputFormat)
	bind(a.v, pf.Lookup("metrics-file"), config.KeyMetricsTextfile)

	cmd.AddCommand(newRecommendCommand(a))
	cmd.AddCommand(newSimilarCommand(a))
	cmd.AddCommand(newCompareCommand(a))
	cmd.AddCommand(newSearchCommand(a))
	cmd.AddCommand(newStatsCommand(a))
	cmd.AddCommand(newConvertCommand(a))
	cmd.AddCommand(newInteractiveCommand(a))
	return cmd
}

// execute runs the command line and writes the metrics textfile, if one
// is configured, whether or not the command succeeded.
func execute(args []string, a *app) error {
	root := newRootCommand(a)
	root.SetArgs(args)
	err := root.Execute()

	if a.metrics != nil {
		if werr := a.metrics.WriteTextfile(a.settings.Metrics.Textfile); werr != nil {
			err = errors.Join(err, werr)
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func bind(v *viper.Viper, f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

// setup loads configuration and builds the logger, metrics and renderer.
// The catalog is loaded on first use by engineFor.
func (a *app) setup(flags *globalFlags) error {
	if flags.noColor {
		a.v.Set(config.KeyOutputColor, false)
	}
	if flags.debug {
		a.v.Set(config.KeyLogLevel, "debug")
	}

	cfg, err := config.Load(a.v, flags.configPath)
	if err != nil {
		return err
	}
	a.settings, err = cfg.Settings()
	if err != nil {
		return err
	}

	if a.logger == nil {
		a.logger, err = newLogger(a.settings.Log.Level, flags.debug)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
	}
	if file := cfg.File(); file != "" {
		a.logger.Debug("configuration loaded", zap.String("file", file))
	}

	a.metrics = metrics.New()
	format, err := render.ParseFormat(a.settings.Output.Format)
	if err != nil {
		return err
	}
	a.render = render.New(a.stdout, format, a.settings.Output.Color)
	return nil
}

func newLogger(level string, debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// engineFor loads the configured catalog and builds the engine once.
func (a *app) engineFor(ctx context.Context) (*catalog.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	paths := a.settings.Catalog.Paths
	cat, err := pkgcatalog.LoadFiles(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	a.logger.Debug("catalog loaded", zap.Strings("paths", paths), zap.Int("records", cat.Len()))

	a.engine = catalog.NewEngine(cat,
		catalog.WithLogger(a.logger),
		catalog.WithMetrics(a.metrics),
		catalog.WithDefaultTopN(a.settings.Recommend.TopN, a.settings.Similar.TopN),
		catalog.WithValueMargin(a.settings.Compare.ValueMargin),
	)
	return a.engine, nil
}
