// Package cmd implements the crimestats command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zalepa/crimestats/config"
	"github.com/zalepa/crimestats/motive"
	"github.com/zalepa/crimestats/report"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfgPath    string
	verbose    bool
	input      string
	categories []string

	cfg    *config.Config
	logger *zap.Logger
	// ownLogger is set when the logger was built here and must be synced.
	ownLogger bool
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the crimestats command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "crimestats",
		Short: "Chart reported cyber-crime motives per state",
		Long: `crimestats reads a JSON dataset of cyber-crime motives per state or union
territory, ranks the regions by their total number of cases and renders a
grouped and a stacked bar chart into one HTML report.

Run without a subcommand to render the report using crimestats.yaml (if
present) and the defaults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLogger && a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(a.cfg.Output, a.cfg.PDF)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", config.DefaultPath, "config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&a.input, "input", "i", "", "JSON dataset (overrides config)")
	pf.StringSliceVar(&a.categories, "categories", nil, "motive categories to include, in chart order (overrides config)")

	root.AddCommand(
		newRenderCmd(a),
		newTableCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newFetchCmd(a),
		newInitCmd(a),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadOrDefault(a.cfgPath, explicit)
	if err != nil {
		return err
	}
	if a.input != "" {
		cfg.Input = a.input
	}
	if len(a.categories) > 0 {
		cfg.Categories = a.categories
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return a.initLogger()
}

func (a *app) initLogger() error {
	if a.logger != nil {
		return nil
	}
	level, err := a.cfg.LogLevel()
	if err != nil {
		return err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.ownLogger = true
	return nil
}

func (a *app) reportOptions() report.Options {
	return report.Options{Title: a.cfg.Title, StackedTitle: a.cfg.StackedTitle}
}

// aggregate loads the configured dataset and ranks it.
func (a *app) aggregate() (motive.Result, error) {
	cats, err := a.cfg.MotiveCategories()
	if err != nil {
		return motive.Result{}, err
	}

	a.logger.Debug("Loading dataset", zap.String("path", a.cfg.Input), zap.Strings("categories", cats.Slugs()))
	ds, err := motive.LoadFile(a.cfg.Input)
	if err != nil {
		return motive.Result{}, err
	}

	res, err := motive.Aggregate(ds, cats)
	if err != nil {
		return motive.Result{}, fmt.Errorf("%s: %w", a.cfg.Input, err)
	}

	for _, m := range motive.CheckTotals(ds, cats) {
		a.logger.Warn("Total differs from sum of category counts",
			zap.String("region", m.Region),
			zap.Float64("total", m.Total),
			zap.Float64("sum", m.Sum))
	}
	a.logger.Info("Dataset aggregated",
		zap.Int("records", len(ds)),
		zap.Int("ranked", res.Len()),
		zap.Int("excluded", len(ds)-res.Len()))
	return res, nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
