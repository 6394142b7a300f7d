// Package cmd provides the CLI commands for foody7-pricing.
package cmd

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"foody7-pricing/core/analysis"
	"foody7-pricing/core/determinism"
	"foody7-pricing/core/model"
	"foody7-pricing/internal/config"
	"foody7-pricing/internal/errors"
	"foody7-pricing/internal/logging"
)

// Version is the tool version, overridden at link time
var Version = "0.1.0"

// app holds state shared by the commands of one invocation
type app struct {
	cfgFile string
	verbose bool
	cfg     *config.Config
}

// NewRootCmd builds the command tree. Running it without a subcommand
// prints the full report.
func NewRootCmd() *cobra.Command {
	a := &app{}
	reportOpts := &reportOptions{}

	rootCmd := &cobra.Command{
		Use:   "foody7-pricing",
		Short: "Model commission vs subscription pricing for Foody7",
		Long: `foody7-pricing computes break-even points, order caps, overflow costs and
effective rates for the Foody7 commission and subscription plans, and prints
the pricing report.

Examples:
  foody7-pricing
  foody7-pricing report --format markdown > pricing.md
  foody7-pricing quote --orders 120 --avg-order 25000
  foody7-pricing advise --plan F70 --orders 58
  foody7-pricing --config pricing.yaml report --format json`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, reportOpts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.json, .yaml or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(a.newReportCmd())
	rootCmd.AddCommand(a.newQuoteCmd())
	rootCmd.AddCommand(a.newAdviseCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	config.Set(cfg)
	a.cfg = cfg

	logCfg := cfg.Logging
	if a.verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		return errors.Config("failed to initialize logging", err)
	}
	logging.Debug("configuration loaded", zap.String("path", a.cfgFile), zap.String("version", cfg.Version))
	return nil
}

// buildModel constructs the pricing model from the active configuration
func (a *app) buildModel() (*model.Model, error) {
	opts := []model.Option{
		model.WithCapSafetyFactor(decimal.NewFromFloat(a.cfg.Model.CapSafetyFactor)),
		model.WithLogger(logging.Named("model")),
	}
	if a.cfg.Model.AllowWhatIf {
		opts = append(opts, model.WithWhatIf())
	}
	return model.New(a.cfg.Rates(), a.cfg.Tiers(), opts...)
}

// buildReport runs the analysis with run metadata attached
func (a *app) buildReport() (*analysis.Report, error) {
	m, err := a.buildModel()
	if err != nil {
		return nil, err
	}

	hash, err := determinism.HashJSON(a.cfg)
	if err != nil {
		return nil, errors.Internal("failed to hash configuration", err)
	}

	p := analysis.ParametersFromConfig(a.cfg)
	p.Metadata.RunID = uuid.NewString()
	p.Metadata.InputHash = hash.Short()

	logging.Info("building pricing report",
		zap.String("run_id", p.Metadata.RunID),
		zap.String("input_hash", p.Metadata.InputHash))
	return analysis.Build(m, p)
}

// avgOrderOrDefault returns v, or the canonical order value when v is zero
func (a *app) avgOrderOrDefault(v float64) decimal.Decimal {
	if v == 0 {
		return decimal.NewFromFloat(a.cfg.Report.CanonicalOrderValue)
	}
	return decimal.NewFromFloat(v)
}
