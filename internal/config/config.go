// Package config provides configuration management.
//
// A configuration file is optional; every field has a default matching the
// reference Foody7 scenario. Files may be JSON, YAML or HCL, chosen by
// extension, and only override the fields they set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"foody7-pricing/core/types"
	"foody7-pricing/internal/errors"
	"foody7-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Model contains the rates and tiers the pricing model is built from
	Model ModelConfig `json:"model" yaml:"model"`

	// Report contains the scenario lists each report section sweeps over
	Report ReportConfig `json:"report" yaml:"report"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// ModelConfig contains the pricing model parameters
type ModelConfig struct {
	// CommissionRate is the fee on the commission plan
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`

	// InfraCostRate is the platform's per-order cost
	InfraCostRate float64 `json:"infra_cost_rate" yaml:"infra_cost_rate"`

	// CompetitorRate is the competitor's commission
	CompetitorRate float64 `json:"competitor_rate" yaml:"competitor_rate"`

	// CapSafetyFactor scales raw order caps to recommended caps
	CapSafetyFactor float64 `json:"cap_safety_factor" yaml:"cap_safety_factor"`

	// AllowWhatIf permits rates that break infra < commission < competitor
	AllowWhatIf bool `json:"allow_what_if" yaml:"allow_what_if"`

	// Tiers in ascending price order
	Tiers []TierConfig `json:"tiers" yaml:"tiers"`
}

// TierConfig describes one subscription tier
type TierConfig struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`

	// Audience is the "best for" label in the recommendation section
	Audience string `json:"audience,omitempty" yaml:"audience,omitempty"`

	// SavingsLabel is the advertised saving vs commission
	SavingsLabel string `json:"savings_label,omitempty" yaml:"savings_label,omitempty"`
}

// ReportConfig contains the report scenario lists
type ReportConfig struct {
	Currency                    string            `json:"currency" yaml:"currency"`
	AvgOrderValues              []float64         `json:"avg_order_values" yaml:"avg_order_values"`
	OrderVolumes                []int64           `json:"order_volumes" yaml:"order_volumes"`
	EffectiveVolumes            []int64           `json:"effective_volumes" yaml:"effective_volumes"`
	CanonicalOrderValue         float64           `json:"canonical_order_value" yaml:"canonical_order_value"`
	GeneralSavingsTarget        float64           `json:"general_savings_target" yaml:"general_savings_target"`
	RecommendationSavingsTarget float64           `json:"recommendation_savings_target" yaml:"recommendation_savings_target"`
	RevenueFloorOrders          int64             `json:"revenue_floor_orders" yaml:"revenue_floor_orders"`
	UncappedLossOrders          int64             `json:"uncapped_loss_orders" yaml:"uncapped_loss_orders"`
	OverflowOrders              []int64           `json:"overflow_orders" yaml:"overflow_orders"`
	AlertRatio                  float64           `json:"alert_ratio" yaml:"alert_ratio"`
	ExchangeRate                float64           `json:"exchange_rate" yaml:"exchange_rate"`
	Highlights                  []HighlightConfig `json:"highlights" yaml:"highlights"`
	Pitch                       HighlightConfig   `json:"pitch" yaml:"pitch"`
}

// HighlightConfig picks a (tier, volume) pair to headline
type HighlightConfig struct {
	Tier   string `json:"tier" yaml:"tier"`
	Orders int64  `json:"orders" yaml:"orders"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Model: ModelConfig{
			CommissionRate:  0.07,
			InfraCostRate:   0.035,
			CompetitorRate:  0.27,
			CapSafetyFactor: 0.8,
			Tiers: []TierConfig{
				{Name: "F70", Price: 70000, Audience: "New/small restaurants", SavingsLabel: "35%+ savings"},
				{Name: "F170", Price: 170000, Audience: "Mid-size active", SavingsLabel: "30%+ savings"},
				{Name: "F350", Price: 350000, Audience: "High-volume / chains", SavingsLabel: "25%+ savings"},
				{Name: "F700", Price: 700000, Audience: "Enterprise / franchise", SavingsLabel: "20%+ savings"},
			},
		},
		Report: ReportConfig{
			Currency:                    string(types.CurrencyKRW),
			AvgOrderValues:              []float64{12000, 18000, 25000, 30000, 38000, 45000},
			OrderVolumes:                []int64{10, 25, 50, 75, 100, 150, 200, 300, 500, 700, 1000},
			EffectiveVolumes:            []int64{40, 65, 100, 150, 200, 300, 400, 500, 700},
			CanonicalOrderValue:         25000,
			GeneralSavingsTarget:        0.25,
			RecommendationSavingsTarget: 0.30,
			RevenueFloorOrders:          100,
			UncappedLossOrders:          500,
			OverflowOrders:              []int64{20, 50},
			AlertRatio:                  0.8,
			ExchangeRate:                1350,
			Highlights: []HighlightConfig{
				{Tier: "F70", Orders: 65, Label: "small restaurant"},
				{Tier: "F170", Orders: 150, Label: "mid-size restaurant"},
				{Tier: "F350", Orders: 300, Label: "active restaurant"},
				{Tier: "F700", Orders: 600, Label: "high-volume restaurant"},
			},
			Pitch: HighlightConfig{Tier: "F170", Orders: 150, Label: "mid-size restaurant"},
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Named("config").Debug("config file not found, using defaults")
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err).WithContext("path", path)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = decodeJSON(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".hcl":
		err = decodeHCL(path, data, cfg)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported config extension %q", ext).WithContext("path", path)
	}
	if err != nil {
		return nil, errors.Config("failed to parse config", err).WithContext("path", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// replaced marks the entries a file sets as a whole. They replace the
// defaults instead of being merged into them field by field.
type replaced struct {
	tiers      bool
	highlights bool
	pitch      bool
}

func (r replaced) reset(cfg *Config) {
	if r.tiers {
		cfg.Model.Tiers = nil
	}
	if r.highlights {
		cfg.Report.Highlights = nil
	}
	if r.pitch {
		cfg.Report.Pitch = HighlightConfig{}
	}
}

// decodeJSON applies a JSON document on top of cfg. encoding/json decodes
// array elements into the existing backing array, so lists of structs are
// cleared first.
func decodeJSON(data []byte, cfg *Config) error {
	var doc struct {
		Model struct {
			Tiers json.RawMessage `json:"tiers"`
		} `json:"model"`
		Report struct {
			Highlights json.RawMessage `json:"highlights"`
			Pitch      json.RawMessage `json:"pitch"`
		} `json:"report"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	replaced{
		tiers:      doc.Model.Tiers != nil,
		highlights: doc.Report.Highlights != nil,
		pitch:      doc.Report.Pitch != nil,
	}.reset(cfg)
	return json.Unmarshal(data, cfg)
}

func decodeYAML(data []byte, cfg *Config) error {
	var doc struct {
		Model struct {
			Tiers yaml.Node `yaml:"tiers"`
		} `yaml:"model"`
		Report struct {
			Highlights yaml.Node `yaml:"highlights"`
			Pitch      yaml.Node `yaml:"pitch"`
		} `yaml:"report"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	replaced{
		tiers:      doc.Model.Tiers.Kind != 0,
		highlights: doc.Report.Highlights.Kind != 0,
		pitch:      doc.Report.Pitch.Kind != 0,
	}.reset(cfg)
	return yaml.Unmarshal(data, cfg)
}

// Save saves configuration to a file as JSON or YAML
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json", "":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		return errors.Newf(errors.TypeConfig, "cannot write config as %q", ext)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the tiers and the report scenario lists. Rates are
// validated by the pricing model itself.
func (c *Config) Validate() error {
	if err := types.ValidateTiers(c.Tiers()); err != nil {
		return errors.Config("invalid configuration", err)
	}

	r := c.Report
	if len(r.AvgOrderValues) == 0 {
		return invalid("report.avg_order_values", "must not be empty")
	}
	for _, v := range r.AvgOrderValues {
		if v <= 0 {
			return invalid("report.avg_order_values", fmt.Sprintf("must be positive, got %v", v))
		}
	}
	volumes := []struct {
		name string
		list []int64
	}{
		{"report.order_volumes", r.OrderVolumes},
		{"report.effective_volumes", r.EffectiveVolumes},
		{"report.overflow_orders", r.OverflowOrders},
	}
	for _, v := range volumes {
		if len(v.list) == 0 {
			return invalid(v.name, "must not be empty")
		}
		for _, n := range v.list {
			if n <= 0 {
				return invalid(v.name, fmt.Sprintf("must be positive, got %d", n))
			}
		}
	}
	if r.CanonicalOrderValue <= 0 {
		return invalid("report.canonical_order_value", "must be positive")
	}
	if r.GeneralSavingsTarget < 0 || r.GeneralSavingsTarget >= 1 {
		return invalid("report.general_savings_target", fmt.Sprintf("must be in [0,1), got %v", r.GeneralSavingsTarget))
	}
	if r.RecommendationSavingsTarget < 0 || r.RecommendationSavingsTarget >= 1 {
		return invalid("report.recommendation_savings_target", fmt.Sprintf("must be in [0,1), got %v", r.RecommendationSavingsTarget))
	}
	if r.AlertRatio <= 0 || r.AlertRatio > 1 {
		return invalid("report.alert_ratio", "must be in (0,1]")
	}
	if r.ExchangeRate <= 0 {
		return invalid("report.exchange_rate", "must be positive")
	}
	if r.RevenueFloorOrders <= 0 || r.UncappedLossOrders <= 0 || r.Pitch.Orders <= 0 {
		return invalid("report", "reference order volumes must be positive")
	}
	tiers := make(map[string]bool, len(c.Model.Tiers))
	for _, t := range c.Model.Tiers {
		tiers[t.Name] = true
	}
	for _, h := range r.Highlights {
		if !tiers[h.Tier] {
			return invalid("report.highlights", "unknown tier "+h.Tier)
		}
		if h.Orders <= 0 {
			return invalid("report.highlights", "orders must be positive for "+h.Tier)
		}
	}
	if !tiers[r.Pitch.Tier] {
		return invalid("report.pitch", "unknown tier "+r.Pitch.Tier)
	}
	return nil
}

func invalid(field, message string) error {
	return errors.Config("invalid configuration", errors.Validation(field, message))
}

// Rates converts the model section into a rate configuration
func (c *Config) Rates() types.RateConfig {
	return types.RateConfig{
		CommissionRate: decimal.NewFromFloat(c.Model.CommissionRate),
		InfraCostRate:  decimal.NewFromFloat(c.Model.InfraCostRate),
		CompetitorRate: decimal.NewFromFloat(c.Model.CompetitorRate),
	}
}

// Tiers converts the tier list, preserving declared order
func (c *Config) Tiers() []types.Tier {
	tiers := make([]types.Tier, 0, len(c.Model.Tiers))
	for _, t := range c.Model.Tiers {
		tiers = append(tiers, types.Tier{Name: t.Name, MonthlyPrice: decimal.NewFromFloat(t.Price)})
	}
	return tiers
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
