package analysis

import (
	"github.com/shopspring/decimal"

	"foody7-pricing/core/types"
	"foody7-pricing/internal/config"
)

// Parameters are the scenario lists and reference points a report sweeps
type Parameters struct {
	// Metadata is copied onto the report unchanged
	Metadata Metadata

	// Swept lists, in declared order
	AvgOrderValues   []decimal.Decimal
	OrderVolumes     []int64
	EffectiveVolumes []int64
	OverflowOrders   []int64

	// Reference points
	CanonicalOrderValue decimal.Decimal
	RevenueFloorOrders  int64
	UncappedLossOrders  int64
	ExchangeRate        decimal.Decimal

	// Savings targets for the break-even and recommendation sections
	GeneralSavingsTarget        decimal.Decimal
	RecommendationSavingsTarget decimal.Decimal

	// Labels keyed by tier name
	Labels map[string]TierLabels

	Highlights []Highlight
	Pitch      Highlight
}

// TierLabels are the marketing labels of one tier
type TierLabels struct {
	Audience     string
	SavingsLabel string
}

// Highlight selects a (tier, volume) pair for a headline number
type Highlight struct {
	Tier   string
	Orders int64
	Label  string
}

// ParametersFromConfig converts the report section of a configuration
func ParametersFromConfig(cfg *config.Config) Parameters {
	r := cfg.Report
	p := Parameters{
		Metadata: Metadata{
			Version:  cfg.Version,
			Currency: types.Currency(r.Currency),
		},
		AvgOrderValues:              decimals(r.AvgOrderValues),
		OrderVolumes:                append([]int64(nil), r.OrderVolumes...),
		EffectiveVolumes:            append([]int64(nil), r.EffectiveVolumes...),
		OverflowOrders:              append([]int64(nil), r.OverflowOrders...),
		CanonicalOrderValue:         decimal.NewFromFloat(r.CanonicalOrderValue),
		RevenueFloorOrders:          r.RevenueFloorOrders,
		UncappedLossOrders:          r.UncappedLossOrders,
		ExchangeRate:                decimal.NewFromFloat(r.ExchangeRate),
		GeneralSavingsTarget:        decimal.NewFromFloat(r.GeneralSavingsTarget),
		RecommendationSavingsTarget: decimal.NewFromFloat(r.RecommendationSavingsTarget),
		Labels:                      make(map[string]TierLabels, len(cfg.Model.Tiers)),
		Pitch:                       Highlight(r.Pitch),
	}
	for _, t := range cfg.Model.Tiers {
		p.Labels[t.Name] = TierLabels{Audience: t.Audience, SavingsLabel: t.SavingsLabel}
	}
	for _, h := range r.Highlights {
		p.Highlights = append(p.Highlights, Highlight(h))
	}
	return p
}

func decimals(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.NewFromFloat(v))
	}
	return out
}
