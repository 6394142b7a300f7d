// Package types - Pricing model value types
package types

import (
	"github.com/shopspring/decimal"

	"foody7-pricing/internal/errors"
)

// RateConfig holds the per-order rates the model is built on.
// All rates are fractions of the food order value.
type RateConfig struct {
	// CommissionRate is the platform fee on the commission plan
	CommissionRate decimal.Decimal `json:"commission_rate"`

	// InfraCostRate is the platform's own processing and hosting cost
	InfraCostRate decimal.Decimal `json:"infra_cost_rate"`

	// CompetitorRate is the commission charged by the competing aggregator
	CompetitorRate decimal.Decimal `json:"competitor_rate"`
}

// Validate checks every rate lies in [0,1).
func (r RateConfig) Validate() error {
	fields := []struct {
		name string
		rate decimal.Decimal
	}{
		{"commission_rate", r.CommissionRate},
		{"infra_cost_rate", r.InfraCostRate},
		{"competitor_rate", r.CompetitorRate},
	}
	for _, f := range fields {
		if f.rate.IsNegative() || f.rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return errors.Validation(f.name, "must be in [0,1), got "+f.rate.String())
		}
	}
	return nil
}

// Ordered reports whether infra < commission < competitor holds.
func (r RateConfig) Ordered() bool {
	return r.InfraCostRate.LessThan(r.CommissionRate) &&
		r.CommissionRate.LessThan(r.CompetitorRate)
}

// NetMarginRate is the platform's share of each order on the commission plan.
func (r RateConfig) NetMarginRate() decimal.Decimal {
	return r.CommissionRate.Sub(r.InfraCostRate)
}

// Tier is a monthly subscription plan
type Tier struct {
	// Name identifies the tier (e.g. "F70")
	Name string `json:"name"`

	// MonthlyPrice is the flat monthly fee
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// Validate checks the tier has a name and a positive price.
func (t Tier) Validate() error {
	if t.Name == "" {
		return errors.Validation("tier.name", "must not be empty")
	}
	if !t.MonthlyPrice.IsPositive() {
		return errors.Validation("tier."+t.Name+".monthly_price", "must be positive, got "+t.MonthlyPrice.String())
	}
	return nil
}

// ValidateTiers checks names are unique and prices strictly ascend in
// declared order. The declared order is never re-sorted.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return errors.Validation("tiers", "at least one tier is required")
	}
	seen := make(map[string]bool, len(tiers))
	for i, t := range tiers {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.Name] {
			return errors.Validation("tiers", "duplicate tier name "+t.Name)
		}
		seen[t.Name] = true
		if i > 0 && !t.MonthlyPrice.GreaterThan(tiers[i-1].MonthlyPrice) {
			return errors.Validation("tiers", "tier "+t.Name+" must be priced above "+tiers[i-1].Name)
		}
	}
	return nil
}

// ScenarioInput is one point of the (order value, volume) sweep
type ScenarioInput struct {
	// AvgOrderValue is the average food order value
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`

	// MonthlyOrders is the number of orders in a month
	MonthlyOrders int64 `json:"monthly_orders"`
}

// Validate checks the scenario is usable by the model.
func (s ScenarioInput) Validate() error {
	if !s.AvgOrderValue.IsPositive() {
		return errors.Validation("avg_order_value", "must be positive, got "+s.AvgOrderValue.String())
	}
	if s.MonthlyOrders < 0 {
		return errors.Validation("monthly_orders", "must not be negative")
	}
	return nil
}
