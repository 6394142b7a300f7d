// Package model implements the commission vs subscription economics.
//
// Every operation is a pure function of the model's immutable rates and
// tiers plus its arguments. Money and rates are decimals; order counts are
// int64. Invalid arguments fail with a VALIDATION_ERROR and degenerate
// scenarios (division by zero) with NOT_COMPUTABLE, never with NaN or
// infinite results.
package model

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"foody7-pricing/core/types"
	"foody7-pricing/internal/errors"
)

// DefaultCapSafetyFactor scales the raw order cap to the advertised cap.
var DefaultCapSafetyFactor = decimal.RequireFromString("0.8")

var one = decimal.NewFromInt(1)

// Model is an immutable pricing model for one rate configuration and an
// ordered tier list.
type Model struct {
	rates     types.RateConfig
	tiers     []types.Tier
	index     map[string]int
	capSafety decimal.Decimal
	whatIf    bool
	logger    *zap.Logger
}

// Option configures a Model at construction time
type Option func(*Model)

// WithWhatIf relaxes the infra < commission < competitor ordering check.
// Each rate must still lie in [0,1).
func WithWhatIf() Option {
	return func(m *Model) { m.whatIf = true }
}

// WithCapSafetyFactor sets the factor applied to the raw order cap.
func WithCapSafetyFactor(f decimal.Decimal) Option {
	return func(m *Model) { m.capSafety = f }
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// New validates rates and tiers and returns a model. Every tier carries an
// order cap, so a zero infra cost rate is rejected here even though
// RateConfig accepts it.
func New(rates types.RateConfig, tiers []types.Tier, opts ...Option) (*Model, error) {
	m := &Model{
		rates:     rates,
		capSafety: DefaultCapSafetyFactor,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := rates.Validate(); err != nil {
		return nil, err
	}
	if rates.InfraCostRate.IsZero() {
		return nil, errors.Validation("infra_cost_rate", "must be positive, order caps are derived from it")
	}
	if !rates.Ordered() {
		if !m.whatIf {
			return nil, errors.Validation("rates",
				"expected infra_cost_rate < commission_rate < competitor_rate").
				WithContext("commission_rate", rates.CommissionRate.String()).
				WithContext("infra_cost_rate", rates.InfraCostRate.String()).
				WithContext("competitor_rate", rates.CompetitorRate.String())
		}
		m.logger.Warn("rate ordering violated in what-if model",
			zap.String("commission_rate", rates.CommissionRate.String()),
			zap.String("infra_cost_rate", rates.InfraCostRate.String()),
			zap.String("competitor_rate", rates.CompetitorRate.String()))
	}
	if err := types.ValidateTiers(tiers); err != nil {
		return nil, err
	}
	if !m.capSafety.IsPositive() || m.capSafety.GreaterThan(one) {
		return nil, errors.Validation("cap_safety_factor", "must be in (0,1], got "+m.capSafety.String())
	}

	m.tiers = make([]types.Tier, len(tiers))
	copy(m.tiers, tiers)
	m.index = make(map[string]int, len(tiers))
	for i, t := range m.tiers {
		m.index[t.Name] = i
	}

	m.logger.Debug("pricing model ready",
		zap.String("commission_rate", rates.CommissionRate.String()),
		zap.String("infra_cost_rate", rates.InfraCostRate.String()),
		zap.Int("tiers", len(m.tiers)))
	return m, nil
}

// Rates returns the model's rate configuration
func (m *Model) Rates() types.RateConfig {
	return m.rates
}

// CapSafetyFactor returns the factor applied to raw order caps
func (m *Model) CapSafetyFactor() decimal.Decimal {
	return m.capSafety
}

// CommissionPerOrder is the commission-plan fee on one order.
func (m *Model) CommissionPerOrder(avgOrderValue decimal.Decimal) (decimal.Decimal, error) {
	if err := requirePositive("avg_order_value", avgOrderValue); err != nil {
		return decimal.Zero, err
	}
	return avgOrderValue.Mul(m.rates.CommissionRate), nil
}

// NetMarginPerOrder is the platform's margin on one commission-plan order.
func (m *Model) NetMarginPerOrder(avgOrderValue decimal.Decimal) (decimal.Decimal, error) {
	if err := requirePositive("avg_order_value", avgOrderValue); err != nil {
		return decimal.Zero, err
	}
	return avgOrderValue.Mul(m.rates.NetMarginRate()), nil
}

// SubscriptionNetRevenue is the tier price minus the infra cost of serving
// orders. A negative result means the subscriber costs more than they pay.
func (m *Model) SubscriptionNetRevenue(tierPrice decimal.Decimal, orders int64, avgOrderValue decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("tier_price", tierPrice); err != nil {
		return decimal.Zero, err
	}
	if err := requireOrders("orders", orders); err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive("avg_order_value", avgOrderValue); err != nil {
		return decimal.Zero, err
	}
	if orders == 0 {
		return decimal.Zero, errors.NotComputable("subscription net revenue", "zero order volume")
	}
	infra := decimal.NewFromInt(orders).Mul(avgOrderValue).Mul(m.rates.InfraCostRate)
	return tierPrice.Sub(infra), nil
}

// BreakEvenOrders is the first monthly order count at which the flat tier
// price is no more than the accumulated commission.
func (m *Model) BreakEvenOrders(tierPrice, avgOrderValue decimal.Decimal) (int64, error) {
	if err := requireNonNegative("tier_price", tierPrice); err != nil {
		return 0, err
	}
	perOrder, err := m.CommissionPerOrder(avgOrderValue)
	if err != nil {
		return 0, err
	}
	if perOrder.IsZero() {
		return 0, errors.NotComputable("break-even orders", "zero commission per order")
	}
	return tierPrice.Div(perOrder).Ceil().IntPart(), nil
}

// SweetSpotOrders is the first monthly order count at which the tier saves
// at least savingsPct of the commission cost.
func (m *Model) SweetSpotOrders(tierPrice, avgOrderValue, savingsPct decimal.Decimal) (int64, error) {
	if err := requireNonNegative("tier_price", tierPrice); err != nil {
		return 0, err
	}
	if savingsPct.IsNegative() || savingsPct.GreaterThanOrEqual(one) {
		return 0, errors.Validation("savings_pct", "must be in [0,1), got "+savingsPct.String())
	}
	perOrder, err := m.CommissionPerOrder(avgOrderValue)
	if err != nil {
		return 0, err
	}
	if perOrder.IsZero() {
		return 0, errors.NotComputable("sweet spot orders", "zero commission per order")
	}
	return tierPrice.Div(perOrder.Mul(one.Sub(savingsPct))).Ceil().IntPart(), nil
}

// CompetitorCost is what the restaurant would pay the competitor.
func (m *Model) CompetitorCost(orders int64, avgOrderValue decimal.Decimal) (decimal.Decimal, error) {
	if err := requireOrders("orders", orders); err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive("avg_order_value", avgOrderValue); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(orders).Mul(avgOrderValue).Mul(m.rates.CompetitorRate), nil
}

// EffectiveRate expresses a subscription as a per-order commission. The
// result is a fraction comparable with the configured rates.
func (m *Model) EffectiveRate(tierPrice decimal.Decimal, orders int64, avgOrderValue decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("tier_price", tierPrice); err != nil {
		return decimal.Zero, err
	}
	if err := requireOrders("orders", orders); err != nil {
		return decimal.Zero, err
	}
	if err := requirePositive("avg_order_value", avgOrderValue); err != nil {
		return decimal.Zero, err
	}
	if orders == 0 {
		return decimal.Zero, errors.NotComputable("effective rate", "zero order volume")
	}
	return tierPrice.Div(decimal.NewFromInt(orders).Mul(avgOrderValue)), nil
}

// OrderCap is the order count at which the model's infra cost consumes the
// whole tier price.
func (m *Model) OrderCap(tierPrice, avgOrderValue decimal.Decimal) (int64, error) {
	return OrderCapAt(tierPrice, avgOrderValue, m.rates.InfraCostRate)
}

// OrderCapAt is OrderCap for an explicit infra cost rate.
func OrderCapAt(tierPrice, avgOrderValue, infraCostRate decimal.Decimal) (int64, error) {
	if err := requireNonNegative("tier_price", tierPrice); err != nil {
		return 0, err
	}
	if err := requirePositive("avg_order_value", avgOrderValue); err != nil {
		return 0, err
	}
	if infraCostRate.IsNegative() || infraCostRate.GreaterThanOrEqual(one) {
		return 0, errors.Validation("infra_cost_rate", "must be in [0,1), got "+infraCostRate.String())
	}
	if infraCostRate.IsZero() {
		return 0, errors.NotComputable("order cap", "zero infra cost rate")
	}
	return tierPrice.Div(avgOrderValue.Mul(infraCostRate)).Floor().IntPart(), nil
}

// RecommendedCap applies the safety factor to the raw order cap.
func (m *Model) RecommendedCap(tierPrice, avgOrderValue decimal.Decimal) (int64, error) {
	raw, err := m.OrderCap(tierPrice, avgOrderValue)
	if err != nil {
		return 0, err
	}
	return decimal.NewFromInt(raw).Mul(m.capSafety).Floor().IntPart(), nil
}

// OverflowManualCost is the cost of staying on a tier and paying commission
// on the orders beyond its cap.
func (m *Model) OverflowManualCost(tierPrice decimal.Decimal, overflowOrders int64, avgOrderValue decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("tier_price", tierPrice); err != nil {
		return decimal.Zero, err
	}
	if err := requireOrders("overflow_orders", overflowOrders); err != nil {
		return decimal.Zero, err
	}
	perOrder, err := m.CommissionPerOrder(avgOrderValue)
	if err != nil {
		return decimal.Zero, err
	}
	return tierPrice.Add(decimal.NewFromInt(overflowOrders).Mul(perOrder)), nil
}

// OverflowAutoCost is the cost of upgrading to the next tier on overflow.
// The full next-tier price is charged for the month; it is not prorated.
func (m *Model) OverflowAutoCost(nextTierPrice decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("next_tier_price", nextTierPrice); err != nil {
		return decimal.Zero, err
	}
	return nextTierPrice, nil
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errors.Validation(field, "must be positive, got "+v.String())
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errors.Validation(field, "must not be negative, got "+v.String())
	}
	return nil
}

func requireOrders(field string, n int64) error {
	if n < 0 {
		return errors.Validation(field, "must not be negative")
	}
	return nil
}
