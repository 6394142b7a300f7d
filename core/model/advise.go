package model

import (
	"github.com/shopspring/decimal"

	"foody7-pricing/internal/errors"
)

// DefaultAlertRatio is the share of the cap at which the smart alert fires.
var DefaultAlertRatio = decimal.RequireFromString("0.8")

// Advice is the mid-month status of a restaurant on a plan
type Advice struct {
	Plan           string          `json:"plan"`
	OrdersSoFar    int64           `json:"orders_so_far"`
	Cap            int64           `json:"cap,omitempty"`
	AlertAt        int64           `json:"alert_at,omitempty"`
	AlertReached   bool            `json:"alert_reached"`
	CapReached     bool            `json:"cap_reached"`
	OverflowOrders int64           `json:"overflow_orders"`
	AccruedCost    decimal.Decimal `json:"accrued_cost"`
	SuggestUpgrade bool            `json:"suggest_upgrade"`
	UpgradeTo      string          `json:"upgrade_to,omitempty"`
	UpgradePrice   decimal.Decimal `json:"upgrade_price"`
}

// Advise evaluates the upgrade trigger. On the commission plan ("" or
// PlanCommission) an upgrade to the first tier is suggested once accrued
// commission exceeds its price. On a tier the alert, cap and overflow are
// tracked against the recommended cap and the next tier is suggested once
// price plus overflow commission exceeds the next tier price.
func (m *Model) Advise(plan string, ordersSoFar int64, avgOrderValue, alertRatio decimal.Decimal) (Advice, error) {
	if err := requireOrders("orders_so_far", ordersSoFar); err != nil {
		return Advice{}, err
	}
	if !alertRatio.IsPositive() || alertRatio.GreaterThan(one) {
		return Advice{}, errors.Validation("alert_ratio", "must be in (0,1], got "+alertRatio.String())
	}

	if plan == "" || plan == PlanCommission {
		perOrder, err := m.CommissionPerOrder(avgOrderValue)
		if err != nil {
			return Advice{}, err
		}
		first := m.FirstTier()
		a := Advice{
			Plan:        PlanCommission,
			OrdersSoFar: ordersSoFar,
			AccruedCost: decimal.NewFromInt(ordersSoFar).Mul(perOrder),
		}
		if a.AccruedCost.GreaterThan(first.MonthlyPrice) {
			a.SuggestUpgrade = true
			a.UpgradeTo = first.Name
			a.UpgradePrice = first.MonthlyPrice
		}
		return a, nil
	}

	tier, err := m.Tier(plan)
	if err != nil {
		return Advice{}, err
	}
	limit, err := m.RecommendedCap(tier.MonthlyPrice, avgOrderValue)
	if err != nil {
		return Advice{}, err
	}
	a := Advice{
		Plan:        tier.Name,
		OrdersSoFar: ordersSoFar,
		Cap:         limit,
		AlertAt:     decimal.NewFromInt(limit).Mul(alertRatio).Ceil().IntPart(),
		CapReached:  ordersSoFar >= limit,
	}
	a.AlertReached = ordersSoFar >= a.AlertAt
	if ordersSoFar > limit {
		a.OverflowOrders = ordersSoFar - limit
	}
	a.AccruedCost, err = m.OverflowManualCost(tier.MonthlyPrice, a.OverflowOrders, avgOrderValue)
	if err != nil {
		return Advice{}, err
	}

	next, ok, err := m.NextTier(tier.Name)
	if err != nil {
		return Advice{}, err
	}
	if ok && a.AccruedCost.GreaterThan(next.MonthlyPrice) {
		a.SuggestUpgrade = true
		a.UpgradeTo = next.Name
		a.UpgradePrice = next.MonthlyPrice
	}
	return a, nil
}
