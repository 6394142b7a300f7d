package model

import (
	"github.com/shopspring/decimal"

	"foody7-pricing/core/types"
	"foody7-pricing/internal/errors"
)

// OverflowOption is how a restaurant handles orders beyond its cap
type OverflowOption string

const (
	// OverflowManual keeps the tier and pays commission on overflow orders
	OverflowManual OverflowOption = "manual"

	// OverflowAuto upgrades to the next tier for the month
	OverflowAuto OverflowOption = "auto"
)

// OverflowComparison compares both overflow options for one tier
type OverflowComparison struct {
	Tier           types.Tier      `json:"tier"`
	Next           types.Tier      `json:"next"`
	Cap            int64           `json:"cap"`
	OverflowOrders int64           `json:"overflow_orders"`
	ManualCost     decimal.Decimal `json:"manual_cost"`
	AutoCost       decimal.Decimal `json:"auto_cost"`
	Difference     decimal.Decimal `json:"difference"`
	Cheaper        OverflowOption  `json:"cheaper"`
}

// CompareOverflow prices overflowOrders beyond the raw cap of tierName
// both ways. The last tier has no upgrade target and yields NOT_FOUND.
func (m *Model) CompareOverflow(tierName string, overflowOrders int64, avgOrderValue decimal.Decimal) (OverflowComparison, error) {
	tier, err := m.Tier(tierName)
	if err != nil {
		return OverflowComparison{}, err
	}
	next, ok, err := m.NextTier(tierName)
	if err != nil {
		return OverflowComparison{}, err
	}
	if !ok {
		return OverflowComparison{}, errors.NotFound("next tier after", tierName)
	}

	rawCap, err := m.OrderCap(tier.MonthlyPrice, avgOrderValue)
	if err != nil {
		return OverflowComparison{}, err
	}
	manual, err := m.OverflowManualCost(tier.MonthlyPrice, overflowOrders, avgOrderValue)
	if err != nil {
		return OverflowComparison{}, err
	}
	auto, err := m.OverflowAutoCost(next.MonthlyPrice)
	if err != nil {
		return OverflowComparison{}, err
	}

	cheaper := OverflowManual
	if auto.LessThan(manual) {
		cheaper = OverflowAuto
	}
	return OverflowComparison{
		Tier:           tier,
		Next:           next,
		Cap:            rawCap,
		OverflowOrders: overflowOrders,
		ManualCost:     manual,
		AutoCost:       auto,
		Difference:     auto.Sub(manual).Abs(),
		Cheaper:        cheaper,
	}, nil
}
