package model

import (
	"github.com/shopspring/decimal"

	"foody7-pricing/core/types"
)

// PlanCommission names the default no-fee plan
const PlanCommission = "commission"

// PlanCost is what one plan costs the restaurant for a scenario
type PlanCost struct {
	Plan           string          `json:"plan"`
	Cost           decimal.Decimal `json:"cost"`
	Cap            int64           `json:"cap,omitempty"`
	OverflowOrders int64           `json:"overflow_orders,omitempty"`
}

// Quote is the savings calculator result for one scenario
type Quote struct {
	Scenario            types.ScenarioInput `json:"scenario"`
	Commission          PlanCost            `json:"commission"`
	Competitor          decimal.Decimal     `json:"competitor"`
	Tiers               []PlanCost          `json:"tiers"`
	Best                PlanCost            `json:"best"`
	SavingsVsCommission decimal.Decimal     `json:"savings_vs_commission"`
	SavingsVsCompetitor decimal.Decimal     `json:"savings_vs_competitor"`
}

// Quote prices a scenario on every plan. A tier costs its price up to the
// recommended cap and commission on each order above it. Ties keep the
// earlier plan, with the commission plan first.
func (m *Model) Quote(s types.ScenarioInput) (Quote, error) {
	if err := s.Validate(); err != nil {
		return Quote{}, err
	}
	perOrder, err := m.CommissionPerOrder(s.AvgOrderValue)
	if err != nil {
		return Quote{}, err
	}
	competitor, err := m.CompetitorCost(s.MonthlyOrders, s.AvgOrderValue)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		Scenario: s,
		Commission: PlanCost{
			Plan: PlanCommission,
			Cost: decimal.NewFromInt(s.MonthlyOrders).Mul(perOrder),
		},
		Competitor: competitor,
		Tiers:      make([]PlanCost, 0, len(m.tiers)),
	}
	q.Best = q.Commission

	for _, tier := range m.tiers {
		limit, err := m.RecommendedCap(tier.MonthlyPrice, s.AvgOrderValue)
		if err != nil {
			return Quote{}, err
		}
		var overflow int64
		if s.MonthlyOrders > limit {
			overflow = s.MonthlyOrders - limit
		}
		cost, err := m.OverflowManualCost(tier.MonthlyPrice, overflow, s.AvgOrderValue)
		if err != nil {
			return Quote{}, err
		}
		pc := PlanCost{Plan: tier.Name, Cost: cost, Cap: limit, OverflowOrders: overflow}
		q.Tiers = append(q.Tiers, pc)
		if pc.Cost.LessThan(q.Best.Cost) {
			q.Best = pc
		}
	}

	q.SavingsVsCommission = q.Commission.Cost.Sub(q.Best.Cost)
	q.SavingsVsCompetitor = q.Competitor.Sub(q.Best.Cost)
	return q, nil
}
