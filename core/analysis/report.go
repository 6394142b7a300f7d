// Package analysis sweeps the pricing model over the configured order
// values and volumes and collects the results as report sections.
//
// Sections hold raw decimals and counts only. Rows follow the declared
// order of tiers, order values and volumes so the same parameters always
// yield the same report.
package analysis

import (
	"github.com/shopspring/decimal"

	"foody7-pricing/core/model"
	"foody7-pricing/core/types"
)

// Report is the complete pricing analysis
type Report struct {
	Metadata        Metadata              `json:"metadata"`
	Assumptions     Assumptions           `json:"assumptions"`
	BreakEven       BreakEvenSection      `json:"break_even"`
	Revenue         RevenueSection        `json:"revenue"`
	RestaurantCost  RestaurantCostSection `json:"restaurant_cost"`
	Recommendations RecommendationSection `json:"recommendations"`
	OrderCaps       OrderCapSection       `json:"order_caps"`
	Summary         SummarySection        `json:"summary"`
	EffectiveRates  EffectiveRateSection  `json:"effective_rates"`
	Overflow        OverflowSection       `json:"overflow"`
	LandingPage     LandingPageSection    `json:"landing_page"`
	BrandedApp      BrandedAppSection     `json:"branded_app"`
}

// Metadata identifies the run and its inputs
type Metadata struct {
	Version   string         `json:"version"`
	RunID     string         `json:"run_id,omitempty"`
	InputHash string         `json:"input_hash,omitempty"`
	Currency  types.Currency `json:"currency"`
}

// Assumptions are the model parameters the report was computed with
type Assumptions struct {
	CommissionRate      decimal.Decimal `json:"commission_rate"`
	InfraCostRate       decimal.Decimal `json:"infra_cost_rate"`
	CompetitorRate      decimal.Decimal `json:"competitor_rate"`
	NetMarginRate       decimal.Decimal `json:"net_margin_rate"`
	CapSafetyFactor     decimal.Decimal `json:"cap_safety_factor"`
	CanonicalOrderValue decimal.Decimal `json:"canonical_order_value"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate"`
}

// BreakEvenSection: break-even and savings threshold per tier and order value
type BreakEvenSection struct {
	SavingsTarget decimal.Decimal   `json:"savings_target"`
	OrderValues   []decimal.Decimal `json:"order_values"`
	Rows          []BreakEvenRow    `json:"rows"`
}

// BreakEvenRow is aligned with BreakEvenSection.OrderValues
type BreakEvenRow struct {
	Tier      types.Tier `json:"tier"`
	BreakEven []int64    `json:"break_even"`
	SweetSpot []int64    `json:"sweet_spot"`
}

// RevenueSection: platform monthly net revenue per plan
type RevenueSection struct {
	OrderValue decimal.Decimal `json:"order_value"`
	Tiers      []types.Tier    `json:"tiers"`
	Rows       []RevenueRow    `json:"rows"`
}

// RevenueRow is the platform's net revenue at one volume
type RevenueRow struct {
	Orders       int64             `json:"orders"`
	Commission   decimal.Decimal   `json:"commission"`
	Subscription []decimal.Decimal `json:"subscription"`
}

// RestaurantCostSection: what the restaurant pays on each plan
type RestaurantCostSection struct {
	OrderValue decimal.Decimal     `json:"order_value"`
	Tiers      []types.Tier        `json:"tiers"`
	Rows       []RestaurantCostRow `json:"rows"`
}

// RestaurantCostRow is the restaurant's cost at one volume. TierCheaper[i]
// is true when Tiers[i] beats the commission plan.
type RestaurantCostRow struct {
	Orders      int64           `json:"orders"`
	Competitor  decimal.Decimal `json:"competitor"`
	Commission  decimal.Decimal `json:"commission"`
	TierCheaper []bool          `json:"tier_cheaper"`
}

// RecommendationSection: tier positioning and the revenue floor
type RecommendationSection struct {
	OrderValue      decimal.Decimal     `json:"order_value"`
	SavingsTarget   decimal.Decimal     `json:"savings_target"`
	Rows            []RecommendationRow `json:"rows"`
	FloorOrders     int64               `json:"floor_orders"`
	FloorCommission decimal.Decimal     `json:"floor_commission"`
	Floor           []TierRevenue       `json:"floor"`
	LossTiers       []string            `json:"loss_tiers,omitempty"`
}

// RecommendationRow positions one tier
type RecommendationRow struct {
	Tier         types.Tier `json:"tier"`
	Audience     string     `json:"audience,omitempty"`
	SavingsLabel string     `json:"savings_label,omitempty"`
	BreakEven    int64      `json:"break_even"`
	SweetSpot    int64      `json:"sweet_spot"`
}

// TierRevenue is the platform's net revenue on one tier
type TierRevenue struct {
	Tier string          `json:"tier"`
	Net  decimal.Decimal `json:"net"`
}

// OrderCapSection: caps that keep subscriptions profitable
type OrderCapSection struct {
	OrderValue   decimal.Decimal `json:"order_value"`
	SafetyFactor decimal.Decimal `json:"safety_factor"`
	Rows         []OrderCapRow   `json:"rows"`
	Uncapped     UncappedLoss    `json:"uncapped"`
}

// OrderCapRow is the cap analysis for one tier
type OrderCapRow struct {
	Tier           types.Tier      `json:"tier"`
	RawCap         int64           `json:"raw_cap"`
	MinMargin      decimal.Decimal `json:"min_margin"`
	BreakEven      int64           `json:"break_even"`
	RecommendedCap int64           `json:"recommended_cap"`
}

// UncappedLoss illustrates the cheapest tier without a cap
type UncappedLoss struct {
	Tier      types.Tier      `json:"tier"`
	Orders    int64           `json:"orders"`
	InfraCost decimal.Decimal `json:"infra_cost"`
	Net       decimal.Decimal `json:"net"`
}

// SummarySection: one-page pricing structure
type SummarySection struct {
	CommissionRate      decimal.Decimal `json:"commission_rate"`
	InfraCostRate       decimal.Decimal `json:"infra_cost_rate"`
	NetMarginRate       decimal.Decimal `json:"net_margin_rate"`
	CommissionBestBelow int64           `json:"commission_best_below"`
	Rows                []SummaryRow    `json:"rows"`
}

// SummaryRow is a tier's advertised range
type SummaryRow struct {
	Tier           types.Tier `json:"tier"`
	RecommendedCap int64      `json:"recommended_cap"`
	BestFrom       int64      `json:"best_from"`
	BestTo         int64      `json:"best_to"`
}

// EffectiveRateSection: subscriptions as a per-order percentage
type EffectiveRateSection struct {
	OrderValue     decimal.Decimal    `json:"order_value"`
	Volumes        []int64            `json:"volumes"`
	CommissionRate decimal.Decimal    `json:"commission_rate"`
	CompetitorRate decimal.Decimal    `json:"competitor_rate"`
	Rows           []EffectiveRateRow `json:"rows"`
	Headlines      []Headline         `json:"headlines"`
}

// EffectiveRateRow is aligned with EffectiveRateSection.Volumes
type EffectiveRateRow struct {
	Tier            types.Tier        `json:"tier"`
	Rates           []decimal.Decimal `json:"rates"`
	BelowCommission []bool            `json:"below_commission"`
}

// Headline is a landing-page number for one (tier, volume) pair
type Headline struct {
	Label       string          `json:"label"`
	Tier        string          `json:"tier"`
	Orders      int64           `json:"orders"`
	Rate        decimal.Decimal `json:"rate"`
	PointsSaved decimal.Decimal `json:"points_saved"`
}

// OverflowSection: manual vs auto upgrade when a cap is exceeded
type OverflowSection struct {
	OrderValue  decimal.Decimal            `json:"order_value"`
	Comparisons []model.OverflowComparison `json:"comparisons"`
}

// LandingPageSection: the pricing table shown to restaurants
type LandingPageSection struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CompetitorRate decimal.Decimal `json:"competitor_rate"`
	Rows           []LandingRow    `json:"rows"`
	LowestRate     decimal.Decimal `json:"lowest_rate"`
	LowestTier     string          `json:"lowest_tier"`
	Violations     []string        `json:"violations,omitempty"`
}

// LandingRow is one tier of the public pricing table. From is the
// effective rate at the recommended cap.
type LandingRow struct {
	Tier     types.Tier      `json:"tier"`
	From     decimal.Decimal `json:"from"`
	BestFrom int64           `json:"best_from"`
	BestTo   int64           `json:"best_to"`
}

// BrandedAppSection: combined value pitch for one restaurant profile
type BrandedAppSection struct {
	Tier           types.Tier      `json:"tier"`
	Orders         int64           `json:"orders"`
	OrderValue     decimal.Decimal `json:"order_value"`
	CompetitorCost decimal.Decimal `json:"competitor_cost"`
	MonthlySavings decimal.Decimal `json:"monthly_savings"`
	AnnualSavings  decimal.Decimal `json:"annual_savings"`
}
