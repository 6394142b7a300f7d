package analysis

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"foody7-pricing/core/model"
	"foody7-pricing/core/types"
	"foody7-pricing/internal/errors"
	"foody7-pricing/internal/logging"
)

// builder evaluates one section at a time against a fixed model
type builder struct {
	m      *model.Model
	p      Parameters
	tiers  []types.Tier
	logger *zap.Logger
}

type step struct {
	name string
	run  func(r *Report) error
}

// Build evaluates every report section in order. The first failing
// section aborts the report; partial reports are never returned.
func Build(m *model.Model, p Parameters) (*Report, error) {
	if m == nil {
		return nil, errors.New(errors.TypeInternal, "analysis requires a pricing model")
	}

	b := &builder{
		m:      m,
		p:      p,
		tiers:  m.Tiers(),
		logger: logging.Named("analysis"),
	}

	rates := m.Rates()
	r := &Report{
		Metadata: p.Metadata,
		Assumptions: Assumptions{
			CommissionRate:      rates.CommissionRate,
			InfraCostRate:       rates.InfraCostRate,
			CompetitorRate:      rates.CompetitorRate,
			NetMarginRate:       rates.NetMarginRate(),
			CapSafetyFactor:     m.CapSafetyFactor(),
			CanonicalOrderValue: p.CanonicalOrderValue,
			ExchangeRate:        p.ExchangeRate,
		},
	}
	if r.Metadata.Currency == "" {
		r.Metadata.Currency = types.CurrencyKRW
	}

	steps := []step{
		{"break_even", b.breakEven},
		{"revenue", b.revenue},
		{"restaurant_cost", b.restaurantCost},
		{"recommendations", b.recommendations},
		{"order_caps", b.orderCaps},
		{"summary", b.summary},
		{"effective_rates", b.effectiveRates},
		{"overflow", b.overflow},
		{"landing_page", b.landingPage},
		{"branded_app", b.brandedApp},
	}
	for _, s := range steps {
		if err := s.run(r); err != nil {
			return nil, errors.Wrap(errors.TypeOf(err), "section "+s.name, err)
		}
		b.logger.Debug("report section built", zap.String("section", s.name))
	}
	return r, nil
}

func (b *builder) breakEven(r *Report) error {
	sec := BreakEvenSection{
		SavingsTarget: b.p.GeneralSavingsTarget,
		OrderValues:   b.p.AvgOrderValues,
	}
	for _, t := range b.tiers {
		row := BreakEvenRow{Tier: t}
		for _, avg := range b.p.AvgOrderValues {
			be, err := b.m.BreakEvenOrders(t.MonthlyPrice, avg)
			if err != nil {
				return err
			}
			ss, err := b.m.SweetSpotOrders(t.MonthlyPrice, avg, b.p.GeneralSavingsTarget)
			if err != nil {
				return err
			}
			row.BreakEven = append(row.BreakEven, be)
			row.SweetSpot = append(row.SweetSpot, ss)
		}
		sec.Rows = append(sec.Rows, row)
	}
	r.BreakEven = sec
	return nil
}

func (b *builder) revenue(r *Report) error {
	avg := b.p.CanonicalOrderValue
	margin, err := b.m.NetMarginPerOrder(avg)
	if err != nil {
		return err
	}

	sec := RevenueSection{OrderValue: avg, Tiers: b.tiers}
	for _, orders := range b.p.OrderVolumes {
		row := RevenueRow{
			Orders:     orders,
			Commission: margin.Mul(decimal.NewFromInt(orders)),
		}
		for _, t := range b.tiers {
			net, err := b.m.SubscriptionNetRevenue(t.MonthlyPrice, orders, avg)
			if err != nil {
				return err
			}
			row.Subscription = append(row.Subscription, net)
		}
		sec.Rows = append(sec.Rows, row)
	}
	r.Revenue = sec
	return nil
}

func (b *builder) restaurantCost(r *Report) error {
	avg := b.p.CanonicalOrderValue
	perOrder, err := b.m.CommissionPerOrder(avg)
	if err != nil {
		return err
	}
	breakEven, err := b.breakEvens(avg)
	if err != nil {
		return err
	}

	sec := RestaurantCostSection{OrderValue: avg, Tiers: b.tiers}
	for _, orders := range b.p.OrderVolumes {
		competitor, err := b.m.CompetitorCost(orders, avg)
		if err != nil {
			return err
		}
		row := RestaurantCostRow{
			Orders:     orders,
			Competitor: competitor,
			Commission: perOrder.Mul(decimal.NewFromInt(orders)),
		}
		for i := range b.tiers {
			row.TierCheaper = append(row.TierCheaper, orders > breakEven[i])
		}
		sec.Rows = append(sec.Rows, row)
	}
	r.RestaurantCost = sec
	return nil
}

func (b *builder) recommendations(r *Report) error {
	avg := b.p.CanonicalOrderValue
	sec := RecommendationSection{
		OrderValue:    avg,
		SavingsTarget: b.p.RecommendationSavingsTarget,
		FloorOrders:   b.p.RevenueFloorOrders,
	}

	for _, t := range b.tiers {
		be, err := b.m.BreakEvenOrders(t.MonthlyPrice, avg)
		if err != nil {
			return err
		}
		ss, err := b.m.SweetSpotOrders(t.MonthlyPrice, avg, b.p.RecommendationSavingsTarget)
		if err != nil {
			return err
		}
		labels := b.p.Labels[t.Name]
		sec.Rows = append(sec.Rows, RecommendationRow{
			Tier:         t,
			Audience:     labels.Audience,
			SavingsLabel: labels.SavingsLabel,
			BreakEven:    be,
			SweetSpot:    ss,
		})
	}

	margin, err := b.m.NetMarginPerOrder(avg)
	if err != nil {
		return err
	}
	sec.FloorCommission = margin.Mul(decimal.NewFromInt(b.p.RevenueFloorOrders))
	for _, t := range b.tiers {
		net, err := b.m.SubscriptionNetRevenue(t.MonthlyPrice, b.p.RevenueFloorOrders, avg)
		if err != nil {
			return err
		}
		sec.Floor = append(sec.Floor, TierRevenue{Tier: t.Name, Net: net})
		if net.IsNegative() {
			sec.LossTiers = append(sec.LossTiers, t.Name)
		}
	}
	r.Recommendations = sec
	return nil
}

func (b *builder) orderCaps(r *Report) error {
	avg := b.p.CanonicalOrderValue
	sec := OrderCapSection{OrderValue: avg, SafetyFactor: b.m.CapSafetyFactor()}

	for _, t := range b.tiers {
		raw, err := b.m.OrderCap(t.MonthlyPrice, avg)
		if err != nil {
			return err
		}
		row := OrderCapRow{Tier: t, RawCap: raw, MinMargin: t.MonthlyPrice}
		if raw > 0 {
			if row.MinMargin, err = b.m.SubscriptionNetRevenue(t.MonthlyPrice, raw, avg); err != nil {
				return err
			}
		}
		if row.BreakEven, err = b.m.BreakEvenOrders(t.MonthlyPrice, avg); err != nil {
			return err
		}
		if row.RecommendedCap, err = b.m.RecommendedCap(t.MonthlyPrice, avg); err != nil {
			return err
		}
		sec.Rows = append(sec.Rows, row)
	}

	first := b.m.FirstTier()
	net, err := b.m.SubscriptionNetRevenue(first.MonthlyPrice, b.p.UncappedLossOrders, avg)
	if err != nil {
		return err
	}
	sec.Uncapped = UncappedLoss{
		Tier:      first,
		Orders:    b.p.UncappedLossOrders,
		InfraCost: first.MonthlyPrice.Sub(net),
		Net:       net,
	}
	r.OrderCaps = sec
	return nil
}

// summary reuses the cap rows, so it must run after orderCaps
func (b *builder) summary(r *Report) error {
	rates := b.m.Rates()
	sec := SummarySection{
		CommissionRate: rates.CommissionRate,
		InfraCostRate:  rates.InfraCostRate,
		NetMarginRate:  rates.NetMarginRate(),
	}
	if len(r.OrderCaps.Rows) != len(b.tiers) {
		return errors.New(errors.TypeInternal, "order caps must be built before the summary")
	}
	sec.CommissionBestBelow = r.OrderCaps.Rows[0].BreakEven
	for _, row := range r.OrderCaps.Rows {
		sec.Rows = append(sec.Rows, SummaryRow{
			Tier:           row.Tier,
			RecommendedCap: row.RecommendedCap,
			BestFrom:       row.BreakEven,
			BestTo:         row.RecommendedCap,
		})
	}
	r.Summary = sec
	return nil
}

func (b *builder) effectiveRates(r *Report) error {
	avg := b.p.CanonicalOrderValue
	rates := b.m.Rates()
	sec := EffectiveRateSection{
		OrderValue:     avg,
		Volumes:        b.p.EffectiveVolumes,
		CommissionRate: rates.CommissionRate,
		CompetitorRate: rates.CompetitorRate,
	}

	for _, t := range b.tiers {
		row := EffectiveRateRow{Tier: t}
		for _, orders := range b.p.EffectiveVolumes {
			rate, err := b.m.EffectiveRate(t.MonthlyPrice, orders, avg)
			if err != nil {
				return err
			}
			row.Rates = append(row.Rates, rate)
			row.BelowCommission = append(row.BelowCommission, rate.LessThan(rates.CommissionRate))
		}
		sec.Rows = append(sec.Rows, row)
	}

	for _, h := range b.p.Highlights {
		t, err := b.m.Tier(h.Tier)
		if err != nil {
			return err
		}
		rate, err := b.m.EffectiveRate(t.MonthlyPrice, h.Orders, avg)
		if err != nil {
			return err
		}
		sec.Headlines = append(sec.Headlines, Headline{
			Label:       h.Label,
			Tier:        t.Name,
			Orders:      h.Orders,
			Rate:        rate,
			PointsSaved: rates.CompetitorRate.Sub(rate),
		})
	}
	r.EffectiveRates = sec
	return nil
}

func (b *builder) overflow(r *Report) error {
	avg := b.p.CanonicalOrderValue
	sec := OverflowSection{OrderValue: avg}
	for _, t := range b.tiers[:len(b.tiers)-1] {
		for _, n := range b.p.OverflowOrders {
			c, err := b.m.CompareOverflow(t.Name, n, avg)
			if err != nil {
				return err
			}
			sec.Comparisons = append(sec.Comparisons, c)
		}
	}
	r.Overflow = sec
	return nil
}

func (b *builder) landingPage(r *Report) error {
	avg := b.p.CanonicalOrderValue
	rates := b.m.Rates()
	sec := LandingPageSection{
		CommissionRate: rates.CommissionRate,
		CompetitorRate: rates.CompetitorRate,
	}

	for _, t := range b.tiers {
		limit, err := b.m.RecommendedCap(t.MonthlyPrice, avg)
		if err != nil {
			return err
		}
		be, err := b.m.BreakEvenOrders(t.MonthlyPrice, avg)
		if err != nil {
			return err
		}
		if limit == 0 {
			return errors.NotComputable("landing page rate", "recommended cap of "+t.Name+" is zero")
		}
		from, err := b.m.EffectiveRate(t.MonthlyPrice, limit, avg)
		if err != nil {
			return err
		}
		sec.Rows = append(sec.Rows, LandingRow{Tier: t, From: from, BestFrom: be, BestTo: limit})

		if !from.LessThan(rates.CommissionRate) {
			b.logger.Warn("advertised rate is not below commission",
				zap.String("tier", t.Name),
				zap.String("effective_rate", from.String()),
				zap.String("commission_rate", rates.CommissionRate.String()))
			sec.Violations = append(sec.Violations, t.Name)
		}
		if sec.LowestTier == "" || from.LessThan(sec.LowestRate) {
			sec.LowestRate = from
			sec.LowestTier = t.Name
		}
	}
	r.LandingPage = sec
	return nil
}

func (b *builder) brandedApp(r *Report) error {
	avg := b.p.CanonicalOrderValue
	t, err := b.m.Tier(b.p.Pitch.Tier)
	if err != nil {
		return err
	}
	competitor, err := b.m.CompetitorCost(b.p.Pitch.Orders, avg)
	if err != nil {
		return err
	}
	monthly := competitor.Sub(t.MonthlyPrice)
	r.BrandedApp = BrandedAppSection{
		Tier:           t,
		Orders:         b.p.Pitch.Orders,
		OrderValue:     avg,
		CompetitorCost: competitor,
		MonthlySavings: monthly,
		AnnualSavings:  monthly.Mul(decimal.NewFromInt(12)),
	}
	return nil
}

func (b *builder) breakEvens(avg decimal.Decimal) ([]int64, error) {
	out := make([]int64, 0, len(b.tiers))
	for _, t := range b.tiers {
		be, err := b.m.BreakEvenOrders(t.MonthlyPrice, avg)
		if err != nil {
			return nil, err
		}
		out = append(out, be)
	}
	return out, nil
}
