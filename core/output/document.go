package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"foody7-pricing/core/analysis"
	"foody7-pricing/core/types"
)

// Document is the presentation projection of a report. The cli and
// markdown formatters render the same document, so their rows match.
type Document struct {
	Title    string
	Sections []Section
	Footer   string
}

// Section is one titled block of the report
type Section struct {
	Title    string
	Subtitle string
	Lead     []string
	Tables   []Table
	Notes    []string
	Warnings []string
}

// Table is a rendered table. Right marks right-aligned columns.
type Table struct {
	Caption string
	Headers []string
	Right   []bool
	Rows    [][]string
}

func newTable(caption string, headers ...string) Table {
	return Table{Caption: caption, Headers: headers, Right: make([]bool, len(headers))}
}

// rightFrom right-aligns every column from index i on
func (t Table) rightFrom(i int) Table {
	for ; i < len(t.Right); i++ {
		t.Right[i] = true
	}
	return t
}

// Project builds the document for a report
func Project(r *analysis.Report) *Document {
	p := projector{
		r: r,
		money: Money{
			Currency:     currencyOf(r),
			ExchangeRate: r.Assumptions.ExchangeRate,
		},
	}
	doc := &Document{
		Title: "Foody7 pricing model",
		Sections: []Section{
			p.breakEven(),
			p.revenue(),
			p.restaurantCost(),
			p.recommendations(),
			p.orderCaps(),
			p.summary(),
			p.effectiveRates(),
			p.overflow(),
			p.landingPage(),
			p.brandedApp(),
		},
	}

	var footer []string
	if v := r.Metadata.Version; v != "" {
		footer = append(footer, "config "+v)
	}
	if id := r.Metadata.RunID; id != "" {
		footer = append(footer, "run "+id)
	}
	if h := r.Metadata.InputHash; h != "" {
		footer = append(footer, "input "+h)
	}
	doc.Footer = strings.Join(footer, " · ")
	return doc
}

type projector struct {
	r     *analysis.Report
	money Money
}

func (p projector) commissionLabel() string {
	return Rate(p.r.Assumptions.CommissionRate)
}

func (p projector) competitorLabel() string {
	return Rate(p.r.Assumptions.CompetitorRate)
}

func (p projector) priceWithUSD(v decimal.Decimal) string {
	if usd := p.money.USD(v); usd != "" {
		return p.money.Amount(v) + " " + usd
	}
	return p.money.Amount(v)
}

func ordersPerMonth(n int64) string {
	return Orders(n) + " orders/mo"
}

func (p projector) breakEven() Section {
	sec := p.r.BreakEven
	headers := []string{"Tier", "Price/mo"}
	for _, v := range sec.OrderValues {
		headers = append(headers, p.money.Short(v))
	}
	t := newTable("", headers...).rightFrom(2)
	for _, row := range sec.Rows {
		be := []string{row.Tier.Name, p.money.Amount(row.Tier.MonthlyPrice) + " break-even"}
		ss := []string{"", Rate(sec.SavingsTarget) + " savings at"}
		for i := range sec.OrderValues {
			be = append(be, Orders(row.BreakEven[i])+" ord")
			ss = append(ss, Orders(row.SweetSpot[i])+" ord")
		}
		t.Rows = append(t.Rows, be, ss)
	}
	return Section{
		Title:    "Break-even: orders/month where a subscription beats " + p.commissionLabel() + " commission",
		Subtitle: "Columns are average order values",
		Tables:   []Table{t},
	}
}

func (p projector) revenue() Section {
	sec := p.r.Revenue
	headers := []string{"Orders/mo", "Commission (" + p.commissionLabel() + ")"}
	for _, t := range sec.Tiers {
		headers = append(headers, t.Name)
	}
	t := newTable("", headers...).rightFrom(0)
	for _, row := range sec.Rows {
		cells := []string{Orders(row.Orders), p.money.Amount(row.Commission)}
		for _, net := range row.Subscription {
			cells = append(cells, p.money.Amount(net))
		}
		t.Rows = append(t.Rows, cells)
	}
	return Section{
		Title:    "Platform monthly net revenue per restaurant",
		Subtitle: "Average order " + p.money.Amount(sec.OrderValue) + ", net of infrastructure cost",
		Tables:   []Table{t},
	}
}

func (p projector) restaurantCost() Section {
	sec := p.r.RestaurantCost
	headers := []string{"Orders/mo", "Competitor (" + p.competitorLabel() + ")", "Our " + p.commissionLabel()}
	for _, t := range sec.Tiers {
		headers = append(headers, t.Name)
	}
	t := newTable("", headers...).rightFrom(0)
	for _, row := range sec.Rows {
		cells := []string{Orders(row.Orders), p.money.Amount(row.Competitor), p.money.Amount(row.Commission)}
		for i, tier := range sec.Tiers {
			cell := p.money.Amount(tier.MonthlyPrice)
			if row.TierCheaper[i] {
				cell += " ✓"
			} else {
				cell += "  "
			}
			cells = append(cells, cell)
		}
		t.Rows = append(t.Rows, cells)
	}
	return Section{
		Title:    "What the restaurant pays per month",
		Subtitle: "Average order " + p.money.Amount(sec.OrderValue),
		Tables:   []Table{t},
		Notes:    []string{"✓ = subscription cheaper than " + p.commissionLabel() + " commission at this order volume"},
	}
}

func (p projector) recommendations() Section {
	sec := p.r.Recommendations
	tiers := newTable("", "Tier", "Price/mo", "Best for", "Breaks even at", "Saves vs "+p.commissionLabel())
	for _, row := range sec.Rows {
		label := row.SavingsLabel
		if label == "" {
			label = Rate(sec.SavingsTarget) + "+ savings"
		}
		tiers.Rows = append(tiers.Rows, []string{
			row.Tier.Name,
			p.priceWithUSD(row.Tier.MonthlyPrice),
			row.Audience,
			ordersPerMonth(row.BreakEven),
			label + " at " + Orders(row.SweetSpot) + "+ orders/mo",
		})
	}

	floor := newTable(fmt.Sprintf("Platform revenue floor at %s orders/mo", Orders(sec.FloorOrders)), "Plan", "Net revenue", "").rightFrom(1)
	floor.Right[2] = false
	floor.Rows = append(floor.Rows, []string{"Commission plan", p.money.Amount(sec.FloorCommission), ""})
	for _, f := range sec.Floor {
		status := "profitable"
		if f.Net.IsNegative() {
			status = "LOSS"
		}
		floor.Rows = append(floor.Rows, []string{f.Tier, p.money.Amount(f.Net), status})
	}

	var upgrade []string
	upgrade = append(upgrade, "Commission only")
	for _, row := range sec.Rows {
		upgrade = append(upgrade, fmt.Sprintf("%s at ~%d+ orders/mo", row.Tier.Name, row.BreakEven))
	}

	out := Section{
		Title:    "Tier design recommendation",
		Subtitle: "Commission first, subscription as the natural upgrade",
		Tables:   []Table{tiers, floor},
		Notes:    []string{"Upgrade journey: " + strings.Join(upgrade, " → ")},
	}
	for _, name := range sec.LossTiers {
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"%s loses money at %s orders/month; it needs an order cap or a higher price",
			name, Orders(sec.FloorOrders)))
	}
	return out
}

func (p projector) orderCaps() Section {
	sec := p.r.OrderCaps
	u := sec.Uncapped
	t := newTable("", "Tier", "Price", "Order cap", "Min margin at cap", "Break-even", "Recommended cap").rightFrom(1)
	for _, row := range sec.Rows {
		t.Rows = append(t.Rows, []string{
			row.Tier.Name,
			p.money.Amount(row.Tier.MonthlyPrice),
			ordersPerMonth(row.RawCap),
			p.money.Amount(row.MinMargin),
			ordersPerMonth(row.BreakEven),
			ordersPerMonth(row.RecommendedCap),
		})
	}
	return Section{
		Title: "Order caps that protect platform margin",
		Lead: []string{
			fmt.Sprintf("Without caps, %s at %s orders/month costs the platform %s in infrastructure against %s revenue: net %s/month.",
				u.Tier.Name, Orders(u.Orders), p.money.Amount(u.InfraCost), p.money.Amount(u.Tier.MonthlyPrice), p.money.Amount(u.Net)),
		},
		Tables: []Table{t},
		Notes: []string{
			"Order cap = floor(price / (avg order × " + Rate(p.r.Assumptions.InfraCostRate) + " infra))",
			"Recommended cap = floor(order cap × " + sec.SafetyFactor.String() + ")",
		},
	}
}

func (p projector) summary() Section {
	sec := p.r.Summary
	t := newTable("", "Tier", "Price/mo", "Order cap", "Best for")
	t.Right[1], t.Right[2] = true, true
	for _, row := range sec.Rows {
		t.Rows = append(t.Rows, []string{
			row.Tier.Name,
			p.money.Amount(row.Tier.MonthlyPrice),
			"~" + Orders(row.RecommendedCap) + " ord",
			fmt.Sprintf("%s–%s orders/month", Orders(row.BestFrom), Orders(row.BestTo)),
		})
	}
	return Section{
		Title: "Summary: recommended pricing structure",
		Lead: []string{
			fmt.Sprintf("Commission plan: %s of order value, no monthly fee. Infra cost %s, platform nets %s per order.",
				Rate(sec.CommissionRate), Rate(sec.InfraCostRate), Rate(sec.NetMarginRate)),
			fmt.Sprintf("Best for restaurants with <%s orders/month.", Orders(sec.CommissionBestBelow)),
		},
		Tables: []Table{t},
		Notes: []string{
			"Upgrade trigger: notify the restaurant when this month's accumulated commission exceeds the next tier price.",
		},
	}
}

func (p projector) effectiveRates() Section {
	sec := p.r.EffectiveRates
	headers := []string{"Plan"}
	for _, v := range sec.Volumes {
		headers = append(headers, Orders(v)+" ord")
	}
	t := newTable("", headers...).rightFrom(1)

	flat := func(label string, rate decimal.Decimal) []string {
		cells := []string{label}
		for range sec.Volumes {
			cells = append(cells, Percent(rate, 2)+"  ")
		}
		return cells
	}
	t.Rows = append(t.Rows,
		flat(p.commissionLabel()+" flat (no fee)", sec.CommissionRate),
		flat("Competitor", sec.CompetitorRate))
	for _, row := range sec.Rows {
		cells := []string{row.Tier.Name}
		for i, rate := range row.Rates {
			marker := "  "
			if row.BelowCommission[i] {
				marker = " ←"
			}
			cells = append(cells, Percent(rate, 2)+marker)
		}
		t.Rows = append(t.Rows, cells)
	}

	h := newTable("Headline numbers", "Profile", "Plan", "Effective", "vs competitor", "Saves")
	h.Right[2], h.Right[3], h.Right[4] = true, true, true
	for _, hl := range sec.Headlines {
		h.Rows = append(h.Rows, []string{
			fmt.Sprintf("%s (%s orders/mo)", hl.Label, Orders(hl.Orders)),
			hl.Tier,
			Percent(hl.Rate, 1),
			Rate(sec.CompetitorRate),
			hl.PointsSaved.Mul(hundred).StringFixed(1) + " pts",
		})
	}

	return Section{
		Title:    "Effective % per order on subscription",
		Subtitle: "Average order " + p.money.Amount(sec.OrderValue),
		Tables:   []Table{t, h},
		Notes:    []string{"← = subscription cheaper than " + p.commissionLabel() + " flat commission at this volume"},
	}
}

func (p projector) overflow() Section {
	sec := p.r.Overflow
	t := newTable("", "Tier", "Cap", "Overflow", "Manual (stay + "+p.commissionLabel()+")", "Auto-upgrade", "Difference", "Cheaper").rightFrom(1)
	t.Right[6] = false
	for _, c := range sec.Comparisons {
		t.Rows = append(t.Rows, []string{
			c.Tier.Name,
			ordersPerMonth(c.Cap),
			"+" + Orders(c.OverflowOrders),
			p.money.Amount(c.ManualCost),
			p.money.Amount(c.AutoCost) + " (" + c.Next.Name + ")",
			p.money.Amount(c.Difference),
			string(c.Cheaper),
		})
	}
	return Section{
		Title:    "Cap overflow: manual vs auto-upgrade",
		Subtitle: "Average order " + p.money.Amount(sec.OrderValue),
		Lead: []string{
			"Manual: stay on the tier and pay " + p.commissionLabel() + " commission on orders beyond the cap.",
			"Auto: switch to the next tier and pay its full monthly price.",
		},
		Tables: []Table{t},
		Notes: []string{
			"Orders are never blocked at the cap; unhandled overflow is billed at the commission rate.",
		},
	}
}

func (p projector) landingPage() Section {
	sec := p.r.LandingPage
	t := newTable("Pricing table", "Plan", "Price", "Effective %", "Best for")
	first := int64(0)
	if len(sec.Rows) > 0 {
		first = sec.Rows[0].BestFrom
	}
	t.Rows = append(t.Rows, []string{
		"Starter (" + p.commissionLabel() + ")",
		"No fee",
		p.commissionLabel() + " per order",
		fmt.Sprintf("<%s orders/mo", Orders(first)),
	})
	for _, row := range sec.Rows {
		t.Rows = append(t.Rows, []string{
			row.Tier.Name,
			p.money.Amount(row.Tier.MonthlyPrice) + "/mo",
			"from " + Percent(row.From, 2),
			fmt.Sprintf("%s–%s orders/mo", Orders(row.BestFrom), Orders(row.BestTo)),
		})
	}

	out := Section{
		Title: "Landing page numbers",
		Lead: []string{
			fmt.Sprintf("\"We charge %s. The competitor charges %s.\"", p.commissionLabel(), p.competitorLabel()),
			fmt.Sprintf("\"As low as %s effective commission.\" (%s at its recommended cap)", Percent(sec.LowestRate, 2), sec.LowestTier),
		},
		Tables: []Table{t},
		Notes: []string{
			"Effective % = subscription price ÷ (orders × avg order value), shown at each tier's recommended cap.",
		},
	}
	for _, name := range sec.Violations {
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"%s is not cheaper than %s commission at its recommended cap", name, p.commissionLabel()))
	}
	return out
}

func (p projector) brandedApp() Section {
	sec := p.r.BrandedApp
	t := newTable("", "Item", "Amount").rightFrom(1)
	t.Rows = [][]string{
		{"Competitor commission (" + p.competitorLabel() + ")", p.money.Amount(sec.CompetitorCost) + "/mo"},
		{sec.Tier.Name + " subscription", p.money.Amount(sec.Tier.MonthlyPrice) + "/mo"},
		{"Monthly savings", p.money.Amount(sec.MonthlySavings) + "/mo"},
		{"Annual savings", p.priceWithUSD(sec.AnnualSavings) + "/yr"},
	}
	return Section{
		Title: "Branded app: combined value pitch",
		Lead: []string{
			fmt.Sprintf("Profile: %s at %s orders/month, average order %s.",
				sec.Tier.Name, Orders(sec.Orders), p.money.Amount(sec.OrderValue)),
		},
		Tables: []Table{t},
	}
}

// currencyOf is the report currency, defaulting to KRW
func currencyOf(r *analysis.Report) types.Currency {
	if r.Metadata.Currency == "" {
		return types.CurrencyKRW
	}
	return r.Metadata.Currency
}
