package output

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"foody7-pricing/core/types"
)

var hundred = decimal.NewFromInt(100)

// Money formats whole-unit amounts in the report currency, with an
// optional USD hint derived from a fixed exchange rate.
type Money struct {
	Currency     types.Currency
	ExchangeRate decimal.Decimal
}

// Amount renders "₩70,000"; negative amounts render as "₩-17,500".
func (m Money) Amount(v decimal.Decimal) string {
	return m.Currency.Symbol() + humanize.Comma(v.Round(0).IntPart())
}

// USD renders "(~$52)", or "" when the report is already in dollars or
// no exchange rate is set.
func (m Money) USD(v decimal.Decimal) string {
	if m.Currency == types.CurrencyUSD || !m.ExchangeRate.IsPositive() {
		return ""
	}
	return "(~$" + humanize.Comma(v.Div(m.ExchangeRate).Round(0).IntPart()) + ")"
}

// Short renders an order value in thousands: "₩25k".
func (m Money) Short(v decimal.Decimal) string {
	k := v.Div(decimal.NewFromInt(1000))
	return m.Currency.Symbol() + k.Round(1).String() + "k"
}

// Percent renders a fraction with fixed decimals: 0.043125 -> "4.31%".
func Percent(frac decimal.Decimal, places int32) string {
	return frac.Mul(hundred).StringFixed(places) + "%"
}

// Rate renders a configured rate without trailing zeros: 0.035 -> "3.5%".
func Rate(frac decimal.Decimal) string {
	return frac.Mul(hundred).String() + "%"
}

// Orders renders an order count with thousands separators
func Orders(n int64) string {
	return humanize.Comma(n)
}
