// Package types - Currency codes
package types

// Currency represents a currency code
type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display prefix for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyKRW:
		return "₩"
	case CurrencyUSD:
		return "$"
	default:
		return string(c) + " "
	}
}
