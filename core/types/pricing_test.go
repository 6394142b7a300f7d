package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"foody7-pricing/internal/errors"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRateConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		rates   RateConfig
		wantErr bool
		ordered bool
	}{
		{
			name:    "default rates",
			rates:   RateConfig{CommissionRate: d("0.07"), InfraCostRate: d("0.035"), CompetitorRate: d("0.27")},
			ordered: true,
		},
		{
			name:    "zero infra is allowed",
			rates:   RateConfig{CommissionRate: d("0.07"), InfraCostRate: d("0"), CompetitorRate: d("0.27")},
			ordered: true,
		},
		{
			name:    "unordered but in range",
			rates:   RateConfig{CommissionRate: d("0.30"), InfraCostRate: d("0.035"), CompetitorRate: d("0.27")},
			ordered: false,
		},
		{
			name:    "rate of one is rejected",
			rates:   RateConfig{CommissionRate: d("0.07"), InfraCostRate: d("0.035"), CompetitorRate: d("1")},
			wantErr: true,
		},
		{
			name:    "negative rate is rejected",
			rates:   RateConfig{CommissionRate: d("0.07"), InfraCostRate: d("-0.01"), CompetitorRate: d("0.27")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rates.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsType(err, errors.TypeValidation), "expected validation error, got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.ordered, tt.rates.Ordered())
		})
	}
}

func TestNetMarginRate(t *testing.T) {
	r := RateConfig{CommissionRate: d("0.07"), InfraCostRate: d("0.035"), CompetitorRate: d("0.27")}
	assert.True(t, r.NetMarginRate().Equal(d("0.035")))
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []Tier
		wantErr bool
	}{
		{
			name: "ascending tiers",
			tiers: []Tier{
				{Name: "F70", MonthlyPrice: d("70000")},
				{Name: "F170", MonthlyPrice: d("170000")},
			},
		},
		{name: "empty list", tiers: nil, wantErr: true},
		{
			name:    "missing name",
			tiers:   []Tier{{MonthlyPrice: d("70000")}},
			wantErr: true,
		},
		{
			name:    "zero price",
			tiers:   []Tier{{Name: "F0", MonthlyPrice: d("0")}},
			wantErr: true,
		},
		{
			name: "duplicate name",
			tiers: []Tier{
				{Name: "F70", MonthlyPrice: d("70000")},
				{Name: "F70", MonthlyPrice: d("90000")},
			},
			wantErr: true,
		},
		{
			name: "descending prices",
			tiers: []Tier{
				{Name: "F170", MonthlyPrice: d("170000")},
				{Name: "F70", MonthlyPrice: d("70000")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			if tt.wantErr {
				assert.True(t, errors.IsType(err, errors.TypeValidation), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScenarioInputValidate(t *testing.T) {
	assert.NoError(t, ScenarioInput{AvgOrderValue: d("25000"), MonthlyOrders: 0}.Validate())
	assert.Error(t, ScenarioInput{AvgOrderValue: d("0"), MonthlyOrders: 10}.Validate())
	assert.Error(t, ScenarioInput{AvgOrderValue: d("25000"), MonthlyOrders: -1}.Validate())
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₩", CurrencyKRW.Symbol())
	assert.Equal(t, "$", CurrencyUSD.Symbol())
	assert.Equal(t, "EUR ", Currency("EUR").Symbol())
}
