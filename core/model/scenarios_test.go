package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foody7-pricing/core/types"
	"foody7-pricing/internal/errors"
)

func TestCompareOverflow(t *testing.T) {
	m := newDefaultModel(t)
	avg := d("25000")

	tests := []struct {
		name     string
		tier     string
		overflow int64
		rawCap   int64
		manual   string
		auto     string
		diff     string
		cheaper  OverflowOption
	}{
		{name: "F70 small overflow", tier: "F70", overflow: 20, rawCap: 80, manual: "105000", auto: "170000", diff: "65000", cheaper: OverflowManual},
		{name: "F70 large overflow", tier: "F70", overflow: 60, rawCap: 80, manual: "175000", auto: "170000", diff: "5000", cheaper: OverflowAuto},
		{name: "F170 overflow", tier: "F170", overflow: 50, rawCap: 194, manual: "257500", auto: "350000", diff: "92500", cheaper: OverflowManual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := m.CompareOverflow(tt.tier, tt.overflow, avg)
			require.NoError(t, err)
			assert.Equal(t, tt.rawCap, c.Cap)
			assert.True(t, c.ManualCost.Equal(d(tt.manual)), "manual: %s", c.ManualCost)
			assert.True(t, c.AutoCost.Equal(d(tt.auto)), "auto: %s", c.AutoCost)
			assert.True(t, c.Difference.Equal(d(tt.diff)), "difference: %s", c.Difference)
			assert.Equal(t, tt.cheaper, c.Cheaper)
		})
	}

	_, err := m.CompareOverflow("F700", 20, avg)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestQuote(t *testing.T) {
	m := newDefaultModel(t)

	q, err := m.Quote(types.ScenarioInput{AvgOrderValue: d("25000"), MonthlyOrders: 100})
	require.NoError(t, err)

	assert.True(t, q.Commission.Cost.Equal(d("175000")), "commission: %s", q.Commission.Cost)
	assert.True(t, q.Competitor.Equal(d("675000")), "competitor: %s", q.Competitor)
	require.Len(t, q.Tiers, 4)

	assert.Equal(t, "F70", q.Tiers[0].Plan)
	assert.Equal(t, int64(64), q.Tiers[0].Cap)
	assert.Equal(t, int64(36), q.Tiers[0].OverflowOrders)
	assert.True(t, q.Tiers[0].Cost.Equal(d("133000")), "F70: %s", q.Tiers[0].Cost)

	assert.Equal(t, int64(155), q.Tiers[1].Cap)
	assert.Zero(t, q.Tiers[1].OverflowOrders)
	assert.True(t, q.Tiers[1].Cost.Equal(d("170000")))

	assert.Equal(t, "F70", q.Best.Plan)
	assert.True(t, q.SavingsVsCommission.Equal(d("42000")))
	assert.True(t, q.SavingsVsCompetitor.Equal(d("542000")))
}

func TestQuoteLowVolumeStaysOnCommission(t *testing.T) {
	m := newDefaultModel(t)

	q, err := m.Quote(types.ScenarioInput{AvgOrderValue: d("25000"), MonthlyOrders: 10})
	require.NoError(t, err)
	assert.Equal(t, PlanCommission, q.Best.Plan)
	assert.True(t, q.SavingsVsCommission.IsZero())

	_, err = m.Quote(types.ScenarioInput{AvgOrderValue: d("0"), MonthlyOrders: 10})
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}

func TestAdvise(t *testing.T) {
	m := newDefaultModel(t)
	avg := d("25000")

	tests := []struct {
		name         string
		plan         string
		orders       int64
		alertReached bool
		capReached   bool
		overflow     int64
		accrued      string
		upgradeTo    string
	}{
		{name: "commission below first tier", plan: "", orders: 30, accrued: "52500"},
		{name: "commission above first tier", plan: PlanCommission, orders: 50, accrued: "87500", upgradeTo: "F70"},
		{name: "F70 quiet", plan: "F70", orders: 20, accrued: "70000"},
		{name: "F70 alert", plan: "F70", orders: 52, alertReached: true, accrued: "70000"},
		{name: "F70 at cap", plan: "F70", orders: 64, alertReached: true, capReached: true, accrued: "70000"},
		{name: "F70 small overflow", plan: "F70", orders: 80, alertReached: true, capReached: true, overflow: 16, accrued: "98000"},
		{name: "F70 overflow past F170", plan: "F70", orders: 130, alertReached: true, capReached: true, overflow: 66, accrued: "185500", upgradeTo: "F170"},
		{name: "last tier never upgrades", plan: "F700", orders: 2000, alertReached: true, capReached: true, overflow: 1360, accrued: "3080000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := m.Advise(tt.plan, tt.orders, avg, DefaultAlertRatio)
			require.NoError(t, err)
			assert.Equal(t, tt.alertReached, a.AlertReached, "alert")
			assert.Equal(t, tt.capReached, a.CapReached, "cap")
			assert.Equal(t, tt.overflow, a.OverflowOrders)
			assert.True(t, a.AccruedCost.Equal(d(tt.accrued)), "accrued: %s", a.AccruedCost)
			assert.Equal(t, tt.upgradeTo != "", a.SuggestUpgrade)
			assert.Equal(t, tt.upgradeTo, a.UpgradeTo)
		})
	}
}

func TestAdviseRejectsBadInput(t *testing.T) {
	m := newDefaultModel(t)

	_, err := m.Advise("F999", 10, d("25000"), DefaultAlertRatio)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	_, err = m.Advise("F70", 10, d("25000"), d("0"))
	assert.True(t, errors.IsType(err, errors.TypeValidation))

	_, err = m.Advise("F70", -1, d("25000"), DefaultAlertRatio)
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}
