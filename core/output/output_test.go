package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foody7-pricing/core/analysis"
	"foody7-pricing/core/model"
	"foody7-pricing/core/types"
	"foody7-pricing/internal/config"
	"foody7-pricing/internal/errors"
)

func defaultReport(t *testing.T) *analysis.Report {
	t.Helper()
	cfg := config.Default()
	m, err := model.New(cfg.Rates(), cfg.Tiers())
	require.NoError(t, err)
	p := analysis.ParametersFromConfig(cfg)
	p.Metadata.RunID = "run-1"
	p.Metadata.InputHash = "abc123"
	r, err := analysis.Build(m, p)
	require.NoError(t, err)
	return r
}

func TestMoney(t *testing.T) {
	krw := Money{Currency: types.CurrencyKRW, ExchangeRate: decimal.NewFromInt(1350)}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"amount", krw.Amount(decimal.NewFromInt(70000)), "₩70,000"},
		{"negative amount", krw.Amount(decimal.NewFromInt(-17500)), "₩-17,500"},
		{"rounded amount", krw.Amount(decimal.RequireFromString("87499.6")), "₩87,500"},
		{"usd hint", krw.USD(decimal.NewFromInt(70000)), "(~$52)"},
		{"short", krw.Short(decimal.NewFromInt(25000)), "₩25k"},
		{"percent", Percent(decimal.RequireFromString("0.043125"), 2), "4.31%"},
		{"rate", Rate(decimal.RequireFromString("0.035")), "3.5%"},
		{"whole rate", Rate(decimal.RequireFromString("0.07")), "7%"},
		{"orders", Orders(12500), "12,500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	usd := Money{Currency: types.CurrencyUSD, ExchangeRate: decimal.NewFromInt(1350)}
	assert.Empty(t, usd.USD(decimal.NewFromInt(100)))
	assert.Equal(t, "$1,200", usd.Amount(decimal.NewFromInt(1200)))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(Options{})
	assert.Equal(t, []string{"cli", "json", "markdown"}, r.Formats())

	f, err := r.GetFormatter(FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f.Format())

	_, err = r.GetFormatter("html")
	assert.True(t, errors.IsType(err, errors.TypeValidation))

	err = r.Register(&JSONFormatter{})
	assert.Error(t, err)
}

func TestProjectionSections(t *testing.T) {
	doc := Project(defaultReport(t))
	require.Len(t, doc.Sections, 10)
	assert.Equal(t, "config 1.0 · run run-1 · input abc123", doc.Footer)

	caps := doc.Sections[4].Tables[0]
	assert.Equal(t, []string{"F70", "₩70,000", "80 orders/mo", "₩0", "40 orders/mo", "64 orders/mo"}, caps.Rows[0])

	landing := doc.Sections[8]
	assert.Equal(t, []string{"F70", "₩70,000/mo", "from 4.38%", "40–64 orders/mo"}, landing.Tables[0].Rows[1])
	assert.Contains(t, landing.Lead[1], "As low as 4.38%")
	assert.Empty(t, landing.Warnings)

	rec := doc.Sections[3]
	assert.Equal(t, []string{"F70", "₩-17,500", "LOSS"}, rec.Tables[1].Rows[1])
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "F70 loses money at 100 orders/month")
}

func TestCLIRender(t *testing.T) {
	var buf bytes.Buffer
	f := &CLIFormatter{NoColor: true}
	require.NoError(t, f.Render(&buf, defaultReport(t)))

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "━━━ 1. Break-even")
	assert.Contains(t, out, "━━━ 10. Branded app")
	assert.Contains(t, out, "₩70,000 break-even")
	assert.Contains(t, out, "⚠ F70 loses money")
	assert.Contains(t, out, "₩10,110,000 (~$7,489)/yr")

	first := strings.Index(out, "1. Break-even")
	last := strings.Index(out, "10. Branded app")
	assert.Less(t, first, last)
}

func TestCLIRenderQuiet(t *testing.T) {
	var buf bytes.Buffer
	f := &CLIFormatter{NoColor: true, Quiet: true}
	require.NoError(t, f.Render(&buf, defaultReport(t)))

	out := buf.String()
	assert.NotContains(t, out, "✓ = subscription cheaper")
	assert.NotContains(t, out, "Columns are average order values")
	assert.Contains(t, out, "━━━ 3. What the restaurant pays per month")
	assert.Contains(t, out, "⚠ F70 loses money", "warnings survive quiet mode")
}

func TestMarkdownRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Render(&buf, defaultReport(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Foody7 pricing model\n"))
	assert.Contains(t, out, "## 1. Break-even")
	assert.Contains(t, out, "| Tier | Price/mo | ₩12k | ₩18k | ₩25k | ₩30k | ₩38k | ₩45k |")
	assert.Contains(t, out, "| --- | --- | ---: |")
	assert.Contains(t, out, "| F70 | ₩70,000 break-even | 84 ord |")
	assert.Contains(t, out, "> ⚠ F70 loses money")
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{Indent: "  "}).Render(&buf, defaultReport(t)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	meta := decoded["metadata"].(map[string]interface{})
	assert.Equal(t, "KRW", meta["currency"])
	assert.Equal(t, "run-1", meta["run_id"])

	assumptions := decoded["assumptions"].(map[string]interface{})
	assert.Equal(t, "0.07", assumptions["commission_rate"])

	for _, key := range []string{"break_even", "revenue", "restaurant_cost", "recommendations", "order_caps",
		"summary", "effective_rates", "overflow", "landing_page", "branded_app"} {
		assert.Contains(t, decoded, key)
	}
}
