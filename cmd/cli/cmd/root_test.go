package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foody7-pricing/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "foody7-pricing version "+Version+"\n", out)
}

func TestRootRunsFullReport(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "1. Break-even")
	assert.Contains(t, out, "10. Branded app")
}

func TestReportJSONCarriesRunMetadata(t *testing.T) {
	out, err := run(t, "report", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Metadata struct {
			RunID     string `json:"run_id"`
			InputHash string `json:"input_hash"`
			Currency  string `json:"currency"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Metadata.RunID, 36)
	assert.Len(t, decoded.Metadata.InputHash, 16)
	assert.Equal(t, "KRW", decoded.Metadata.Currency)

	again, err := run(t, "report", "--format", "json")
	require.NoError(t, err)
	var second struct {
		Metadata struct {
			RunID     string `json:"run_id"`
			InputHash string `json:"input_hash"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(again), &second))
	assert.Equal(t, decoded.Metadata.InputHash, second.Metadata.InputHash)
	assert.NotEqual(t, decoded.Metadata.RunID, second.Metadata.RunID)
}

func TestReportMarkdown(t *testing.T) {
	out, err := run(t, "report", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Foody7 pricing model")
	assert.Contains(t, out, "| F70 |")
}

func TestReportQuiet(t *testing.T) {
	out, err := run(t, "report", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ = subscription cheaper")

	out, err = run(t, "report", "--no-color", "-q")
	require.NoError(t, err)
	assert.NotContains(t, out, "✓ = subscription cheaper")
	assert.Contains(t, out, "10. Branded app")
}

func TestReportUnknownFormat(t *testing.T) {
	_, err := run(t, "report", "--format", "html")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}

func TestQuote(t *testing.T) {
	out, err := run(t, "quote", "--orders", "100", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Best plan: F70")
	assert.Contains(t, out, "On 7% commission you'd pay ₩175,000.")
	assert.Contains(t, out, "Save ₩42,000/month.")
	assert.Contains(t, out, "← best")

	_, err = run(t, "quote")
	assert.Error(t, err, "--orders is required")

	_, err = run(t, "quote", "--orders", "100", "--avg-order=-5")
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}

func TestQuoteJSON(t *testing.T) {
	out, err := run(t, "quote", "--orders", "100", "--format", "json")
	require.NoError(t, err)

	var q struct {
		Best struct {
			Plan string `json:"plan"`
			Cost string `json:"cost"`
		} `json:"best"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "F70", q.Best.Plan)
	assert.Equal(t, "133000", q.Best.Cost)
}

func TestAdvise(t *testing.T) {
	out, err := run(t, "advise", "--plan", "F70", "--orders", "80", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Cap reached: 16 orders billed at commission")
	assert.Contains(t, out, "Cost this month so far: ₩98,000")

	out, err = run(t, "advise", "--orders", "50", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Upgrade to F70 (₩70,000/mo)")

	_, err = run(t, "advise", "--plan", "F999", "--orders", "10")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration")

	_, err = run(t, "config", "init", path)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	out, err = run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"commission_rate": 0.07`)
}

func TestBadConfigAborts(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--config", filepath.Join(dir, "absent.json"), "version")
	assert.NoError(t, err, "a missing file falls back to defaults")

	path := filepath.Join(dir, "empty-volumes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"report": {"order_volumes": []}}`), 0644))
	_, err = run(t, "--config", path)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	path = filepath.Join(dir, "unknown-highlight.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model": {"tiers": [{"name": "Solo", "price": 90000}]}}`), 0644))
	_, err = run(t, "--config", path)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
	assert.Contains(t, err.Error(), "report.highlights")

	path = filepath.Join(dir, "zero-infra.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model": {"infra_cost_rate": 0}}`), 0644))
	_, err = run(t, "--config", path, "quote", "--orders", "100")
	assert.True(t, errors.IsType(err, errors.TypeValidation), "zero infra cost leaves caps undefined")

	path = filepath.Join(dir, "bad-rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model": {"commission_rate": 0.5}}`), 0644))
	_, err = run(t, "--config", path, "report")
	assert.True(t, errors.IsType(err, errors.TypeValidation), "commission above competitor needs allow_what_if")
}
