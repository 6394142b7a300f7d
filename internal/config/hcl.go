package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclSchema is the accepted shape of an .hcl config file:
//
//	commission_rate = 0.07
//	avg_order_values = [12000, 25000]
//	tier "F70" {
//	  price    = 70000
//	  audience = "New/small restaurants"
//	}
//	highlight "F70" { orders = 65 }
//	pitch "F170" { orders = 150 }
var hclSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "version"},
		{Name: "commission_rate"},
		{Name: "infra_cost_rate"},
		{Name: "competitor_rate"},
		{Name: "cap_safety_factor"},
		{Name: "allow_what_if"},
		{Name: "currency"},
		{Name: "avg_order_values"},
		{Name: "order_volumes"},
		{Name: "effective_volumes"},
		{Name: "canonical_order_value"},
		{Name: "general_savings_target"},
		{Name: "recommendation_savings_target"},
		{Name: "revenue_floor_orders"},
		{Name: "uncapped_loss_orders"},
		{Name: "overflow_orders"},
		{Name: "alert_ratio"},
		{Name: "exchange_rate"},
		{Name: "output_format"},
		{Name: "no_color"},
		{Name: "log_level"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "tier", LabelNames: []string{"name"}},
		{Type: "highlight", LabelNames: []string{"tier"}},
		{Type: "pitch", LabelNames: []string{"tier"}},
	},
}

var tierSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "price", Required: true},
		{Name: "audience"},
		{Name: "savings_label"},
	},
}

var highlightSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "orders", Required: true},
		{Name: "label"},
	},
}

// decodeHCL applies an HCL document on top of cfg. Unknown attributes and
// blocks are errors.
func decodeHCL(filename string, src []byte, cfg *Config) error {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return diags
	}
	content, diags := file.Body.Content(hclSchema)
	if diags.HasErrors() {
		return diags
	}

	setters := map[string]func(cty.Value) error{
		"version":                       setString(&cfg.Version),
		"commission_rate":               setFloat(&cfg.Model.CommissionRate),
		"infra_cost_rate":               setFloat(&cfg.Model.InfraCostRate),
		"competitor_rate":               setFloat(&cfg.Model.CompetitorRate),
		"cap_safety_factor":             setFloat(&cfg.Model.CapSafetyFactor),
		"allow_what_if":                 setBool(&cfg.Model.AllowWhatIf),
		"currency":                      setString(&cfg.Report.Currency),
		"avg_order_values":              setFloatList(&cfg.Report.AvgOrderValues),
		"order_volumes":                 setIntList(&cfg.Report.OrderVolumes),
		"effective_volumes":             setIntList(&cfg.Report.EffectiveVolumes),
		"canonical_order_value":         setFloat(&cfg.Report.CanonicalOrderValue),
		"general_savings_target":        setFloat(&cfg.Report.GeneralSavingsTarget),
		"recommendation_savings_target": setFloat(&cfg.Report.RecommendationSavingsTarget),
		"revenue_floor_orders":          setInt(&cfg.Report.RevenueFloorOrders),
		"uncapped_loss_orders":          setInt(&cfg.Report.UncappedLossOrders),
		"overflow_orders":               setIntList(&cfg.Report.OverflowOrders),
		"alert_ratio":                   setFloat(&cfg.Report.AlertRatio),
		"exchange_rate":                 setFloat(&cfg.Report.ExchangeRate),
		"output_format":                 setString(&cfg.Output.DefaultFormat),
		"no_color":                      setBool(&cfg.Output.NoColor),
		"log_level":                     setString(&cfg.Logging.Level),
	}

	for name, attr := range content.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		if err := setters[name](val); err != nil {
			return fmt.Errorf("%s (line %d): %w", name, attr.Range.Start.Line, err)
		}
	}

	var (
		tiers      []TierConfig
		highlights []HighlightConfig
	)
	for _, block := range content.Blocks {
		switch block.Type {
		case "tier":
			t, err := decodeTierBlock(block)
			if err != nil {
				return err
			}
			tiers = append(tiers, t)
		case "highlight", "pitch":
			h, err := decodeHighlightBlock(block)
			if err != nil {
				return err
			}
			if block.Type == "pitch" {
				cfg.Report.Pitch = h
			} else {
				highlights = append(highlights, h)
			}
		}
	}
	if len(tiers) > 0 {
		cfg.Model.Tiers = tiers
	}
	if len(highlights) > 0 {
		cfg.Report.Highlights = highlights
	}
	return nil
}

func decodeTierBlock(block *hcl.Block) (TierConfig, error) {
	t := TierConfig{Name: block.Labels[0]}
	content, diags := block.Body.Content(tierSchema)
	if diags.HasErrors() {
		return t, diags
	}
	err := applyBlockAttributes(block, content, map[string]func(cty.Value) error{
		"price":         setFloat(&t.Price),
		"audience":      setString(&t.Audience),
		"savings_label": setString(&t.SavingsLabel),
	})
	return t, err
}

func decodeHighlightBlock(block *hcl.Block) (HighlightConfig, error) {
	h := HighlightConfig{Tier: block.Labels[0]}
	content, diags := block.Body.Content(highlightSchema)
	if diags.HasErrors() {
		return h, diags
	}
	err := applyBlockAttributes(block, content, map[string]func(cty.Value) error{
		"orders": setInt(&h.Orders),
		"label":  setString(&h.Label),
	})
	return h, err
}

func applyBlockAttributes(block *hcl.Block, content *hcl.BodyContent, setters map[string]func(cty.Value) error) error {
	for name, attr := range content.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		if err := setters[name](val); err != nil {
			return fmt.Errorf("%s %q: %s: %w", block.Type, block.Labels[0], name, err)
		}
	}
	return nil
}

// Values are checked for null, unknown and type before conversion so a
// bad document fails with a message instead of a cty panic.

func known(val cty.Value, want cty.Type) error {
	if val.IsNull() {
		return fmt.Errorf("value is null")
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("value is unknown")
	}
	if !val.Type().Equals(want) {
		return fmt.Errorf("expected %s, got %s", want.FriendlyName(), val.Type().FriendlyName())
	}
	return nil
}

func ctyFloat(val cty.Value) (float64, error) {
	if err := known(val, cty.Number); err != nil {
		return 0, err
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func ctyInt(val cty.Value) (int64, error) {
	if err := known(val, cty.Number); err != nil {
		return 0, err
	}
	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return 0, fmt.Errorf("expected a whole number, got %s", bf.Text('f', -1))
	}
	n, _ := bf.Int64()
	return n, nil
}

func ctyList(val cty.Value) ([]cty.Value, error) {
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("list is null or unknown")
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("expected a list, got %s", ty.FriendlyName())
	}
	return val.AsValueSlice(), nil
}

func setFloat(dst *float64) func(cty.Value) error {
	return func(val cty.Value) error {
		f, err := ctyFloat(val)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

func setInt(dst *int64) func(cty.Value) error {
	return func(val cty.Value) error {
		n, err := ctyInt(val)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setString(dst *string) func(cty.Value) error {
	return func(val cty.Value) error {
		if err := known(val, cty.String); err != nil {
			return err
		}
		*dst = val.AsString()
		return nil
	}
}

func setBool(dst *bool) func(cty.Value) error {
	return func(val cty.Value) error {
		if err := known(val, cty.Bool); err != nil {
			return err
		}
		*dst = val.True()
		return nil
	}
}

func setFloatList(dst *[]float64) func(cty.Value) error {
	return func(val cty.Value) error {
		items, err := ctyList(val)
		if err != nil {
			return err
		}
		out := make([]float64, 0, len(items))
		for i, item := range items {
			f, err := ctyFloat(item)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, f)
		}
		*dst = out
		return nil
	}
}

func setIntList(dst *[]int64) func(cty.Value) error {
	return func(val cty.Value) error {
		items, err := ctyList(val)
		if err != nil {
			return err
		}
		out := make([]int64, 0, len(items))
		for i, item := range items {
			n, err := ctyInt(item)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, n)
		}
		*dst = out
		return nil
	}
}
