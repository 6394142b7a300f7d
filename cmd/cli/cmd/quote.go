// Package cmd - quote and advise commands
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"foody7-pricing/core/model"
	"foody7-pricing/core/output"
	"foody7-pricing/core/types"
	"foody7-pricing/core/ui"
	"foody7-pricing/internal/errors"
)

type quoteOptions struct {
	orders   int64
	avgOrder float64
	format   string
	noColor  bool
}

func (a *app) newQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compare what a restaurant pays on every plan",
		Long: `Savings calculator: given monthly orders and an average order value, price
the scenario on the commission plan, on each tier (overflow above the
recommended cap billed at commission) and at the competitor's rate.

Examples:
  foody7-pricing quote --orders 100
  foody7-pricing quote --orders 250 --avg-order 18000 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuote(cmd, opts)
		},
	}
	cmd.Flags().Int64VarP(&opts.orders, "orders", "n", 0, "monthly orders [REQUIRED]")
	cmd.Flags().Float64Var(&opts.avgOrder, "avg-order", 0, "average order value (default: canonical order value)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "cli", "output format (cli, json)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	_ = cmd.MarkFlagRequired("orders")
	return cmd
}

func (a *app) runQuote(cmd *cobra.Command, opts *quoteOptions) error {
	m, err := a.buildModel()
	if err != nil {
		return err
	}
	q, err := m.Quote(types.ScenarioInput{
		AvgOrderValue: a.avgOrderOrDefault(opts.avgOrder),
		MonthlyOrders: opts.orders,
	})
	if err != nil {
		return err
	}

	switch opts.format {
	case string(output.FormatJSON):
		return writeJSON(cmd.OutOrStdout(), q)
	case string(output.FormatCLI), "":
	default:
		return errors.Validation("format", "quote supports cli and json, got "+opts.format)
	}

	money := a.money()
	w := ui.NewWriter(cmd.OutOrStdout(), opts.noColor || a.cfg.Output.NoColor)
	commission := output.Rate(m.Rates().CommissionRate)

	lines := []string{
		fmt.Sprintf("%s orders/mo at %s average order", output.Orders(q.Scenario.MonthlyOrders), money.Amount(q.Scenario.AvgOrderValue)),
		fmt.Sprintf("On %s commission you'd pay %s.", commission, money.Amount(q.Commission.Cost)),
	}
	if q.Best.Plan != model.PlanCommission {
		lines = append(lines, fmt.Sprintf("On %s you'd pay %s. Save %s/month.",
			q.Best.Plan, money.Amount(q.Best.Cost), money.Amount(q.SavingsVsCommission)))
	}
	lines = append(lines, fmt.Sprintf("On the competitor you'd pay %s. Switch and save %s/month.",
		money.Amount(q.Competitor), money.Amount(q.SavingsVsCompetitor)))
	w.Box("Best plan: "+q.Best.Plan, lines)
	w.Line("")

	tbl := w.NewTable("Plan", "Cap", "Overflow", "Monthly cost", "")
	tbl.SetAlign(1, ui.AlignRight).SetAlign(2, ui.AlignRight).SetAlign(3, ui.AlignRight)
	tbl.AddRow(commission+" commission", "", "", money.Amount(q.Commission.Cost), marker(q.Best.Plan == model.PlanCommission))
	for _, t := range q.Tiers {
		tbl.AddRow(t.Plan, output.Orders(t.Cap), output.Orders(t.OverflowOrders), money.Amount(t.Cost), marker(q.Best.Plan == t.Plan))
	}
	tbl.Render()
	return w.Err()
}

type adviseOptions struct {
	plan     string
	orders   int64
	avgOrder float64
	format   string
	noColor  bool
}

func (a *app) newAdviseCmd() *cobra.Command {
	opts := &adviseOptions{}
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Check the cap alert and upgrade trigger mid-month",
		Long: `Evaluate a restaurant's month so far: whether the smart alert and the
recommended cap are reached, how many orders overflowed, what the month has
cost, and whether the next plan would be cheaper.

Examples:
  foody7-pricing advise --orders 45
  foody7-pricing advise --plan F70 --orders 70`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdvise(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.plan, "plan", "p", model.PlanCommission, "current plan (commission or a tier name)")
	cmd.Flags().Int64VarP(&opts.orders, "orders", "n", 0, "orders so far this month [REQUIRED]")
	cmd.Flags().Float64Var(&opts.avgOrder, "avg-order", 0, "average order value (default: canonical order value)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "cli", "output format (cli, json)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	_ = cmd.MarkFlagRequired("orders")
	return cmd
}

func (a *app) runAdvise(cmd *cobra.Command, opts *adviseOptions) error {
	m, err := a.buildModel()
	if err != nil {
		return err
	}
	advice, err := m.Advise(opts.plan, opts.orders, a.avgOrderOrDefault(opts.avgOrder),
		decimal.NewFromFloat(a.cfg.Report.AlertRatio))
	if err != nil {
		return err
	}

	switch opts.format {
	case string(output.FormatJSON):
		return writeJSON(cmd.OutOrStdout(), advice)
	case string(output.FormatCLI), "":
	default:
		return errors.Validation("format", "advise supports cli and json, got "+opts.format)
	}

	money := a.money()
	w := ui.NewWriter(cmd.OutOrStdout(), opts.noColor || a.cfg.Output.NoColor)
	w.SubHeader(fmt.Sprintf("%s plan, %s orders so far", advice.Plan, output.Orders(advice.OrdersSoFar)))
	if advice.Plan != model.PlanCommission {
		w.Info("Recommended cap %s orders, alert at %s", output.Orders(advice.Cap), output.Orders(advice.AlertAt))
		switch {
		case advice.OverflowOrders > 0:
			w.Warning("Cap reached: %s orders billed at commission", output.Orders(advice.OverflowOrders))
		case advice.CapReached:
			w.Warning("Cap reached")
		case advice.AlertReached:
			w.Warning("Approaching cap: %s orders left", output.Orders(advice.Cap-advice.OrdersSoFar))
		}
	}
	w.Info("Cost this month so far: %s", money.Amount(advice.AccruedCost))
	if advice.SuggestUpgrade {
		w.Success("Upgrade to %s (%s/mo) to pay less this month", advice.UpgradeTo, money.Amount(advice.UpgradePrice))
	} else {
		w.Success("Current plan is still the cheapest option")
	}
	return w.Err()
}

func (a *app) money() output.Money {
	return output.Money{
		Currency:     types.Currency(a.cfg.Report.Currency),
		ExchangeRate: decimal.NewFromFloat(a.cfg.Report.ExchangeRate),
	}
}

func marker(best bool) string {
	if best {
		return "← best"
	}
	return ""
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
