package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
)

func taxCmd() *cobra.Command {
	var gross string

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "打印月收入在各税级的税额",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := decimal.NewFromString(gross)
			if err != nil {
				return fmt.Errorf("无效的月收入 %q: %w", gross, err)
			}

			breakdown, err := payroll.MonthlyBreakdown(g)
			if err != nil {
				return err
			}
			total, err := payroll.MonthlyTax(g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "月收入: %s\n\n", g.StringFixed(2))
			for _, bt := range breakdown {
				upper := "以上"
				if bt.To.Valid {
					upper = bt.To.Decimal.StringFixed(2)
				}
				fmt.Fprintf(out, "%10s - %-10s %5s%%  应税 %10s  税额 %10s\n",
					bt.From.StringFixed(2), upper, bt.Rate.Shift(2).String(),
					bt.Taxable.StringFixed(2), bt.Tax.StringFixed(2))
			}
			fmt.Fprintf(out, "\n合计税额: %s\n税后收入: %s\n", total.StringFixed(2), g.Sub(total).StringFixed(2))

			return nil
		},
	}

	cmd.Flags().StringVar(&gross, "gross", "", "税前月收入，例如 2500.00")
	_ = cmd.MarkFlagRequired("gross")

	return cmd
}
