package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func rebuildCmd() *cobra.Command {
	var (
		userID int64
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "根据每日流水重新计算用户的周收入和月收入",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := domain.ParseDate(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			toDate, err := domain.ParseDate(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			app, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.RebuildAggregates(cmd.Context(), userID, fromDate, toDate, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range result.Weeks {
				fmt.Fprintf(out, "%s  %10s\n", w.Week, w.Amount.StringFixed(2))
			}
			for _, m := range result.Months {
				fmt.Fprintf(out, "%s  税前 %10s  税 %10s  税后 %10s\n", m.Month, m.Gross.StringFixed(2), m.Tax.StringFixed(2), m.Net.StringFixed(2))
			}
			fmt.Fprintf(out, "已重新计算 %d 周、%d 个月\n", len(result.Weeks), len(result.Months))

			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "用户 ID")
	cmd.Flags().StringVar(&from, "from", "", "开始日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "结束日期 YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
