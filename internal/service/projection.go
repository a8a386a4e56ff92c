package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Project 根据月汇总和账单总额计算扣除账单后的可支配收入。
// 账单不区分月份，每个月都会扣除用户的全部账单。
func Project(monthly *domain.MonthlySalary, totalBills decimal.Decimal, now time.Time) *domain.SalaryAfterBills {
	netAfterBills := monthly.Net.Sub(totalBills).Round(0)

	percentage := decimal.Zero
	if !monthly.Gross.IsZero() {
		percentage = netAfterBills.Div(monthly.Gross).Mul(hundred).Round(2)
	}

	return &domain.SalaryAfterBills{
		UserID:        monthly.UserID,
		Month:         monthly.Month,
		Gross:         monthly.Gross,
		Tax:           monthly.Tax,
		Net:           monthly.Net,
		TotalBills:    totalBills,
		NetAfterBills: netAfterBills,
		Percentage:    percentage,
		UpdatedAt:     now,
	}
}

// SalaryAfterBills 刷新 month 的月汇总后计算并保存扣除账单后的收入
func (s *Service) SalaryAfterBills(ctx context.Context, userID int64, month domain.Month, now time.Time) (*domain.SalaryAfterBills, error) {
	var projection *domain.SalaryAfterBills

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if _, err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		monthly, err := refreshMonth(ctx, tx, userID, month, now)
		if err != nil {
			return err
		}

		bills, err := tx.SumBills(ctx, userID)
		if err != nil {
			return storeErr(err)
		}

		projection = Project(monthly, bills, now)
		return storeErr(tx.UpsertSalaryAfterBills(ctx, projection))
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return projection, nil
}
