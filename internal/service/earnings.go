package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
)

// ComputeDailyPay 只做计算，不读写任何数据
func (s *Service) ComputeDailyPay(rate decimal.NullDecimal, start, end domain.ClockTime, overtime bool) (*payroll.ShiftPay, error) {
	if !rate.Valid {
		return nil, domain.InvalidField("rate", "时薪不能为空")
	}
	return payroll.CalculateShiftPay(start, end, rate.Decimal, overtime)
}

type DailySalaryInput struct {
	UserID    int64
	Date      domain.Date
	StartTime domain.ClockTime
	EndTime   domain.ClockTime
	// Rate 为空时使用用户当天的有效时薪
	Rate decimal.NullDecimal
}

type DailySalaryResult struct {
	Entry   *domain.DailyEntry    `json:"entry"`
	Pay     *payroll.ShiftPay     `json:"pay"`
	Weekly  *domain.WeeklyEarning `json:"weekly"`
	Monthly *domain.MonthlySalary `json:"monthly"`
}

// RecordDailySalary 直接写入一条不关联班次的流水，并刷新对应的周和月汇总
func (s *Service) RecordDailySalary(ctx context.Context, in DailySalaryInput, now time.Time) (*DailySalaryResult, error) {
	if in.Date.IsZero() {
		return nil, domain.InvalidField("date", "日期不能为空")
	}
	if _, err := payroll.RawHours(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	var result *DailySalaryResult
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		user, err := lockUser(ctx, tx, in.UserID)
		if err != nil {
			return err
		}

		rate := in.Rate.Decimal
		if !in.Rate.Valid {
			rate, _, err = user.EffectiveHourlyRate(in.Date, s.rates)
			if err != nil {
				return err
			}
		}

		pay, err := payroll.CalculateShiftPay(in.StartTime, in.EndTime, rate, false)
		if err != nil {
			return err
		}

		entry := &domain.DailyEntry{
			UserID:      user.ID,
			Date:        in.Date,
			HoursWorked: pay.PaidHours.Round(2),
			Amount:      pay.Gross,
			CreatedAt:   now,
		}
		if err := tx.InsertDailyEntry(ctx, entry); err != nil {
			return storeErr(err)
		}

		weekly, monthly, err := refreshPeriods(ctx, tx, user.ID, in.Date, now)
		if err != nil {
			return err
		}

		result = &DailySalaryResult{Entry: entry, Pay: pay, Weekly: weekly, Monthly: monthly}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return result, nil
}

type HourlyRate struct {
	Rate   decimal.Decimal   `json:"rate"`
	Source domain.RateSource `json:"source"`
}

// HourlyRate 返回用户在 on 这一天的有效时薪
func (s *Service) HourlyRate(ctx context.Context, userID int64, on domain.Date) (*HourlyRate, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("用户", userID)
		}
		return nil, storeErr(err)
	}

	rate, source, err := user.EffectiveHourlyRate(on, s.rates)
	if err != nil {
		return nil, err
	}

	return &HourlyRate{Rate: rate, Source: source}, nil
}

func (s *Service) UpdateHourlyRate(ctx context.Context, userID int64, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return domain.InvalidField("hourlyRate", "时薪不能为负数")
	}

	err := s.store.UpdateUserHourlyRate(ctx, userID, rate.Round(2))
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("用户", userID)
	}
	return storeErr(err)
}
