package service

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
)

// 汇总数据总是从每日流水重新求和后整体覆盖，从不在原值上累加，因此重复执行是安全的

func refreshWeek(ctx context.Context, tx domain.Store, userID int64, week domain.Week, now time.Time) (*domain.WeeklyEarning, error) {
	total, err := tx.SumDailyEntries(ctx, userID, week.Start(), week.End())
	if err != nil {
		return nil, storeErr(err)
	}

	w := &domain.WeeklyEarning{
		UserID:    userID,
		Week:      week,
		Amount:    total.Round(2),
		UpdatedAt: now,
	}
	if err := tx.UpsertWeeklyEarning(ctx, w); err != nil {
		return nil, storeErr(err)
	}

	return w, nil
}

func refreshMonth(ctx context.Context, tx domain.Store, userID int64, month domain.Month, now time.Time) (*domain.MonthlySalary, error) {
	total, err := tx.SumDailyEntries(ctx, userID, month.Start(), month.End())
	if err != nil {
		return nil, storeErr(err)
	}

	gross := total.Round(2)
	tax, err := payroll.MonthlyTax(gross)
	if err != nil {
		return nil, err
	}

	m := &domain.MonthlySalary{
		UserID:    userID,
		Month:     month,
		Gross:     gross,
		Tax:       tax,
		Net:       gross.Sub(tax),
		UpdatedAt: now,
	}
	if err := tx.UpsertMonthlySalary(ctx, m); err != nil {
		return nil, storeErr(err)
	}

	return m, nil
}

// refreshPeriods 重新计算 date 所在的 ISO 周和自然月
func refreshPeriods(ctx context.Context, tx domain.Store, userID int64, date domain.Date, now time.Time) (*domain.WeeklyEarning, *domain.MonthlySalary, error) {
	weekly, err := refreshWeek(ctx, tx, userID, domain.WeekOf(date), now)
	if err != nil {
		return nil, nil, err
	}

	monthly, err := refreshMonth(ctx, tx, userID, domain.MonthOf(date), now)
	if err != nil {
		return nil, nil, err
	}

	return weekly, monthly, nil
}

// WeeklyEarnings 返回 on 所在 ISO 周的收入，每次调用都从流水重新计算
func (s *Service) WeeklyEarnings(ctx context.Context, userID int64, on domain.Date, now time.Time) (*domain.WeeklyEarning, error) {
	var weekly *domain.WeeklyEarning

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if _, err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		var err error
		weekly, err = refreshWeek(ctx, tx, userID, domain.WeekOf(on), now)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return weekly, nil
}

func (s *Service) MonthlySalary(ctx context.Context, userID int64, month domain.Month, now time.Time) (*domain.MonthlySalary, error) {
	var monthly *domain.MonthlySalary

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if _, err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		var err error
		monthly, err = refreshMonth(ctx, tx, userID, month, now)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return monthly, nil
}

type RebuildResult struct {
	Weeks  []*domain.WeeklyEarning
	Months []*domain.MonthlySalary
}

// RebuildAggregates 重新计算 [from, to] 覆盖到的所有周和月，用于修复历史汇总数据
func (s *Service) RebuildAggregates(ctx context.Context, userID int64, from, to domain.Date, now time.Time) (*RebuildResult, error) {
	if to.Before(from) {
		return nil, domain.InvalidField("to", "结束日期不能早于开始日期")
	}

	result := &RebuildResult{}
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		if _, err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		result.Weeks = result.Weeks[:0]
		for week := domain.WeekOf(from); !week.Start().After(to); week = domain.WeekOf(week.Start().AddDays(7)) {
			w, err := refreshWeek(ctx, tx, userID, week, now)
			if err != nil {
				return err
			}
			result.Weeks = append(result.Weeks, w)
		}

		result.Months = result.Months[:0]
		last := domain.MonthOf(to)
		for month := domain.MonthOf(from); !last.Before(month); month = month.Next() {
			m, err := refreshMonth(ctx, tx, userID, month, now)
			if err != nil {
				return err
			}
			result.Months = append(result.Months, m)
		}

		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return result, nil
}
