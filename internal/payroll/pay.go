package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

var (
	OvertimeMultiplier = decimal.RequireFromString("1.5")

	longShiftHours  = decimal.NewFromInt(8)
	shortShiftHours = decimal.NewFromInt(6)
	longShiftBreak  = decimal.RequireFromString("0.5")
	shortShiftBreak = decimal.RequireFromString("0.25")

	minutesPerHour = decimal.NewFromInt(60)
)

type ShiftPay struct {
	RawHours   decimal.Decimal `json:"rawHours"`
	BreakHours decimal.Decimal `json:"breakHours"`
	PaidHours  decimal.Decimal `json:"paidHours"`
	Rate       decimal.Decimal `json:"rate"`
	Overtime   bool            `json:"overtime"`
	Gross      decimal.Decimal `json:"gross"`
}

// RawHours 返回同一天内 start 到 end 之间的小时数
func RawHours(start, end domain.ClockTime) (decimal.Decimal, error) {
	if start.IsZero() {
		return decimal.Zero, domain.InvalidField("startTime", "开始时间不能为空")
	}
	if end.IsZero() {
		return decimal.Zero, domain.InvalidField("endTime", "结束时间不能为空")
	}
	if end.Minutes() < start.Minutes() {
		return decimal.Zero, domain.ErrInvalidTimeRange
	}
	minutes := decimal.NewFromInt(int64(end.Minutes() - start.Minutes()))
	return minutes.Div(minutesPerHour), nil
}

// BreakDeduction 返回按班次时长扣除的无薪休息时间：满 8 小时扣半小时，满 6 小时扣一刻钟
func BreakDeduction(rawHours decimal.Decimal) decimal.Decimal {
	switch {
	case rawHours.GreaterThanOrEqual(longShiftHours):
		return longShiftBreak
	case rawHours.GreaterThanOrEqual(shortShiftHours):
		return shortShiftBreak
	default:
		return decimal.Zero
	}
}

func CalculateShiftPay(start, end domain.ClockTime, rate decimal.Decimal, overtime bool) (*ShiftPay, error) {
	if rate.IsNegative() {
		return nil, domain.InvalidField("hourlyRate", fmt.Sprintf("时薪 %s 不能为负数", rate))
	}

	raw, err := RawHours(start, end)
	if err != nil {
		return nil, err
	}

	breakHours := BreakDeduction(raw)
	paid := raw.Sub(breakHours)

	gross := paid.Mul(rate)
	if overtime {
		gross = gross.Mul(OvertimeMultiplier)
	}

	return &ShiftPay{
		RawHours:   raw,
		BreakHours: breakHours,
		PaidHours:  paid,
		Rate:       rate,
		Overtime:   overtime,
		Gross:      gross.Round(2),
	}, nil
}
