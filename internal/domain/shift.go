package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ShiftStatus string

const (
	ShiftPending  ShiftStatus = "pending"
	ShiftApproved ShiftStatus = "approved"
	ShiftRejected ShiftStatus = "rejected"
)

// IsTerminal 报告状态是否已经是终态，终态之后不允许任何转换
func (s ShiftStatus) IsTerminal() bool {
	return s == ShiftApproved || s == ShiftRejected
}

type ShiftType string

const (
	ShiftEmployerCreated   ShiftType = "employer_created"
	ShiftEmployeeSubmitted ShiftType = "employee_submitted"
)

type Shift struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Date        Date            `json:"date"`
	StartTime   ClockTime       `json:"startTime"`
	EndTime     ClockTime       `json:"endTime"`
	Description string          `json:"description"`
	EmployeeID  int64           `json:"employeeID"`
	CreatedBy   int64           `json:"createdBy"`
	Type        ShiftType       `json:"shiftType"`
	HoursWorked decimal.Decimal `json:"hoursWorked"`
	Status      ShiftStatus     `json:"status"`
	Overtime    bool            `json:"overtime"`
	// 以下字段在班次通过审核时写入，之后不再改变
	Pay            decimal.NullDecimal `json:"pay"`
	WeeklyEarnings decimal.NullDecimal `json:"weeklyEarnings"`
	MonthlyNet     decimal.NullDecimal `json:"monthlyNet"`
	CreatedAt      time.Time           `json:"createdAt"`
	DecidedAt      *time.Time          `json:"decidedAt"`
	Version        int32               `json:"-"`
}

func (s *Shift) transition(to ShiftStatus, at time.Time) error {
	if s.Status.IsTerminal() {
		return fmt.Errorf("%w: 班次 %d 已经是 %s 状态", ErrInvalidStateTransition, s.ID, s.Status)
	}
	s.Status = to
	s.DecidedAt = &at
	return nil
}

// Approve 把班次从 pending 转为 approved，并记录审核时的收入快照
func (s *Shift) Approve(at time.Time, overtime bool, pay, weekly, monthlyNet decimal.Decimal) error {
	if err := s.transition(ShiftApproved, at); err != nil {
		return err
	}
	s.Overtime = overtime
	s.Pay = decimal.NewNullDecimal(pay)
	s.WeeklyEarnings = decimal.NewNullDecimal(weekly)
	s.MonthlyNet = decimal.NewNullDecimal(monthlyNet)
	return nil
}

func (s *Shift) Reject(at time.Time) error {
	return s.transition(ShiftRejected, at)
}

// ShiftFilter 用于列出班次，零值字段表示不过滤
type ShiftFilter struct {
	EmployeeID int64
	Status     ShiftStatus
	Type       ShiftType
	From       Date
	To         Date
}
