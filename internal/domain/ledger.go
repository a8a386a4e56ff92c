package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEntry 是每日收入流水中的一条记录，流水是所有汇总数据的唯一来源
type DailyEntry struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userID"`
	ShiftID     *int64          `json:"shiftID"`
	Date        Date            `json:"date"`
	HoursWorked decimal.Decimal `json:"hoursWorked"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type WeeklyEarning struct {
	UserID    int64           `json:"userID"`
	Week      Week            `json:"week"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type MonthlySalary struct {
	UserID    int64           `json:"userID"`
	Month     Month           `json:"month"`
	Gross     decimal.Decimal `json:"gross"`
	Tax       decimal.Decimal `json:"tax"`
	Net       decimal.Decimal `json:"net"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type SalaryAfterBills struct {
	UserID        int64           `json:"userID"`
	Month         Month           `json:"month"`
	Gross         decimal.Decimal `json:"gross"`
	Tax           decimal.Decimal `json:"tax"`
	Net           decimal.Decimal `json:"net"`
	TotalBills    decimal.Decimal `json:"totalBills"`
	NetAfterBills decimal.Decimal `json:"netAfterBills"`
	Percentage    decimal.Decimal `json:"percentage"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// EmployeeSummary 是雇主查看员工列表时每位员工的概况
type EmployeeSummary struct {
	User         *User           `json:"user"`
	MonthlyGross decimal.Decimal `json:"monthlyGross"`
	MonthlyNet   decimal.Decimal `json:"monthlyNet"`
	PendingCount int             `json:"pendingShifts"`
}
