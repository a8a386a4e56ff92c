package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store 是审核、汇总与预测逻辑所依赖的持久化接口。
// InTx 中传给 fn 的 Store 绑定在同一个事务上，fn 返回错误时事务回滚。
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	GetUserByID(ctx context.Context, id int64) (*User, error)
	// LockUser 对用户行加锁，同一用户的审核和流水写入因此串行执行
	LockUser(ctx context.Context, id int64) (*User, error)
	UpdateUserHourlyRate(ctx context.Context, id int64, rate decimal.Decimal) error

	CreateShift(ctx context.Context, shift *Shift) error
	GetShiftByID(ctx context.Context, id int64) (*Shift, error)
	LockShift(ctx context.Context, id int64) (*Shift, error)
	UpdateShiftDecision(ctx context.Context, shift *Shift) error

	InsertDailyEntry(ctx context.Context, entry *DailyEntry) error
	SumDailyEntries(ctx context.Context, userID int64, from, to Date) (decimal.Decimal, error)
	UpsertWeeklyEarning(ctx context.Context, w *WeeklyEarning) error
	UpsertMonthlySalary(ctx context.Context, m *MonthlySalary) error
	UpsertSalaryAfterBills(ctx context.Context, s *SalaryAfterBills) error

	SumBills(ctx context.Context, userID int64) (decimal.Decimal, error)
	InsertNotification(ctx context.Context, n *Notification) error
}
