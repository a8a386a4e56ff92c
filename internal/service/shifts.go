package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
)

// CreateShift 校验并保存一个待审核的班次，HoursWorked 在此时计算且之后不再改变
func (s *Service) CreateShift(ctx context.Context, shift *domain.Shift) error {
	if strings.TrimSpace(shift.Name) == "" {
		return domain.InvalidField("name", "班次名称不能为空")
	}
	if shift.Date.IsZero() {
		return domain.InvalidField("date", "班次日期不能为空")
	}

	raw, err := payroll.RawHours(shift.StartTime, shift.EndTime)
	if err != nil {
		return err
	}

	employee, err := s.store.GetUserByID(ctx, shift.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("员工", shift.EmployeeID)
		}
		return storeErr(err)
	}
	if employee.Role != domain.RoleEmployee {
		return domain.InvalidField("employeeID", "只能为员工创建班次")
	}

	shift.HoursWorked = raw.Round(2)
	shift.Status = domain.ShiftPending
	shift.Overtime = false
	if shift.CreatedBy == shift.EmployeeID {
		shift.Type = domain.ShiftEmployeeSubmitted
	} else {
		shift.Type = domain.ShiftEmployerCreated
	}

	return storeErr(s.store.CreateShift(ctx, shift))
}

type ApprovalResult struct {
	Shift       *domain.Shift         `json:"shift"`
	Pay         *payroll.ShiftPay     `json:"pay"`
	RateSource  domain.RateSource     `json:"rateSource"`
	WeeklyTotal decimal.Decimal       `json:"weeklyTotal"`
	Monthly     *domain.MonthlySalary `json:"monthly"`
}

func lockShift(ctx context.Context, tx domain.Store, shiftID int64) (*domain.Shift, error) {
	shift, err := tx.LockShift(ctx, shiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("班次", shiftID)
		}
		return nil, storeErr(err)
	}
	return shift, nil
}

// ApproveShift 审核通过一个待审核班次。
// 计算工资、写入流水、刷新周和月汇总、更新班次状态和写入通知在同一个事务中完成，
// 任何一步失败都会整体回滚，班次保持 pending。
func (s *Service) ApproveShift(ctx context.Context, shiftID int64, overtime bool, now time.Time) (*ApprovalResult, error) {
	var (
		result       *ApprovalResult
		employee     *domain.User
		notification *domain.Notification
	)

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		shift, err := lockShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}
		if shift.Status.IsTerminal() {
			return fmt.Errorf("%w: 班次 %d 已经是 %s 状态", domain.ErrInvalidStateTransition, shift.ID, shift.Status)
		}

		// 先锁班次再锁用户，所有路径都按这个顺序加锁
		employee, err = lockUser(ctx, tx, shift.EmployeeID)
		if err != nil {
			return err
		}

		rate, source, err := employee.EffectiveHourlyRate(shift.Date, s.rates)
		if err != nil {
			return err
		}

		pay, err := payroll.CalculateShiftPay(shift.StartTime, shift.EndTime, rate, overtime)
		if err != nil {
			return err
		}

		entry := &domain.DailyEntry{
			UserID:      employee.ID,
			ShiftID:     &shift.ID,
			Date:        shift.Date,
			HoursWorked: pay.PaidHours.Round(2),
			Amount:      pay.Gross,
			CreatedAt:   now,
		}
		if err := tx.InsertDailyEntry(ctx, entry); err != nil {
			return storeErr(err)
		}

		weekly, monthly, err := refreshPeriods(ctx, tx, employee.ID, shift.Date, now)
		if err != nil {
			return err
		}

		if err := shift.Approve(now, overtime, pay.Gross, weekly.Amount, monthly.Net); err != nil {
			return err
		}
		if err := tx.UpdateShiftDecision(ctx, shift); err != nil {
			return storeErr(err)
		}

		notification = &domain.Notification{
			UserID:    employee.ID,
			ShiftID:   &shift.ID,
			Type:      domain.NotificationShiftApproved,
			Message:   approvedMessage(shift, pay),
			CreatedAt: now,
		}
		if err := tx.InsertNotification(ctx, notification); err != nil {
			return storeErr(err)
		}

		result = &ApprovalResult{
			Shift:       shift,
			Pay:         pay,
			RateSource:  source,
			WeeklyTotal: weekly.Amount,
			Monthly:     monthly,
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	s.notify(ctx, employee, result.Shift, notification)
	return result, nil
}

// RejectShift 驳回一个待审核班次，不产生任何流水和汇总变化
func (s *Service) RejectShift(ctx context.Context, shiftID int64, now time.Time) (*domain.Shift, error) {
	var (
		shift        *domain.Shift
		employee     *domain.User
		notification *domain.Notification
	)

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		var err error
		shift, err = lockShift(ctx, tx, shiftID)
		if err != nil {
			return err
		}

		if err := shift.Reject(now); err != nil {
			return err
		}

		employee, err = tx.GetUserByID(ctx, shift.EmployeeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFound("员工", shift.EmployeeID)
			}
			return storeErr(err)
		}

		if err := tx.UpdateShiftDecision(ctx, shift); err != nil {
			return storeErr(err)
		}

		notification = &domain.Notification{
			UserID:    shift.EmployeeID,
			ShiftID:   &shift.ID,
			Type:      domain.NotificationShiftRejected,
			Message:   fmt.Sprintf("您在 %s 的班次「%s」未通过审核", shift.Date, shift.Name),
			CreatedAt: now,
		}
		return storeErr(tx.InsertNotification(ctx, notification))
	})
	if err != nil {
		return nil, storeErr(err)
	}

	s.notify(ctx, employee, shift, notification)
	return shift, nil
}

func approvedMessage(shift *domain.Shift, pay *payroll.ShiftPay) string {
	msg := fmt.Sprintf("您在 %s 的班次「%s」已通过审核，收入 £%s", shift.Date, shift.Name, pay.Gross.StringFixed(2))
	if pay.Overtime {
		msg += "（按加班计算）"
	}
	return msg
}

// notify 的失败不影响已经提交的审核结果，只记录日志
func (s *Service) notify(ctx context.Context, user *domain.User, shift *domain.Shift, n *domain.Notification) {
	if s.notifier == nil || user == nil || n == nil {
		return
	}
	if err := s.notifier.NotifyShiftDecision(ctx, user, shift, n); err != nil {
		slog.Warn("无法推送班次审核通知", "userID", user.ID, "shiftID", shift.ID, "type", n.Type, "error", err)
	}
}
