package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

const shiftColumns = `id, name, shift_date, start_time, end_time, description, employee_id, created_by, shift_type,
	hours_worked, status, overtime, pay, weekly_earnings, monthly_net, created_at, decided_at, version`

func shiftDst(s *domain.Shift) []any {
	return []any{
		&s.ID, &s.Name, &s.Date, &s.StartTime, &s.EndTime, &s.Description, &s.EmployeeID, &s.CreatedBy, &s.Type,
		&s.HoursWorked, &s.Status, &s.Overtime, &s.Pay, &s.WeeklyEarnings, &s.MonthlyNet, &s.CreatedAt, &s.DecidedAt, &s.Version,
	}
}

func (r *Repository) CreateShift(ctx context.Context, s *domain.Shift) error {
	query := `
		INSERT INTO shifts (name, shift_date, start_time, end_time, description, employee_id, created_by, shift_type, hours_worked, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{s.Name, s.Date, s.StartTime, s.EndTime, s.Description, s.EmployeeID, s.CreatedBy, s.Type, s.HoursWorked, s.Status}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version)
}

func (r *Repository) getShift(ctx context.Context, query string, id int64) (*domain.Shift, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	s := &domain.Shift{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(shiftDst(s)...); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) GetShiftByID(ctx context.Context, id int64) (*domain.Shift, error) {
	return r.getShift(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)
}

func (r *Repository) LockShift(ctx context.Context, id int64) (*domain.Shift, error) {
	return r.getShift(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1 FOR UPDATE`, id)
}

// UpdateShiftDecision 只允许更新仍处于 pending 状态的班次
func (r *Repository) UpdateShiftDecision(ctx context.Context, s *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			status = $1,
			overtime = $2,
			pay = $3,
			weekly_earnings = $4,
			monthly_net = $5,
			decided_at = $6,
			version = version + 1
		WHERE id = $7 AND version = $8 AND status = 'pending'
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{s.Status, s.Overtime, s.Pay, s.WeeklyEarnings, s.MonthlyNet, s.DecidedAt, s.ID, s.Version}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&s.Version)
}

func (r *Repository) ListShifts(ctx context.Context, filter domain.ShiftFilter) ([]*domain.Shift, error) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != 0 {
		add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Type != "" {
		add("shift_type = $%d", filter.Type)
	}
	if !filter.From.IsZero() {
		add("shift_date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("shift_date <= $%d", filter.To)
	}

	query := `SELECT ` + shiftColumns + ` FROM shifts`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY shift_date DESC, start_time DESC`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s := &domain.Shift{}
		if err := rows.Scan(shiftDst(s)...); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
