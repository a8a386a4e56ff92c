package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func (r *Repository) InsertDailyEntry(ctx context.Context, e *domain.DailyEntry) error {
	query := `
		INSERT INTO daily_keep (user_id, shift_id, keep_date, hours_worked, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{e.UserID, e.ShiftID, e.Date, e.HoursWorked, e.Amount, e.CreatedAt}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID)
}

// SumDailyEntries 返回 [from, to] 闭区间内的流水总额，没有流水时为 0
func (r *Repository) SumDailyEntries(ctx context.Context, userID int64, from, to domain.Date) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM daily_keep
		WHERE user_id = $1 AND keep_date BETWEEN $2 AND $3
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	total := decimal.Zero
	if err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *Repository) ListDailyEntries(ctx context.Context, userID int64, from, to domain.Date) ([]*domain.DailyEntry, error) {
	query := `
		SELECT id, user_id, shift_id, keep_date, hours_worked, amount, created_at
		FROM daily_keep
		WHERE user_id = $1 AND keep_date BETWEEN $2 AND $3
		ORDER BY keep_date, id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.DailyEntry, 0)
	for rows.Next() {
		e := &domain.DailyEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.ShiftID, &e.Date, &e.HoursWorked, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// 以下 upsert 都是整体覆盖，调用方负责先从流水重新求和

func (r *Repository) UpsertWeeklyEarning(ctx context.Context, w *domain.WeeklyEarning) error {
	query := `
		INSERT INTO weekly_earnings (user_id, iso_year, week_number, amount, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, iso_year, week_number)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, w.UserID, w.Week.Year, w.Week.Number, w.Amount, w.UpdatedAt)
	return err
}

func (r *Repository) UpsertMonthlySalary(ctx context.Context, m *domain.MonthlySalary) error {
	query := `
		INSERT INTO monthly_salaries (user_id, year_num, month_num, gross, tax, net, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, year_num, month_num)
		DO UPDATE SET gross = EXCLUDED.gross, tax = EXCLUDED.tax, net = EXCLUDED.net, updated_at = EXCLUDED.updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{m.UserID, m.Month.Year, int(m.Month.Month), m.Gross, m.Tax, m.Net, m.UpdatedAt}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) UpsertSalaryAfterBills(ctx context.Context, s *domain.SalaryAfterBills) error {
	query := `
		INSERT INTO salary_after_bills (user_id, year_num, month_num, gross, tax, net, total_bills, net_after_bills, percentage, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, year_num, month_num)
		DO UPDATE SET
			gross = EXCLUDED.gross,
			tax = EXCLUDED.tax,
			net = EXCLUDED.net,
			total_bills = EXCLUDED.total_bills,
			net_after_bills = EXCLUDED.net_after_bills,
			percentage = EXCLUDED.percentage,
			updated_at = EXCLUDED.updated_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{s.UserID, s.Month.Year, int(s.Month.Month), s.Gross, s.Tax, s.Net, s.TotalBills, s.NetAfterBills, s.Percentage, s.UpdatedAt}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetEmployeeSummaries 返回所有员工在 month 的收入概况，月汇总不存在时按 0 处理
func (r *Repository) GetEmployeeSummaries(ctx context.Context, month domain.Month) ([]*domain.EmployeeSummary, error) {
	query := `
		SELECT
			u.id, u.username, u.password_hash, u.email, u.role, u.hourly_rate, u.date_of_birth, u.created_at, u.version,
			COALESCE(m.gross, 0), COALESCE(m.net, 0),
			(SELECT COUNT(*) FROM shifts s WHERE s.employee_id = u.id AND s.status = 'pending')
		FROM users u
		LEFT JOIN monthly_salaries m ON m.user_id = u.id AND m.year_num = $1 AND m.month_num = $2
		WHERE u.role = 'employee'
		ORDER BY u.id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, month.Year, int(month.Month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*domain.EmployeeSummary, 0)
	for rows.Next() {
		s := &domain.EmployeeSummary{User: &domain.User{}}
		dst := append(userDst(s.User), &s.MonthlyGross, &s.MonthlyNet, &s.PendingCount)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// GetLatestDailyEntry 返回用户最近一天的流水，没有记录时返回 sql.ErrNoRows
func (r *Repository) GetLatestDailyEntry(ctx context.Context, userID int64) (*domain.DailyEntry, error) {
	query := `
		SELECT id, user_id, shift_id, keep_date, hours_worked, amount, created_at
		FROM daily_keep
		WHERE user_id = $1
		ORDER BY keep_date DESC, id DESC
		LIMIT 1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	e := &domain.DailyEntry{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&e.ID, &e.UserID, &e.ShiftID, &e.Date, &e.HoursWorked, &e.Amount, &e.CreatedAt); err != nil {
		return nil, err
	}

	return e, nil
}
