package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func (r *Repository) GetBillsByUserID(ctx context.Context, userID int64) ([]*domain.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, created_at FROM bills
		WHERE user_id = $1
		ORDER BY id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]*domain.Bill, 0)
	for rows.Next() {
		b := &domain.Bill{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *Repository) CreateBill(ctx context.Context, b *domain.Bill) error {
	query := `
		INSERT INTO bills (user_id, name, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return r.db.QueryRowContext(ctx, query, b.UserID, b.Name, b.Amount).Scan(&b.ID, &b.CreatedAt)
}

// DeleteBill 在账单不存在或不属于该用户时返回 sql.ErrNoRows
func (r *Repository) DeleteBill(ctx context.Context, userID, billID int64) error {
	query := `
		DELETE FROM bills WHERE id = $1 AND user_id = $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, billID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) SumBills(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM bills WHERE user_id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	total := decimal.Zero
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
