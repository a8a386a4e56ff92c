package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

const userColumns = `id, username, password_hash, email, role, hourly_rate, date_of_birth, created_at, version`

func userDst(user *domain.User) []any {
	return []any{&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.Role, &user.HourlyRate, &user.DateOfBirth, &user.CreatedAt, &user.Version}
}

func (r *Repository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	user := &domain.User{}
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(userDst(user)...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// LockUser 只应在 InTx 中调用，锁会持续到事务结束
func (r *Repository) LockUser(ctx context.Context, id int64) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, role, hourly_rate, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{user.Username, user.PasswordHash, user.Email, user.Role, user.HourlyRate, user.DateOfBirth}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version)
}

// UpdateUser 使用 version 做乐观锁，版本不匹配时返回 sql.ErrNoRows
func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			date_of_birth = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{user.PasswordHash, user.Email, user.DateOfBirth, user.ID, user.Version}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
}

func (r *Repository) UpdateUserHourlyRate(ctx context.Context, id int64, rate decimal.Decimal) error {
	query := `
		UPDATE users SET hourly_rate = $1, version = version + 1
		WHERE id = $2
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return r.db.QueryRowContext(ctx, query, rate, id).Scan(&id)
}

func (r *Repository) GetUsersByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(userDst(user)...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CheckEmailIfExists(ctx context.Context, email string) (bool, error) {
	isExists := false

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
