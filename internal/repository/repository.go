package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

// querier 是 *sql.DB 和 *sql.Tx 共有的方法，事务内外的查询因此可以共用同一份代码
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ domain.Store = (*Repository)(nil)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	db     querier
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		db:     dbpool,
	}
}

func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// InTx 在一个事务中执行 fn，fn 返回错误时回滚，否则提交。
// 已经处于事务中时直接复用当前事务。
func (r *Repository) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if _, ok := r.db.(*sql.Tx); ok {
		return fn(r)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	txRepo := &Repository{
		cfg:    r.cfg,
		dbpool: r.dbpool,
		db:     tx,
	}
	if err := fn(txRepo); err != nil {
		return err
	}

	return tx.Commit()
}
