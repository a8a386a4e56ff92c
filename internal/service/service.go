package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

// Notifier 在班次审核事务提交之后被调用，用于把审核结果推送给员工
type Notifier interface {
	NotifyShiftDecision(ctx context.Context, user *domain.User, shift *domain.Shift, n *domain.Notification) error
}

type Service struct {
	store    domain.Store
	notifier Notifier
	rates    domain.DefaultRates
}

// New 创建 Service，notifier 可以为 nil
func New(store domain.Store, notifier Notifier, rates domain.DefaultRates) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		rates:    rates,
	}
}

func (s *Service) Rates() domain.DefaultRates {
	return s.rates
}

// storeErr 把持久化层返回的错误归类为业务错误，已经归类过的错误原样返回
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrPersistenceUnavailable):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%w: %s %d", domain.ErrNotFound, what, id)
}

// lockUser 锁定用户行并把 sql.ErrNoRows 转为 ErrNotFound
func lockUser(ctx context.Context, tx domain.Store, userID int64) (*domain.User, error) {
	user, err := tx.LockUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("用户", userID)
		}
		return nil, storeErr(err)
	}
	return user, nil
}
