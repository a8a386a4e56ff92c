package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput           = errors.New("输入不合法")
	ErrInvalidTimeRange       = fmt.Errorf("%w: 结束时间不能早于开始时间", ErrInvalidInput)
	ErrInvalidStateTransition = errors.New("班次当前状态不允许该操作")
	ErrNotFound               = errors.New("记录不存在")
	ErrPersistenceUnavailable = errors.New("存储服务不可用")
)

// FieldError 描述某个字段的校验失败，errors.Is(err, ErrInvalidInput) 为 true
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func InvalidField(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
