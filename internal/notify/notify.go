package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

const QueueName = "email_queue"

// Channel 是 *amqp.Channel 中发布消息所需的部分
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher 把邮件投递到 email_queue，由 cmd/mail 消费并发送
type Publisher struct {
	ch      Channel
	timeout time.Duration
}

func NewPublisher(ch Channel, timeout time.Duration) *Publisher {
	return &Publisher{
		ch:      ch,
		timeout: timeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, msg *domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Type:         string(msg.Type),
			Body:         body,
		},
	)
}

// NotifyShiftDecision 给有邮箱的员工发送班次审核结果邮件，没有邮箱时什么也不做
func (p *Publisher) NotifyShiftDecision(ctx context.Context, user *domain.User, shift *domain.Shift, n *domain.Notification) error {
	if user.Email == nil || *user.Email == "" {
		return nil
	}

	var mailType domain.MailType
	switch n.Type {
	case domain.NotificationShiftApproved:
		mailType = domain.MailTypeShiftApproved
	case domain.NotificationShiftRejected:
		mailType = domain.MailTypeShiftRejected
	default:
		return fmt.Errorf("未知的通知类型 %q", n.Type)
	}

	data := domain.ShiftDecisionMailData{
		Username:  user.Username,
		ShiftName: shift.Name,
		ShiftDate: shift.Date.String(),
		StartTime: shift.StartTime.String(),
		EndTime:   shift.EndTime.String(),
		Message:   n.Message,
	}
	if shift.Pay.Valid {
		data.Pay = shift.Pay.Decimal.StringFixed(2)
	}

	return p.Publish(ctx, &domain.MailMessage{
		Type: mailType,
		To:   *user.Email,
		Data: data,
	})
}
