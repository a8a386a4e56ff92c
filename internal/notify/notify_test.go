package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	published []published
	err       error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func testShift() *domain.Shift {
	return &domain.Shift{
		ID:        7,
		Name:      "早班",
		Date:      domain.NewDate(2024, time.March, 15),
		StartTime: domain.NewClockTime(9, 0),
		EndTime:   domain.NewClockTime(17, 0),
		Status:    domain.ShiftApproved,
		Pay:       decimal.NewNullDecimal(decimal.NewFromInt(75)),
	}
}

func TestNotifyShiftDecision(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, time.Second)
	email := "worker@example.com"
	user := &domain.User{ID: 2, Username: "worker", Email: &email}
	n := &domain.Notification{Type: domain.NotificationShiftApproved, Message: "已通过"}

	require.NoError(t, p.NotifyShiftDecision(context.Background(), user, testShift(), n))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "", got.exchange)
	assert.Equal(t, QueueName, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, string(domain.MailTypeShiftApproved), got.msg.Type)
	_, err := uuid.Parse(got.msg.MessageId)
	assert.NoError(t, err)

	var body struct {
		Type domain.MailType              `json:"type"`
		To   string                       `json:"to"`
		Data domain.ShiftDecisionMailData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, domain.MailTypeShiftApproved, body.Type)
	assert.Equal(t, email, body.To)
	assert.Equal(t, "75.00", body.Data.Pay)
	assert.Equal(t, "2024-03-15", body.Data.ShiftDate)
	assert.Equal(t, "09:00", body.Data.StartTime)
}

func TestNotifyShiftDecisionWithoutEmail(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, time.Second)
	user := &domain.User{ID: 2, Username: "worker"}
	n := &domain.Notification{Type: domain.NotificationShiftRejected}

	require.NoError(t, p.NotifyShiftDecision(context.Background(), user, testShift(), n))
	assert.Empty(t, ch.published)
}

func TestPublishError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := NewPublisher(ch, time.Second)

	err := p.Publish(context.Background(), &domain.MailMessage{Type: domain.MailTypeResetPassword, To: "a@example.com"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}
