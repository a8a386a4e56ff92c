package mailer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

func encode(t *testing.T, m *domain.MailMessage) []byte {
	t.Helper()
	body, err := json.Marshal(m)
	require.NoError(t, err)
	return body
}

func TestDecodeAndRender_ResetPassword(t *testing.T) {
	body := encode(t, &domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   "alice@example.com",
		Data: domain.ResetPasswordMailData{Username: "alice", OTP: "042917", Expiration: 15},
	})

	m, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, domain.MailTypeResetPassword, m.Type)

	html, err := renderBody(m.Type, m.Data)
	require.NoError(t, err)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "042917")
	assert.Contains(t, html, "15 分钟")
}

func TestRender_ShiftApproved(t *testing.T) {
	body := encode(t, &domain.MailMessage{
		Type: domain.MailTypeShiftApproved,
		To:   "bob@example.com",
		Data: domain.ShiftDecisionMailData{
			Username:  "bob",
			ShiftName: "早班",
			ShiftDate: "2024-03-11",
			StartTime: "09:00",
			EndTime:   "17:00",
			Message:   "审核通过",
			Pay:       "91.58",
		},
	})

	m, err := Decode(body)
	require.NoError(t, err)

	html, err := renderBody(m.Type, m.Data)
	require.NoError(t, err)
	assert.Contains(t, html, "早班")
	assert.Contains(t, html, "2024-03-11 09:00 - 17:00")
	assert.Contains(t, html, "£91.58")
}

func TestRender_ShiftRejectedHasNoPay(t *testing.T) {
	html, err := renderBody(domain.MailTypeShiftRejected, map[string]any{
		"username":  "bob",
		"shiftName": "晚班",
		"shiftDate": "2024-03-12",
		"startTime": "18:00",
		"endTime":   "22:00",
		"message":   "已驳回",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "已被驳回")
	assert.NotContains(t, html, "£")
}

func TestBuild(t *testing.T) {
	msg, err := Build("noreply@example.com", &domain.MailMessage{
		Type: domain.MailTypeShiftRejected,
		To:   "bob@example.com",
		Data: map[string]any{"username": "bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"薪资规划 - 班次已被驳回"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestBuild_UnsupportedType(t *testing.T) {
	_, err := Build("noreply@example.com", &domain.MailMessage{Type: "create_user", To: "bob@example.com"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"type":"reset_password","to":""}`))
	assert.Error(t, err)
}
