package mailer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrUnsupportedType = errors.New("不支持的邮件类型")

type kind struct {
	template string
	subject  string
}

var kinds = map[domain.MailType]kind{
	domain.MailTypeResetPassword: {template: "reset_password.html", subject: "薪资规划 - 重置密码"},
	domain.MailTypeShiftApproved: {template: "shift_approved.html", subject: "薪资规划 - 班次已通过审核"},
	domain.MailTypeShiftRejected: {template: "shift_rejected.html", subject: "薪资规划 - 班次已被驳回"},
}

// Decode 解析队列中的消息，Data 会被解析为 map[string]any 供模板使用
func Decode(body []byte) (*domain.MailMessage, error) {
	m := &domain.MailMessage{}
	if err := json.Unmarshal(body, m); err != nil {
		return nil, err
	}
	if m.To == "" {
		return nil, errors.New("邮件收件人为空")
	}
	return m, nil
}

func renderBody(t domain.MailType, data any) (string, error) {
	k, ok := kinds[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}

	buf := &bytes.Buffer{}
	if err := templates.ExecuteTemplate(buf, k.template, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Build 根据邮件类型套用模板，生成可以直接发送的邮件
func Build(from string, m *domain.MailMessage) (*mail.Msg, error) {
	body, err := renderBody(m.Type, m.Data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	msg.Subject(kinds[m.Type].subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	return msg, nil
}
