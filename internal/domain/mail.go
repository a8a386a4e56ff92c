package domain

type MailType string

const (
	MailTypeResetPassword MailType = "reset_password"
	MailTypeShiftApproved MailType = "shift_approved"
	MailTypeShiftRejected MailType = "shift_rejected"
)

type MailMessage struct {
	Type MailType `json:"type"`
	To   string   `json:"to"`
	Data any      `json:"data"`
}

type ResetPasswordMailData struct {
	Username   string `json:"username"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

// ShiftDecisionMailData 同时用于班次通过和驳回的邮件
type ShiftDecisionMailData struct {
	Username  string `json:"username"`
	ShiftName string `json:"shiftName"`
	ShiftDate string `json:"shiftDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Message   string `json:"message"`
	Pay       string `json:"pay,omitempty"`
}
