package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

// Snapshot 是回答问题时用到的用户财务状况
type Snapshot struct {
	HourlyRate decimal.NullDecimal
	Weekly     *domain.WeeklyEarning
	Projection *domain.SalaryAfterBills
	Bills      []*domain.Bill
}

type Assistant struct {
	history History
}

func New(history History) *Assistant {
	return &Assistant{history: history}
}

type topic struct {
	keywords []string
	answer   func(s *Snapshot) string
}

var topics = []topic{
	{keywords: []string{"税", "tax"}, answer: taxAnswer},
	{keywords: []string{"账单", "bill", "支出", "expense"}, answer: billsAnswer},
	{keywords: []string{"时薪", "rate", "hourly"}, answer: rateAnswer},
	{keywords: []string{"本周", "这周", "week"}, answer: weekAnswer},
	{keywords: []string{"存", "储蓄", "save", "saving"}, answer: savingAnswer},
}

// Reply 根据关键词选择回答，没有匹配时返回月度概况
func Reply(message string, s *Snapshot) string {
	lower := strings.ToLower(message)
	for _, t := range topics {
		for _, k := range t.keywords {
			if strings.Contains(lower, k) {
				return t.answer(s)
			}
		}
	}
	return summaryAnswer(s)
}

func money(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

func taxAnswer(s *Snapshot) string {
	p := s.Projection
	return fmt.Sprintf("%s 月税前收入 %s，应缴所得税 %s，税后 %s。", p.Month, money(p.Gross), money(p.Tax), money(p.Net))
}

func billsAnswer(s *Snapshot) string {
	if len(s.Bills) == 0 {
		return "您还没有登记任何账单，可以先把房租、水电和订阅服务记录下来。"
	}

	largest := s.Bills[0]
	for _, b := range s.Bills[1:] {
		if b.Amount.GreaterThan(largest.Amount) {
			largest = b
		}
	}
	return fmt.Sprintf("您共有 %d 项账单，合计 %s，其中最大的一项是「%s」%s，建议优先检查这一项能否压缩。",
		len(s.Bills), money(s.Projection.TotalBills), largest.Name, money(largest.Amount))
}

func rateAnswer(s *Snapshot) string {
	if !s.HourlyRate.Valid {
		return "您还没有设置时薪，审核班次时会按年龄使用默认时薪。"
	}
	return fmt.Sprintf("您当前的时薪是 %s。", money(s.HourlyRate.Decimal))
}

func weekAnswer(s *Snapshot) string {
	if s.Weekly == nil {
		return "暂时无法获取本周收入。"
	}
	return fmt.Sprintf("第 %s 周到目前为止的收入是 %s。", s.Weekly.Week, money(s.Weekly.Amount))
}

func savingAnswer(s *Snapshot) string {
	p := s.Projection
	if !p.NetAfterBills.IsPositive() {
		return fmt.Sprintf("扣除账单后本月结余为 %s，目前没有可储蓄的余额，建议先削减非必要支出。", money(p.NetAfterBills))
	}
	// 按结余的两成给出建议
	suggested := p.NetAfterBills.Mul(decimal.RequireFromString("0.2")).Round(0)
	return fmt.Sprintf("扣除账单后本月结余约 %s，可以考虑每月固定存下 %s。", money(p.NetAfterBills), money(suggested))
}

func summaryAnswer(s *Snapshot) string {
	p := s.Projection
	return fmt.Sprintf("%s 月税后收入 %s，%d 项账单合计 %s，扣除后结余约 %s，占税前收入的 %s%%。建议定期检查订阅和水电等固定支出。",
		p.Month, money(p.Net), len(s.Bills), money(p.TotalBills), money(p.NetAfterBills), p.Percentage.StringFixed(2))
}

// Chat 生成回答并写入对话记录，记录写入失败时仍然返回回答
func (a *Assistant) Chat(ctx context.Context, userID int64, message string, s *Snapshot, now time.Time) *Entry {
	e := &Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Response:  Reply(message, s),
		CreatedAt: now,
	}

	if err := a.history.Append(ctx, e); err != nil {
		slog.Warn("无法保存对话记录", "userID", userID, "error", err)
	}

	return e
}

func (a *Assistant) History(ctx context.Context, userID int64, limit int) ([]*Entry, error) {
	return a.history.List(ctx, userID, limit)
}
