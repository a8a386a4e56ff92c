package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/assistant"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

// snapshot 汇总用户当月的财务状况，供预算助手回答问题
func (h *Handler) snapshot(r *http.Request, user *domain.User) (*assistant.Snapshot, error) {
	today := h.today()

	s := &assistant.Snapshot{}

	rate, err := h.service.HourlyRate(r.Context(), user.ID, today)
	switch {
	case err == nil:
		s.HourlyRate = decimal.NewNullDecimal(rate.Rate)
	case errors.Is(err, domain.ErrInvalidInput):
		// 没有时薪也可以回答其它问题
	default:
		return nil, err
	}

	if s.Weekly, err = h.service.WeeklyEarnings(r.Context(), user.ID, today, h.now()); err != nil {
		return nil, err
	}
	if s.Projection, err = h.service.SalaryAfterBills(r.Context(), user.ID, domain.MonthOf(today), h.now()); err != nil {
		return nil, err
	}
	if s.Bills, err = h.repository.GetBillsByUserID(r.Context(), user.ID); err != nil {
		return nil, persistenceErr(err)
	}

	return s, nil
}

func (h *Handler) ChatWithAssistant(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Message string `json:"message" validate:"required,max=1000"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	s, err := h.snapshot(r, user)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	entry := h.assistant.Chat(r.Context(), user.ID, req.Message, s, h.now())
	h.successResponse(w, r, "回复成功", entry)
}

func (h *Handler) GetAssistantMessages(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.badRequest(w, r, domain.InvalidField("limit", "必须是正整数"))
			return
		}
		limit = n
	}

	entries, err := h.assistant.History(r.Context(), user.ID, limit)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取对话记录成功", entries)
}
