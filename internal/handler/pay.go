package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

// CalculatePay 只计算一次班次的工资，不写入任何数据
func (h *Handler) CalculatePay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rate      decimal.NullDecimal `json:"rate"`
		StartTime domain.ClockTime    `json:"startTime"`
		EndTime   domain.ClockTime    `json:"endTime"`
		Overtime  bool                `json:"overtime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pay, err := h.service.ComputeDailyPay(req.Rate, req.StartTime, req.EndTime, req.Overtime)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "计算工资成功", pay)
}
