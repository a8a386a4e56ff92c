package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func (h *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	bills, err := h.repository.GetBillsByUserID(r.Context(), user.ID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取账单成功", bills)
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Name   string          `json:"name" validate:"required,max=100"`
		Amount decimal.Decimal `json:"amount"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Amount.IsNegative() {
		h.badRequest(w, r, domain.InvalidField("amount", "账单金额不能为负数"))
		return
	}

	bill := &domain.Bill{
		UserID: user.ID,
		Name:   req.Name,
		Amount: req.Amount.Round(2),
	}
	if err := h.repository.CreateBill(r.Context(), bill); err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "添加账单成功", bill)
}

func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	billID, err := urlParamInt64(r, "billID")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "账单ID无效")
		return
	}

	if err := h.repository.DeleteBill(r.Context(), user.ID, billID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "账单不存在")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除账单成功", nil)
}
