package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/report"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/service"
)

func (h *Handler) GetHourlyRate(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	on, err := queryDate(r, "date", h.today())
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	rate, err := h.service.HourlyRate(r.Context(), user.ID, on)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时薪成功", rate)
}

func (h *Handler) UpdateHourlyRate(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		HourlyRate decimal.NullDecimal `json:"hourlyRate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	// 缺少字段时不能把已有时薪覆盖为 0
	if !req.HourlyRate.Valid {
		h.badRequest(w, r, domain.InvalidField("hourlyRate", "时薪不能为空"))
		return
	}

	if err := h.service.UpdateHourlyRate(r.Context(), user.ID, req.HourlyRate.Decimal); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新时薪成功", service.HourlyRate{
		Rate:   req.HourlyRate.Decimal.Round(2),
		Source: domain.RateSourceExplicit,
	})
}

func (h *Handler) SubmitDailySalary(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Date       *domain.Date        `json:"date"`
		StartTime  domain.ClockTime    `json:"startTime"`
		EndTime    domain.ClockTime    `json:"endTime"`
		HourlyRate decimal.NullDecimal `json:"hourlyRate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 没有填写日期时按今天记录
	date := h.today()
	if req.Date != nil {
		date = *req.Date
	}

	result, err := h.service.RecordDailySalary(r.Context(), service.DailySalaryInput{
		UserID:    user.ID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Rate:      req.HourlyRate,
	}, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "记录每日收入成功", result)
}

func (h *Handler) GetLatestDailySalary(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	entry, err := h.repository.GetLatestDailyEntry(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "暂无收入记录")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取最近一次收入成功", entry)
}

func (h *Handler) GetDailySalaryHistory(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	today := h.today()
	from, err := queryDate(r, "from", today.AddDays(-30))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	to, err := queryDate(r, "to", today)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if to.Before(from) {
		h.badRequest(w, r, domain.InvalidField("to", "结束日期不能早于开始日期"))
		return
	}

	entries, err := h.repository.ListDailyEntries(r.Context(), user.ID, from, to)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取收入记录成功", entries)
}

func (h *Handler) GetWeeklyEarnings(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	on, err := queryDate(r, "date", h.today())
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekly, err := h.service.WeeklyEarnings(r.Context(), user.ID, on, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取周收入成功", weekly)
}

func (h *Handler) GetMonthlySalary(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	month, err := queryMonth(r, "month", domain.MonthOf(h.today()))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	monthly, err := h.service.MonthlySalary(r.Context(), user.ID, month, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取月收入成功", monthly)
}

func (h *Handler) GetSalaryAfterBills(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	month, err := queryMonth(r, "month", domain.MonthOf(h.today()))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	projection, err := h.service.SalaryAfterBills(r.Context(), user.ID, month, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取扣除账单后收入成功", projection)
}

func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	month, err := queryMonth(r, "month", domain.MonthOf(h.today()))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	projection, err := h.service.SalaryAfterBills(r.Context(), user.ID, month, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	breakdown, err := payroll.MonthlyBreakdown(projection.Gross)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	entries, err := h.repository.ListDailyEntries(r.Context(), user.ID, month.Start(), month.End())
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	pdf, err := report.BuildPayslipPDF(&report.Payslip{
		Employee:    user,
		Projection:  projection,
		Entries:     entries,
		Breakdown:   breakdown,
		GeneratedAt: h.now(),
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s-%s.pdf"`, user.Username, month))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.logInternalServerError(r, err)
	}
}
