package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

type employeeSalary struct {
	Employee   *domain.User             `json:"employee"`
	Weekly     *domain.WeeklyEarning    `json:"weekly"`
	Projection *domain.SalaryAfterBills `json:"projection"`
	Entries    []*domain.DailyEntry     `json:"entries"`
}

// GetEmployees 返回所有员工在当月的收入概况
func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	month, err := queryMonth(r, "month", domain.MonthOf(h.today()))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	summaries, err := h.repository.GetEmployeeSummaries(r.Context(), month)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", summaries)
}

func (h *Handler) GetEmployeeSalary(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(UserInfoCtx).(*domain.User)
	if employee.Role != domain.RoleEmployee {
		h.notFound(w, r, "员工不存在")
		return
	}

	month, err := queryMonth(r, "month", domain.MonthOf(h.today()))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	projection, err := h.service.SalaryAfterBills(r.Context(), employee.ID, month, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	weekly, err := h.service.WeeklyEarnings(r.Context(), employee.ID, h.today(), h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	entries, err := h.repository.ListDailyEntries(r.Context(), employee.ID, month.Start(), month.End())
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工收入详情成功", employeeSalary{
		Employee:   employee,
		Weekly:     weekly,
		Projection: projection,
		Entries:    entries,
	})
}
