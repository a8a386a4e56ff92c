package handler

import (
	"net/http"
	"strconv"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string           `json:"name" validate:"required,max=100"`
		Date        domain.Date      `json:"date"`
		StartTime   domain.ClockTime `json:"startTime"`
		EndTime     domain.ClockTime `json:"endTime"`
		Description string           `json:"description" validate:"max=500"`
		EmployeeID  int64            `json:"employeeID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	me := currentUserID(r)
	shift := &domain.Shift{
		Name:        req.Name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		EmployeeID:  me,
		CreatedBy:   me,
	}

	// 员工只能为自己提交班次，雇主必须指定员工
	if currentRole(r) == domain.RoleEmployer {
		if req.EmployeeID == 0 {
			h.badRequest(w, r, domain.InvalidField("employeeID", "请指定员工"))
			return
		}
		shift.EmployeeID = req.EmployeeID
	} else if req.EmployeeID != 0 && req.EmployeeID != me {
		h.forbidden(w, r)
		return
	}

	if err := h.service.CreateShift(r.Context(), shift); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班次成功", shift)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ShiftFilter{
		Status: domain.ShiftStatus(q.Get("status")),
		Type:   domain.ShiftType(q.Get("type")),
	}
	switch filter.Status {
	case "", domain.ShiftPending, domain.ShiftApproved, domain.ShiftRejected:
	default:
		h.badRequest(w, r, domain.InvalidField("status", "未知的班次状态"))
		return
	}
	switch filter.Type {
	case "", domain.ShiftEmployerCreated, domain.ShiftEmployeeSubmitted:
	default:
		h.badRequest(w, r, domain.InvalidField("type", "未知的班次类型"))
		return
	}

	var err error
	if filter.From, err = queryDate(r, "from", domain.Date{}); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if filter.To, err = queryDate(r, "to", domain.Date{}); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if currentRole(r) == domain.RoleEmployer {
		if v := q.Get("employeeID"); v != "" {
			filter.EmployeeID, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				h.badRequest(w, r, domain.InvalidField("employeeID", "员工ID无效"))
				return
			}
		}
	} else {
		filter.EmployeeID = currentUserID(r)
	}

	shifts, err := h.repository.ListShifts(r.Context(), filter)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "获取班次成功", shift)
}

func (h *Handler) approveShift(w http.ResponseWriter, r *http.Request, overtime bool) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	result, err := h.service.ApproveShift(r.Context(), shift.ID, overtime, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "审核通过班次成功", result)
}

func (h *Handler) ApproveShift(w http.ResponseWriter, r *http.Request) {
	h.approveShift(w, r, false)
}

func (h *Handler) ApproveShiftWithOvertime(w http.ResponseWriter, r *http.Request) {
	h.approveShift(w, r, true)
}

func (h *Handler) RejectShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	rejected, err := h.service.RejectShift(r.Context(), shift.ID, h.now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "驳回班次成功", rejected)
}
