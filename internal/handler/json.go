package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.errorResponse(w, r, http.StatusNotFound, msg)
}

func (h *Handler) forbidden(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, http.StatusForbidden, "权限不足")
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "服务器内部错误",
		Data:    nil,
	})
}

// serviceError 把业务错误映射为 HTTP 状态码
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.notFound(w, r, err.Error())
	case errors.Is(err, domain.ErrInvalidStateTransition):
		h.errorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, http.StatusServiceUnavailable, "存储服务暂时不可用，请稍后重试")
	default:
		h.internalServerError(w, r, err)
	}
}

// persistenceErr 把仓储层直接返回的错误归为存储不可用
func persistenceErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
}

// storeError 用于直接读写仓储的接口，返回与服务层一致的 503
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.serviceError(w, r, persistenceErr(err))
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// queryDate 读取 YYYY-MM-DD 格式的查询参数，缺省时返回 def
func queryDate(r *http.Request, name string, def domain.Date) (domain.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return domain.ParseDate(v)
}

// queryMonth 读取 YYYY-MM 格式的查询参数，缺省时返回 def
func queryMonth(r *http.Request, name string, def domain.Month) (domain.Month, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return domain.ParseMonth(v)
}
