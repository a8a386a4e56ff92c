package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, http.StatusUnauthorized, "用户未登录")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			h.errorResponse(w, r, http.StatusUnauthorized, "无效的令牌")
			return
		}

		sub, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusUnauthorized, "无效的令牌")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, domain.Role(claims.Role))
		ctx = context.WithValue(ctx, SubCtxKey, sub)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUserID(r *http.Request) int64 {
	return r.Context().Value(SubCtxKey).(int64)
}

func currentRole(r *http.Request) domain.Role {
	return r.Context().Value(RoleCtxKey).(domain.Role)
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		myInfo, err := h.repository.GetUserByID(r.Context(), currentUserID(r))
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "个人信息不存在")
			default:
				h.storeError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, currentRole(r)) {
				h.forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) userInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParamInt64(r, "id")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "用户ID无效")
			return
		}

		user, err := h.repository.GetUserByID(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "用户不存在")
			default:
				h.storeError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// selfOrEmployer 必须放在 userInfo 之后，员工只能访问自己的数据
func (h *Handler) selfOrEmployer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(UserInfoCtx).(*domain.User)
		if currentRole(r) != domain.RoleEmployer && user.ID != currentUserID(r) {
			h.forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) shiftInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := urlParamInt64(r, "id")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "班次ID无效")
			return
		}

		shift, err := h.repository.GetShiftByID(r.Context(), shiftID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "班次不存在")
			default:
				h.storeError(w, r, err)
			}
			return
		}

		if currentRole(r) != domain.RoleEmployer && shift.EmployeeID != currentUserID(r) {
			h.forbidden(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ShiftCtx, shift)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
