package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func resetPasswordOTPKey(username string) string {
	return fmt.Sprintf("otp_%s_reset_password", username)
}

type registerRequest struct {
	Username    string              `json:"username" validate:"required,min=3,max=50"`
	Password    string              `json:"password" validate:"required,min=6"`
	Email       string              `json:"email" validate:"omitempty,email"`
	DateOfBirth *domain.Date        `json:"dateOfBirth"`
	HourlyRate  decimal.NullDecimal `json:"hourlyRate"`
}

// newUser 注册的用户一律是员工，雇主账号只能通过 seed 创建
func (req *registerRequest) newUser(passwordHash string) *domain.User {
	user := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         domain.RoleEmployee,
		DateOfBirth:  req.DateOfBirth,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.HourlyRate.Valid {
		user.HourlyRate = decimal.NewNullDecimal(req.HourlyRate.Decimal.Round(2))
	}
	return user
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.HourlyRate.Valid && req.HourlyRate.Decimal.IsNegative() {
		h.badRequest(w, r, domain.InvalidField("hourlyRate", "时薪不能为负数"))
		return
	}
	if req.DateOfBirth != nil && req.DateOfBirth.After(h.today()) {
		h.badRequest(w, r, domain.InvalidField("dateOfBirth", "出生日期不能晚于今天"))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := req.newUser(string(passwordHash))

	if err := h.repository.CreateUser(r.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_key":
			h.errorResponse(w, r, http.StatusConflict, "用户名已存在")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.errorResponse(w, r, http.StatusConflict, "邮箱已存在")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "注册成功", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 验证用户名和密码
	user, err := h.repository.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusUnauthorized, "用户名不存在或密码错误")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, http.StatusUnauthorized, "用户名不存在或密码错误")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	now := h.now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通过 http-only 的 cookie 返回给客户端
	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "登录成功", user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    tokenCookieName,
		Value:   "",
		Expires: h.now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "登出成功", nil)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 用户不存在时同样返回成功，避免接口被用来探测用户名
			h.successResponse(w, r, "重置密码所需验证码已通过邮件发送", nil)
		default:
			h.storeError(w, r, err)
		}
		return
	}
	if user.Email == nil {
		h.errorResponse(w, r, http.StatusBadRequest, "该用户未绑定邮箱，请联系雇主重置密码")
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, resetPasswordOTPKey(user.Username), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := &domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   *user.Email,
		Data: domain.ResetPasswordMailData{
			Username:   user.Username,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // 邮件中显示的过期时间以分钟为单位，而配置中以秒为单位
		},
	}

	if err := h.publisher.Publish(r.Context(), mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "重置密码所需验证码已通过邮件发送", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		OTP      string `json:"otp" validate:"required,len=6,numeric"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, resetPasswordOTPKey(req.Username)).Result()
	if err != nil || otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "验证码错误")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user, err := h.repository.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "请重试")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, resetPasswordOTPKey(req.Username)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "重置密码成功", nil)
}
