package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/assistant"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/notify"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/service"
)

const tokenCookieName = "__payroll_planner_token"

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	service     *service.Service
	translator  ut.Translator
	publisher   *notify.Publisher
	redisClient *redis.Client
	assistant   *assistant.Assistant
	now         func() time.Time

	Mux *chi.Mux
}

type Deps struct {
	Repository  *repository.Repository
	Service     *service.Service
	Publisher   *notify.Publisher
	RedisClient *redis.Client
	Assistant   *assistant.Assistant
}

func NewHandler(cfg *config.Config, deps Deps) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  deps.Repository,
		service:     deps.Service,
		translator:  trans,
		publisher:   deps.Publisher,
		redisClient: deps.RedisClient,
		assistant:   deps.Assistant,
		now:         time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

// today 是所有"当前日期/当前月份"的唯一来源，业务逻辑只接收显式的日期参数
func (h *Handler) today() domain.Date {
	return domain.DateOf(h.now())
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Post("/pay/calculate", h.CalculatePay)

		// 员工只能访问自己的数据，雇主可以访问所有人的数据
		r.Route("/users/{id}", func(r chi.Router) {
			r.Use(h.userInfo)
			r.Use(h.selfOrEmployer)
			r.Get("/", h.GetUserInfo)
			r.Get("/hourly-rate", h.GetHourlyRate)
			r.Put("/hourly-rate", h.UpdateHourlyRate)
			r.Post("/daily-salary", h.SubmitDailySalary)
			r.Get("/daily-salary", h.GetLatestDailySalary)
			r.Get("/daily-salary-history", h.GetDailySalaryHistory)
			r.Get("/weekly-earnings", h.GetWeeklyEarnings)
			r.Get("/monthly-salary", h.GetMonthlySalary)
			r.Get("/salary-after-bills", h.GetSalaryAfterBills)
			r.Get("/payslip", h.GetPayslip)
			r.Route("/bills", func(r chi.Router) {
				r.Get("/", h.GetBills)
				r.Post("/", h.CreateBill)
				r.Delete("/{billID}", h.DeleteBill)
			})
			r.Route("/assistant", func(r chi.Router) {
				r.Post("/chat", h.ChatWithAssistant)
				r.Get("/messages", h.GetAssistantMessages)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.CreateShift)
			r.Get("/", h.GetShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.Get("/", h.GetShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer})).Put("/approve", h.ApproveShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer})).Put("/overtime", h.ApproveShiftWithOvertime)
				r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer})).Put("/reject", h.RejectShift)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleEmployer}))
			r.Get("/", h.GetEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/salary", h.GetEmployeeSalary)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.GetNotifications)
			r.Put("/{id}/read", h.MarkNotificationRead)
		})
	})
}
