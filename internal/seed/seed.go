package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/utils"
	"github.com/teambition/rrule-go"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Fixtures struct {
	Employer struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
	} `yaml:"employer"`
	Bills  []BillFixture  `yaml:"bills"`
	Shifts []ShiftFixture `yaml:"shifts"`
}

type BillFixture struct {
	Name   string          `yaml:"name"`
	Amount decimal.Decimal `yaml:"amount"`
}

// ShiftFixture 描述一个周期性班次，RRule 使用 RFC 5545 的 RRULE 语法，不含 DTSTART
type ShiftFixture struct {
	Name        string           `yaml:"name"`
	RRule       string           `yaml:"rrule"`
	StartTime   domain.ClockTime `yaml:"startTime"`
	EndTime     domain.ClockTime `yaml:"endTime"`
	Description string           `yaml:"description"`
}

func (c *ShiftFixture) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name        string `yaml:"name"`
		RRule       string `yaml:"rrule"`
		StartTime   string `yaml:"startTime"`
		EndTime     string `yaml:"endTime"`
		Description string `yaml:"description"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	start, err := domain.ParseClockTime(raw.StartTime)
	if err != nil {
		return fmt.Errorf("班次 %s: %w", raw.Name, err)
	}
	end, err := domain.ParseClockTime(raw.EndTime)
	if err != nil {
		return fmt.Errorf("班次 %s: %w", raw.Name, err)
	}

	*c = ShiftFixture{
		Name:        raw.Name,
		RRule:       raw.RRule,
		StartTime:   start,
		EndTime:     end,
		Description: raw.Description,
	}
	return nil
}

func (b *BillFixture) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name   string `yaml:"name"`
		Amount string `yaml:"amount"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return fmt.Errorf("账单 %s 金额无效: %w", raw.Name, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("账单 %s 金额不能为负数", raw.Name)
	}

	*b = BillFixture{Name: raw.Name, Amount: amount}
	return nil
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	f := &Fixtures{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, err
	}
	return f, nil
}

func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixtures(data)
}

// Occurrences 返回周期性班次在 [from, to] 之间的所有日期
func (c *ShiftFixture) Occurrences(from, to domain.Date) ([]domain.Date, error) {
	opt, err := rrule.StrToROption(c.RRule)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 的 rrule 无效: %w", c.Name, err)
	}
	opt.Dtstart = from.Time()

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("班次 %s 的 rrule 无效: %w", c.Name, err)
	}

	times := r.Between(from.Time(), to.Time(), true)
	dates := make([]domain.Date, len(times))
	for i, t := range times {
		dates[i] = domain.DateOf(t)
	}
	return dates, nil
}

type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUsersByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	CreateBill(ctx context.Context, b *domain.Bill) error
}

// ShiftCreator 由 service.Service 实现，班次经过与 API 相同的校验后写入
type ShiftCreator interface {
	CreateShift(ctx context.Context, shift *domain.Shift) error
}

type Seeder struct {
	store    Store
	shifts   ShiftCreator
	password string
	domain   string
}

func NewSeeder(store Store, shifts ShiftCreator, password, emailDomain string) *Seeder {
	return &Seeder{
		store:    store,
		shifts:   shifts,
		password: password,
		domain:   emailDomain,
	}
}

// SeedEmployees 插入 n 个随机员工，返回成功插入的数量
func (s *Seeder) SeedEmployees(ctx context.Context, n int, today domain.Date) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomEmployee(s.password, s.domain, today)
		if err != nil {
			slog.Error("无法生成随机员工", slog.String("error", err.Error()))
			continue
		}

		if err := s.store.CreateUser(ctx, user); err != nil {
			// 随机用户名可能重复，跳过即可
			slog.Error("无法插入员工", slog.String("username", user.Username), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	return cnt
}

func (s *Seeder) ensureEmployer(ctx context.Context, f *Fixtures) (*domain.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employer := &domain.User{
		Username:     f.Employer.Username,
		PasswordHash: string(passwordHash),
		Role:         domain.RoleEmployer,
	}
	if f.Employer.Email != "" {
		employer.Email = &f.Employer.Email
	}

	if err := s.store.CreateUser(ctx, employer); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_key" {
			// 雇主已经存在
			return s.store.GetUserByUsername(ctx, f.Employer.Username)
		}
		return nil, err
	}
	return employer, nil
}

type Result struct {
	Bills  int
	Shifts int
}

// SeedFixtures 为每个员工插入固定账单，并按周期规则在 [from, to] 内生成待审核班次
func (s *Seeder) SeedFixtures(ctx context.Context, f *Fixtures, from, to domain.Date) (*Result, error) {
	employer, err := s.ensureEmployer(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("无法创建雇主: %w", err)
	}

	employees, err := s.store.GetUsersByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, e := range employees {
		for _, bf := range f.Bills {
			bill := &domain.Bill{UserID: e.ID, Name: bf.Name, Amount: bf.Amount}
			if err := s.store.CreateBill(ctx, bill); err != nil {
				return nil, fmt.Errorf("无法插入账单: %w", err)
			}
			result.Bills++
		}

		for i := range f.Shifts {
			sf := &f.Shifts[i]
			dates, err := sf.Occurrences(from, to)
			if err != nil {
				return nil, err
			}

			for j, d := range dates {
				shift := &domain.Shift{
					Name:        sf.Name,
					Date:        d,
					StartTime:   sf.StartTime,
					EndTime:     sf.EndTime,
					Description: sf.Description,
					EmployeeID:  e.ID,
					CreatedBy:   e.ID,
				}
				// 一半由雇主安排，一半由员工自己提交
				if j%2 == 1 {
					shift.CreatedBy = employer.ID
				}
				// 晚一点开始，让工时不完全相同
				jitter := int(utils.RandomTimeOffset(time.Hour, 15*time.Minute) / time.Minute)
				if shift.StartTime.Minutes()+jitter <= shift.EndTime.Minutes() {
					shift.StartTime = domain.NewClockTime(0, shift.StartTime.Minutes()+jitter)
				}

				if err := s.shifts.CreateShift(ctx, shift); err != nil {
					return nil, fmt.Errorf("无法插入班次: %w", err)
				}
				result.Shifts++
			}
		}
	}

	return result, nil
}
