package service

import (
	"context"
	"maps"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

var (
	testNow   = time.Date(2024, time.March, 20, 18, 0, 0, 0, time.UTC)
	testRates = domain.DefaultRates{
		Under18:  decimal.RequireFromString("7.55"),
		Adult:    decimal.RequireFromString("12.21"),
		AdultAge: 18,
	}
)

type fixture struct {
	store    *memStore
	notifier *recordingNotifier
	svc      *Service
	employee *domain.User
	employer *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	notifier := &recordingNotifier{}
	f := &fixture{
		store:    store,
		notifier: notifier,
		svc:      New(store, notifier, testRates),
	}
	f.employer = store.addUser(domain.User{Username: "boss", Role: domain.RoleEmployer})
	f.employee = store.addUser(domain.User{
		Username:   "worker",
		Role:       domain.RoleEmployee,
		HourlyRate: decimal.NewNullDecimal(decimal.NewFromInt(10)),
	})
	return f
}

func (f *fixture) shift(t *testing.T, employeeID int64, date domain.Date, start, end string) *domain.Shift {
	t.Helper()

	startTime, err := domain.ParseClockTime(start)
	require.NoError(t, err)
	endTime, err := domain.ParseClockTime(end)
	require.NoError(t, err)

	s := &domain.Shift{
		Name:       "早班",
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		EmployeeID: employeeID,
		CreatedBy:  f.employer.ID,
	}
	require.NoError(t, f.svc.CreateShift(context.Background(), s))
	return s
}

// assertConsistent 检查所有已保存的汇总都等于对应周期内流水的总和
func (f *fixture) assertConsistent(t *testing.T) {
	t.Helper()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for key, w := range f.store.data.weekly {
		want := sumEntries(f.store.data.entries, w.UserID, w.Week.Start(), w.Week.End())
		assert.True(t, want.Equal(w.Amount), "weekly %s: stored %s, ledger %s", key, w.Amount, want)
	}
	for key, m := range f.store.data.monthly {
		want := sumEntries(f.store.data.entries, m.UserID, m.Month.Start(), m.Month.End())
		assert.True(t, want.Equal(m.Gross), "monthly %s: stored %s, ledger %s", key, m.Gross, want)
		assert.True(t, m.Gross.Sub(m.Tax).Equal(m.Net), "monthly %s: net mismatch", key)
	}
}

func TestCreateShift(t *testing.T) {
	f := newFixture(t)

	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "16:20")
	assert.Equal(t, domain.ShiftPending, s.Status)
	assert.Equal(t, domain.ShiftEmployerCreated, s.Type)
	assert.Equal(t, "7.33", s.HoursWorked.StringFixed(2))

	own := &domain.Shift{
		Name:       "自报班次",
		Date:       domain.NewDate(2024, time.March, 16),
		StartTime:  domain.NewClockTime(10, 0),
		EndTime:    domain.NewClockTime(12, 0),
		EmployeeID: f.employee.ID,
		CreatedBy:  f.employee.ID,
	}
	require.NoError(t, f.svc.CreateShift(context.Background(), own))
	assert.Equal(t, domain.ShiftEmployeeSubmitted, own.Type)
}

func TestCreateShiftValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reversed := &domain.Shift{
		Name:       "夜班",
		Date:       domain.NewDate(2024, time.March, 15),
		StartTime:  domain.NewClockTime(22, 0),
		EndTime:    domain.NewClockTime(6, 0),
		EmployeeID: f.employee.ID,
	}
	assert.ErrorIs(t, f.svc.CreateShift(ctx, reversed), domain.ErrInvalidTimeRange)

	forEmployer := &domain.Shift{
		Name:       "早班",
		Date:       domain.NewDate(2024, time.March, 15),
		StartTime:  domain.NewClockTime(9, 0),
		EndTime:    domain.NewClockTime(10, 0),
		EmployeeID: f.employer.ID,
	}
	assert.ErrorIs(t, f.svc.CreateShift(ctx, forEmployer), domain.ErrInvalidInput)

	unknown := &domain.Shift{
		Name:       "早班",
		Date:       domain.NewDate(2024, time.March, 15),
		StartTime:  domain.NewClockTime(9, 0),
		EndTime:    domain.NewClockTime(10, 0),
		EmployeeID: 999,
	}
	assert.ErrorIs(t, f.svc.CreateShift(ctx, unknown), domain.ErrNotFound)
}

func TestApproveShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")

	result, err := f.svc.ApproveShift(ctx, s.ID, false, testNow)
	require.NoError(t, err)

	assert.Equal(t, "75.00", result.Pay.Gross.StringFixed(2))
	assert.Equal(t, "75.00", result.WeeklyTotal.StringFixed(2))
	assert.Equal(t, "75.00", result.Monthly.Gross.StringFixed(2))
	assert.True(t, result.Monthly.Tax.IsZero())
	assert.Equal(t, domain.RateSourceExplicit, result.RateSource)

	stored, err := f.store.GetShiftByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftApproved, stored.Status)
	assert.Equal(t, "75.00", stored.Pay.Decimal.StringFixed(2))
	assert.Equal(t, "75.00", stored.WeeklyEarnings.Decimal.StringFixed(2))
	assert.Equal(t, testNow, *stored.DecidedAt)

	assert.Equal(t, 1, f.store.entriesForShift(s.ID))
	require.Len(t, f.store.data.notifications, 1)
	n := f.store.data.notifications[0]
	assert.Equal(t, domain.NotificationShiftApproved, n.Type)
	assert.Equal(t, f.employee.ID, n.UserID)
	assert.Contains(t, n.Message, "£75.00")

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, domain.NotificationShiftApproved, f.notifier.calls[0].Type)

	f.assertConsistent(t)
}

func TestApproveShiftOvertime(t *testing.T) {
	f := newFixture(t)
	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")

	result, err := f.svc.ApproveShift(context.Background(), s.ID, true, testNow)
	require.NoError(t, err)
	assert.Equal(t, "112.50", result.Pay.Gross.StringFixed(2))
	assert.True(t, result.Shift.Overtime)
	assert.Contains(t, f.store.data.notifications[0].Message, "加班")
}

func TestApproveShiftTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")

	_, err := f.svc.ApproveShift(ctx, s.ID, false, testNow)
	require.NoError(t, err)

	_, err = f.svc.ApproveShift(ctx, s.ID, false, testNow.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.svc.RejectShift(ctx, s.ID, testNow.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	assert.Equal(t, 1, f.store.entriesForShift(s.ID))
	assert.Len(t, f.store.data.notifications, 1)

	weekly, err := f.svc.WeeklyEarnings(ctx, f.employee.ID, s.Date, testNow)
	require.NoError(t, err)
	assert.Equal(t, "75.00", weekly.Amount.StringFixed(2))
}

func TestApproveShiftAgeDefaultRate(t *testing.T) {
	f := newFixture(t)
	dob := domain.NewDate(2008, time.January, 10)
	teen := f.store.addUser(domain.User{Username: "teen", Role: domain.RoleEmployee, DateOfBirth: &dob})
	s := f.shift(t, teen.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")

	result, err := f.svc.ApproveShift(context.Background(), s.ID, false, testNow)
	require.NoError(t, err)
	// 7.5 小时 × 7.55
	assert.Equal(t, "56.63", result.Pay.Gross.StringFixed(2))
	assert.Equal(t, domain.RateSourceAgeDefault, result.RateSource)
}

func TestApproveShiftMissingRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nobody := f.store.addUser(domain.User{Username: "norate", Role: domain.RoleEmployee})
	s := f.shift(t, nobody.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")

	_, err := f.svc.ApproveShift(ctx, s.ID, false, testNow)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "hourlyRate", fe.Field)

	stored, err := f.store.GetShiftByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftPending, stored.Status)
	assert.Empty(t, f.store.data.entries)
	assert.Empty(t, f.notifier.calls)
}

func TestApproveShiftNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ApproveShift(context.Background(), 404, false, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.RejectShift(context.Background(), 404, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApproveShiftRollsBackOnAggregateFailure(t *testing.T) {
	for _, method := range []string{"UpsertWeeklyEarning", "UpsertMonthlySalary", "UpdateShiftDecision", "InsertNotification"} {
		t.Run(method, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")
			f.store.failOn[method] = errConnRefused

			_, err := f.svc.ApproveShift(ctx, s.ID, false, testNow)
			assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
			assert.ErrorIs(t, err, errConnRefused)

			stored, err := f.store.GetShiftByID(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.ShiftPending, stored.Status)
			assert.Empty(t, f.store.data.entries)
			assert.Empty(t, f.store.data.weekly)
			assert.Empty(t, f.store.data.monthly)
			assert.Empty(t, f.store.data.notifications)
			assert.Empty(t, f.notifier.calls)

			// 存储恢复后可以正常审核
			delete(f.store.failOn, method)
			_, err = f.svc.ApproveShift(ctx, s.ID, false, testNow)
			require.NoError(t, err)
			assert.Equal(t, 1, f.store.entriesForShift(s.ID))
		})
	}
}

func TestApproveShiftNotifierFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errConnRefused
	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")

	_, err := f.svc.ApproveShift(context.Background(), s.ID, false, testNow)
	require.NoError(t, err)
	assert.Len(t, f.notifier.calls, 1)
}

func TestRejectShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := domain.NewDate(2024, time.March, 15)
	approved := f.shift(t, f.employee.ID, date, "09:00", "17:00")
	rejected := f.shift(t, f.employee.ID, date.AddDays(1), "09:00", "15:00")

	_, err := f.svc.ApproveShift(ctx, approved.ID, false, testNow)
	require.NoError(t, err)
	weeklyBefore := maps.Clone(f.store.data.weekly)
	monthlyBefore := maps.Clone(f.store.data.monthly)

	shift, err := f.svc.RejectShift(ctx, rejected.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftRejected, shift.Status)
	assert.False(t, shift.Pay.Valid)

	assert.Len(t, f.store.data.entries, 1)
	assert.Equal(t, 0, f.store.entriesForShift(rejected.ID))
	assert.Equal(t, weeklyBefore, f.store.data.weekly)
	assert.Equal(t, monthlyBefore, f.store.data.monthly)

	require.Len(t, f.store.data.notifications, 2)
	assert.Equal(t, domain.NotificationShiftRejected, f.store.data.notifications[1].Type)

	_, err = f.svc.ApproveShift(ctx, rejected.ID, false, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Len(t, f.store.data.entries, 1)
}

func TestAggregatesFollowLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 跨周、跨月、跨 ISO 年的一组班次
	dates := []domain.Date{
		domain.NewDate(2024, time.December, 29),
		domain.NewDate(2024, time.December, 30),
		domain.NewDate(2024, time.December, 31),
		domain.NewDate(2025, time.January, 1),
		domain.NewDate(2025, time.January, 6),
		domain.NewDate(2025, time.February, 3),
	}
	for i, d := range dates {
		s := f.shift(t, f.employee.ID, d, "09:00", "17:00")
		if i%3 == 2 {
			_, err := f.svc.RejectShift(ctx, s.ID, testNow)
			require.NoError(t, err)
			continue
		}
		_, err := f.svc.ApproveShift(ctx, s.ID, i%2 == 0, testNow)
		require.NoError(t, err)
		f.assertConsistent(t)
	}

	_, err := f.svc.RecordDailySalary(ctx, DailySalaryInput{
		UserID:    f.employee.ID,
		Date:      domain.NewDate(2025, time.January, 2),
		StartTime: domain.NewClockTime(10, 0),
		EndTime:   domain.NewClockTime(13, 30),
	}, testNow)
	require.NoError(t, err)
	f.assertConsistent(t)

	weekly, err := f.svc.WeeklyEarnings(ctx, f.employee.ID, domain.NewDate(2025, time.January, 1), testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Week{Year: 2025, Number: 1}, weekly.Week)
	// 12-30 和 01-01 各 75.00，01-02 直接录入 35.00，12-31 已驳回
	assert.Equal(t, "185.00", weekly.Amount.StringFixed(2))

	december, err := f.svc.MonthlySalary(ctx, f.employee.ID, domain.Month{Year: 2024, Month: time.December}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "187.50", december.Gross.StringFixed(2))
	f.assertConsistent(t)
}

func TestRefreshIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")
	_, err := f.svc.ApproveShift(ctx, s.ID, false, testNow)
	require.NoError(t, err)

	month := domain.Month{Year: 2024, Month: time.March}
	first, err := f.svc.MonthlySalary(ctx, f.employee.ID, month, testNow)
	require.NoError(t, err)
	second, err := f.svc.MonthlySalary(ctx, f.employee.ID, month, testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	w1, err := f.svc.WeeklyEarnings(ctx, f.employee.ID, s.Date, testNow)
	require.NoError(t, err)
	w2, err := f.svc.WeeklyEarnings(ctx, f.employee.ID, s.Date, testNow)
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
	assert.Len(t, f.store.data.weekly, 1)
}

func TestRebuildAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.shift(t, f.employee.ID, domain.NewDate(2024, time.March, 15), "09:00", "17:00")
	_, err := f.svc.ApproveShift(ctx, s.ID, false, testNow)
	require.NoError(t, err)

	// 人为破坏汇总数据
	f.store.data.weekly = make(map[string]domain.WeeklyEarning)
	f.store.data.monthly = make(map[string]domain.MonthlySalary)

	result, err := f.svc.RebuildAggregates(ctx, f.employee.ID, domain.NewDate(2024, time.February, 20), domain.NewDate(2024, time.March, 31), testNow)
	require.NoError(t, err)
	assert.Len(t, result.Months, 2)
	assert.Len(t, result.Weeks, 6)
	f.assertConsistent(t)

	_, err = f.svc.RebuildAggregates(ctx, f.employee.ID, domain.NewDate(2024, time.March, 31), domain.NewDate(2024, time.March, 1), testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalaryAfterBills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	month := domain.Month{Year: 2024, Month: time.March}

	_, err := f.svc.RecordDailySalary(ctx, DailySalaryInput{
		UserID:    f.employee.ID,
		Date:      domain.NewDate(2024, time.March, 4),
		StartTime: domain.NewClockTime(8, 0),
		EndTime:   domain.NewClockTime(18, 0),
		Rate:      decimal.NewNullDecimal(decimal.NewFromInt(200)),
	}, testNow)
	require.NoError(t, err)
	f.store.addBill(f.employee.ID, "450.40")
	f.store.addBill(f.employee.ID, "50")

	projection, err := f.svc.SalaryAfterBills(ctx, f.employee.ID, month, testNow)
	require.NoError(t, err)

	// 9.5 小时 × 200 = 1900，税 170.50
	assert.Equal(t, "1900.00", projection.Gross.StringFixed(2))
	assert.Equal(t, "170.50", projection.Tax.StringFixed(2))
	assert.Equal(t, "1729.50", projection.Net.StringFixed(2))
	assert.Equal(t, "500.40", projection.TotalBills.StringFixed(2))
	assert.Equal(t, "1229", projection.NetAfterBills.String())
	assert.Equal(t, "64.68", projection.Percentage.StringFixed(2))

	stored := f.store.data.afterBills[periodKey(f.employee.ID, month)]
	assert.Equal(t, projection.NetAfterBills, stored.NetAfterBills)
}

func TestSalaryAfterBillsZeroGross(t *testing.T) {
	f := newFixture(t)
	f.store.addBill(f.employee.ID, "300")

	projection, err := f.svc.SalaryAfterBills(context.Background(), f.employee.ID, domain.Month{Year: 2024, Month: time.March}, testNow)
	require.NoError(t, err)
	assert.True(t, projection.Gross.IsZero())
	assert.True(t, projection.Percentage.IsZero())
	assert.Equal(t, "-300", projection.NetAfterBills.String())
}

func TestProjectRounding(t *testing.T) {
	monthly := &domain.MonthlySalary{
		Gross: decimal.RequireFromString("1000.00"),
		Tax:   decimal.Zero,
		Net:   decimal.RequireFromString("1000.00"),
	}

	p := Project(monthly, decimal.RequireFromString("333.50"), testNow)
	assert.Equal(t, "667", p.NetAfterBills.String())
	assert.Equal(t, "66.70", p.Percentage.StringFixed(2))
}

func TestPersistenceUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.failOn["SumDailyEntries"] = errConnRefused

	_, err := f.svc.WeeklyEarnings(ctx, f.employee.ID, domain.NewDate(2024, time.March, 15), testNow)
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	_, err = f.svc.MonthlySalary(ctx, f.employee.ID, domain.Month{Year: 2024, Month: time.March}, testNow)
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	_, err = f.svc.SalaryAfterBills(ctx, f.employee.ID, domain.Month{Year: 2024, Month: time.March}, testNow)
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	f.store.failOn["GetUserByID"] = errConnRefused
	_, err = f.svc.HourlyRate(ctx, f.employee.ID, domain.NewDate(2024, time.March, 15))
	assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
}

func TestUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.WeeklyEarnings(ctx, 999, domain.NewDate(2024, time.March, 15), testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.SalaryAfterBills(ctx, 999, domain.Month{Year: 2024, Month: time.March}, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.svc.UpdateHourlyRate(ctx, 999, decimal.NewFromInt(10)), domain.ErrNotFound)
}

func TestHourlyRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.svc.UpdateHourlyRate(ctx, f.employee.ID, decimal.NewFromInt(-1)), domain.ErrInvalidInput)
	require.NoError(t, f.svc.UpdateHourlyRate(ctx, f.employee.ID, decimal.RequireFromString("11.456")))

	rate, err := f.svc.HourlyRate(ctx, f.employee.ID, domain.NewDate(2024, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, "11.46", rate.Rate.StringFixed(2))
	assert.Equal(t, domain.RateSourceExplicit, rate.Source)
}

func TestRecordDailySalaryInvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordDailySalary(context.Background(), DailySalaryInput{
		UserID:    f.employee.ID,
		Date:      domain.NewDate(2024, time.March, 4),
		StartTime: domain.NewClockTime(18, 0),
		EndTime:   domain.NewClockTime(8, 0),
	}, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
	assert.Empty(t, f.store.data.entries)
}

func TestComputeDailyPay(t *testing.T) {
	f := newFixture(t)

	pay, err := f.svc.ComputeDailyPay(decimal.NewNullDecimal(decimal.NewFromInt(10)), domain.NewClockTime(9, 0), domain.NewClockTime(15, 0), false)
	require.NoError(t, err)
	assert.Equal(t, "5.75", pay.PaidHours.String())
	assert.Equal(t, "57.50", pay.Gross.StringFixed(2))
}

func assertMissingField(t *testing.T, err error, field string) {
	t.Helper()

	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, field, fe.Field)
}

func TestComputeDailyPayMissingFields(t *testing.T) {
	f := newFixture(t)
	rate := decimal.NewNullDecimal(decimal.NewFromInt(10))

	_, err := f.svc.ComputeDailyPay(decimal.NullDecimal{}, domain.NewClockTime(9, 0), domain.NewClockTime(17, 0), false)
	assertMissingField(t, err, "rate")

	_, err = f.svc.ComputeDailyPay(rate, domain.ClockTime{}, domain.NewClockTime(17, 0), false)
	assertMissingField(t, err, "startTime")

	_, err = f.svc.ComputeDailyPay(rate, domain.NewClockTime(9, 0), domain.ClockTime{}, false)
	assertMissingField(t, err, "endTime")

	// 00:00 是合法的开始时间
	pay, err := f.svc.ComputeDailyPay(rate, domain.NewClockTime(0, 0), domain.NewClockTime(4, 0), false)
	require.NoError(t, err)
	assert.Equal(t, "40.00", pay.Gross.StringFixed(2))
}

func TestRecordDailySalaryMissingTimes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordDailySalary(ctx, DailySalaryInput{
		UserID: f.employee.ID,
		Date:   domain.NewDate(2024, time.March, 4),
	}, testNow)
	assertMissingField(t, err, "startTime")

	_, err = f.svc.RecordDailySalary(ctx, DailySalaryInput{
		UserID:    f.employee.ID,
		Date:      domain.NewDate(2024, time.March, 4),
		StartTime: domain.NewClockTime(9, 0),
	}, testNow)
	assertMissingField(t, err, "endTime")

	assert.Empty(t, f.store.data.entries)
	assert.Empty(t, f.store.data.weekly)
	assert.Empty(t, f.store.data.monthly)
}

func TestCreateShiftMissingTimes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	noTimes := &domain.Shift{
		Name:       "早班",
		Date:       domain.NewDate(2024, time.March, 15),
		EmployeeID: f.employee.ID,
		CreatedBy:  f.employer.ID,
	}
	assertMissingField(t, f.svc.CreateShift(ctx, noTimes), "startTime")

	noEnd := &domain.Shift{
		Name:       "早班",
		Date:       domain.NewDate(2024, time.March, 15),
		StartTime:  domain.NewClockTime(9, 0),
		EmployeeID: f.employee.ID,
		CreatedBy:  f.employer.ID,
	}
	assertMissingField(t, f.svc.CreateShift(ctx, noEnd), "endTime")

	assert.Empty(t, f.store.data.shifts)
}
