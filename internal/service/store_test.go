package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

type memData struct {
	users         map[int64]domain.User
	shifts        map[int64]domain.Shift
	entries       []domain.DailyEntry
	weekly        map[string]domain.WeeklyEarning
	monthly       map[string]domain.MonthlySalary
	afterBills    map[string]domain.SalaryAfterBills
	bills         map[int64][]decimal.Decimal
	notifications []domain.Notification
	nextID        int64
}

func (d *memData) clone() memData {
	return memData{
		users:         maps.Clone(d.users),
		shifts:        maps.Clone(d.shifts),
		entries:       slices.Clone(d.entries),
		weekly:        maps.Clone(d.weekly),
		monthly:       maps.Clone(d.monthly),
		afterBills:    maps.Clone(d.afterBills),
		bills:         maps.Clone(d.bills),
		notifications: slices.Clone(d.notifications),
		nextID:        d.nextID,
	}
}

// memStore 是 domain.Store 的内存实现，InTx 失败时恢复到事务开始前的快照
type memStore struct {
	mu   sync.Mutex
	data memData
	// failOn 中的方法被调用时返回对应的错误
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		data: memData{
			users:      make(map[int64]domain.User),
			shifts:     make(map[int64]domain.Shift),
			weekly:     make(map[string]domain.WeeklyEarning),
			monthly:    make(map[string]domain.MonthlySalary),
			afterBills: make(map[string]domain.SalaryAfterBills),
			bills:      make(map[int64][]decimal.Decimal),
		},
		failOn: make(map[string]error),
	}
}

func (m *memStore) fail(method string) error {
	return m.failOn[method]
}

func (m *memStore) id() int64 {
	m.data.nextID++
	return m.data.nextID
}

func (m *memStore) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	m.mu.Lock()
	snapshot := m.data.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.data = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) addUser(u domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	m.data.users[u.ID] = u
	return &u
}

func (m *memStore) addBill(userID int64, amount string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.bills[userID] = append(m.data.bills[userID], decimal.RequireFromString(amount))
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := m.fail("GetUserByID"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.data.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (m *memStore) LockUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := m.fail("LockUser"); err != nil {
		return nil, err
	}
	return m.GetUserByID(ctx, id)
}

func (m *memStore) UpdateUserHourlyRate(ctx context.Context, id int64, rate decimal.Decimal) error {
	if err := m.fail("UpdateUserHourlyRate"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.data.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.HourlyRate = decimal.NewNullDecimal(rate)
	m.data.users[id] = u
	return nil
}

func (m *memStore) CreateShift(ctx context.Context, shift *domain.Shift) error {
	if err := m.fail("CreateShift"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	shift.ID = m.id()
	m.data.shifts[shift.ID] = *shift
	return nil
}

func (m *memStore) GetShiftByID(ctx context.Context, id int64) (*domain.Shift, error) {
	if err := m.fail("GetShiftByID"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data.shifts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *memStore) LockShift(ctx context.Context, id int64) (*domain.Shift, error) {
	if err := m.fail("LockShift"); err != nil {
		return nil, err
	}
	return m.GetShiftByID(ctx, id)
}

func (m *memStore) UpdateShiftDecision(ctx context.Context, shift *domain.Shift) error {
	if err := m.fail("UpdateShiftDecision"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data.shifts[shift.ID]; !ok {
		return sql.ErrNoRows
	}
	m.data.shifts[shift.ID] = *shift
	return nil
}

func (m *memStore) InsertDailyEntry(ctx context.Context, entry *domain.DailyEntry) error {
	if err := m.fail("InsertDailyEntry"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ShiftID != nil {
		for _, e := range m.data.entries {
			if e.ShiftID != nil && *e.ShiftID == *entry.ShiftID {
				return fmt.Errorf("duplicate key value violates unique constraint \"daily_keep_shift_id_key\"")
			}
		}
	}
	entry.ID = m.id()
	m.data.entries = append(m.data.entries, *entry)
	return nil
}

func (m *memStore) SumDailyEntries(ctx context.Context, userID int64, from, to domain.Date) (decimal.Decimal, error) {
	if err := m.fail("SumDailyEntries"); err != nil {
		return decimal.Zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return sumEntries(m.data.entries, userID, from, to), nil
}

func sumEntries(entries []domain.DailyEntry, userID int64, from, to domain.Date) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func periodKey(userID int64, period fmt.Stringer) string {
	return fmt.Sprintf("%d/%s", userID, period)
}

func (m *memStore) UpsertWeeklyEarning(ctx context.Context, w *domain.WeeklyEarning) error {
	if err := m.fail("UpsertWeeklyEarning"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.weekly[periodKey(w.UserID, w.Week)] = *w
	return nil
}

func (m *memStore) UpsertMonthlySalary(ctx context.Context, ms *domain.MonthlySalary) error {
	if err := m.fail("UpsertMonthlySalary"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.monthly[periodKey(ms.UserID, ms.Month)] = *ms
	return nil
}

func (m *memStore) UpsertSalaryAfterBills(ctx context.Context, s *domain.SalaryAfterBills) error {
	if err := m.fail("UpsertSalaryAfterBills"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.afterBills[periodKey(s.UserID, s.Month)] = *s
	return nil
}

func (m *memStore) SumBills(ctx context.Context, userID int64) (decimal.Decimal, error) {
	if err := m.fail("SumBills"); err != nil {
		return decimal.Zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return decimal.Sum(decimal.Zero, m.data.bills[userID]...), nil
}

func (m *memStore) InsertNotification(ctx context.Context, n *domain.Notification) error {
	if err := m.fail("InsertNotification"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.id()
	m.data.notifications = append(m.data.notifications, *n)
	return nil
}

func (m *memStore) entriesForShift(shiftID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.data.entries {
		if e.ShiftID != nil && *e.ShiftID == shiftID {
			n++
		}
	}
	return n
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []domain.Notification
	err   error
}

func (r *recordingNotifier) NotifyShiftDecision(ctx context.Context, user *domain.User, shift *domain.Shift, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, *n)
	return r.err
}
