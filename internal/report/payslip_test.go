package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
)

func TestBuildPayslipPDF(t *testing.T) {
	gross := decimal.RequireFromString("1900")
	breakdown, err := payroll.MonthlyBreakdown(gross)
	require.NoError(t, err)

	shiftID := int64(7)
	p := &Payslip{
		Employee: &domain.User{ID: 2, Username: "worker"},
		Projection: &domain.SalaryAfterBills{
			Month:         domain.Month{Year: 2024, Month: time.March},
			Gross:         gross,
			Tax:           decimal.RequireFromString("170.5"),
			Net:           decimal.RequireFromString("1729.5"),
			TotalBills:    decimal.RequireFromString("500.4"),
			NetAfterBills: decimal.RequireFromString("1229"),
			Percentage:    decimal.RequireFromString("64.68"),
		},
		Entries: []*domain.DailyEntry{
			{ShiftID: &shiftID, Date: domain.NewDate(2024, time.March, 4), HoursWorked: decimal.RequireFromString("9.5"), Amount: gross},
		},
		Breakdown:   breakdown,
		GeneratedAt: time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC),
	}

	out, err := BuildPayslipPDF(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestBuildPayslipPDFWithoutEntries(t *testing.T) {
	p := &Payslip{
		Employee: &domain.User{ID: 2, Username: "worker"},
		Projection: &domain.SalaryAfterBills{
			Month: domain.Month{Year: 2024, Month: time.April},
		},
		GeneratedAt: time.Now(),
	}

	out, err := BuildPayslipPDF(p)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "£0.00",
		"12.5":        "£12.50",
		"2.675":       "£2.68",
		"1234567.005": "£1,234,567.01",
		"999.999":     "£1,000.00",
		"1729.5":      "£1,729.50",
		"-1250.4":     "-£1,250.40",
		"-0.001":      "£0.00",
	}

	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}
