package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/payroll"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Payslip struct {
	Employee    *domain.User
	Projection  *domain.SalaryAfterBills
	Entries     []*domain.DailyEntry
	Breakdown   []payroll.BandTax
	GeneratedAt time.Time
}

var printer = message.NewPrinter(language.BritishEnglish)

// money 小数部分直接取自 decimal，只有整数部分交给 printer 添加千位分隔符
func money(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = printer.Sprintf("%d", n)
	}
	return sign + "£" + whole + "." + frac
}

// BuildPayslipPDF 生成月度工资单。内置字体不支持中文，因此工资单使用英文
func BuildPayslipPDF(p *Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s", p.Projection.Month), false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", p.Projection.Month.Start(), p.Projection.Month.End()))
	pdf.Ln(6)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Employee: %s (#%d)", p.Employee.Username, p.Employee.ID)))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", p.GeneratedAt.Format(time.DateTime)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Worked days")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(50, 7, "Date")
	pdf.Cell(40, 7, "Hours")
	pdf.Cell(40, 7, "Amount")
	pdf.Cell(40, 7, "Source")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	if len(p.Entries) == 0 {
		pdf.Cell(0, 7, "No earnings recorded for this period.")
		pdf.Ln(7)
	}
	for _, e := range p.Entries {
		source := "direct entry"
		if e.ShiftID != nil {
			source = fmt.Sprintf("shift #%d", *e.ShiftID)
		}
		pdf.Cell(50, 7, e.Date.String())
		pdf.Cell(40, 7, e.HoursWorked.StringFixed(2))
		pdf.Cell(40, 7, tr(money(e.Amount)))
		pdf.Cell(40, 7, source)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Income tax")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, bt := range p.Breakdown {
		upper := "and above"
		if bt.To.Valid {
			upper = "to " + money(bt.To.Decimal)
		}
		pdf.Cell(90, 7, tr(fmt.Sprintf("%s %s at %s%%", money(bt.From), upper, bt.Rate.Mul(decimal.NewFromInt(100)).String())))
		pdf.Cell(40, 7, tr(money(bt.Tax)))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Gross pay", p.Projection.Gross},
		{"Income tax", p.Projection.Tax},
		{"Net pay", p.Projection.Net},
		{"Bills", p.Projection.TotalBills},
		{"Net after bills", p.Projection.NetAfterBills},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.Cell(90, 7, row.label)
		pdf.Cell(40, 7, tr(money(row.value)))
		pdf.Ln(7)
	}
	pdf.Cell(90, 7, "Remaining after bills")
	pdf.Cell(40, 7, p.Projection.Percentage.StringFixed(2)+"%")
	pdf.Ln(7)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
