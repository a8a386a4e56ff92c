package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

// Band 是一个年度税级，UpTo 为该税级的累计年收入上限，最后一级没有上限
type Band struct {
	UpTo decimal.NullDecimal
	Rate decimal.Decimal
}

// UKBands 依次为个人免税额、基本税率、高税率和附加税率
var UKBands = []Band{
	{UpTo: decimal.NewNullDecimal(decimal.NewFromInt(12570)), Rate: decimal.Zero},
	{UpTo: decimal.NewNullDecimal(decimal.NewFromInt(12570 + 37700)), Rate: decimal.RequireFromString("0.20")},
	{UpTo: decimal.NewNullDecimal(decimal.NewFromInt(12570 + 37700 + 125140)), Rate: decimal.RequireFromString("0.40")},
	{Rate: decimal.RequireFromString("0.45")},
}

var monthsPerYear = decimal.NewFromInt(12)

// BandTax 是月收入落在某个税级内的部分及其税额，金额均按月计算且未取整
type BandTax struct {
	From    decimal.Decimal
	To      decimal.NullDecimal
	Rate    decimal.Decimal
	Taxable decimal.Decimal
	Tax     decimal.Decimal
}

// MonthlyBreakdown 按超额累进的方式计算月收入 gross 在各税级的税额
func MonthlyBreakdown(gross decimal.Decimal) ([]BandTax, error) {
	if gross.IsNegative() {
		return nil, fmt.Errorf("%w: 月收入不能为负数", domain.ErrInvalidInput)
	}

	breakdown := make([]BandTax, 0, len(UKBands))
	lower := decimal.Zero
	for _, band := range UKBands {
		bt := BandTax{From: lower, Rate: band.Rate}

		upper := gross
		if band.UpTo.Valid {
			monthlyUpper := band.UpTo.Decimal.Div(monthsPerYear)
			bt.To = decimal.NewNullDecimal(monthlyUpper)
			upper = decimal.Min(gross, monthlyUpper)
		}

		if upper.GreaterThan(lower) {
			bt.Taxable = upper.Sub(lower)
			bt.Tax = bt.Taxable.Mul(band.Rate)
		}
		breakdown = append(breakdown, bt)

		if !band.UpTo.Valid {
			break
		}
		lower = bt.To.Decimal
	}

	return breakdown, nil
}

// MonthlyTax 返回月收入 gross 应缴的所得税，保留两位小数
func MonthlyTax(gross decimal.Decimal) (decimal.Decimal, error) {
	breakdown, err := MonthlyBreakdown(gross)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, bt := range breakdown {
		total = total.Add(bt.Tax)
	}

	return total.Round(2), nil
}
