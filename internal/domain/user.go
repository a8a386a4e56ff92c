package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
)

type User struct {
	ID           int64               `json:"id"`
	Username     string              `json:"username"`
	PasswordHash string              `json:"-"`
	Email        *string             `json:"email"`
	Role         Role                `json:"role"`
	HourlyRate   decimal.NullDecimal `json:"hourlyRate"`
	DateOfBirth  *Date               `json:"dateOfBirth"`
	CreatedAt    time.Time           `json:"createdAt"`
	Version      int32               `json:"-"`
}

// DefaultRates 是用户没有设置时薪时按年龄使用的默认时薪
type DefaultRates struct {
	Under18  decimal.Decimal
	Adult    decimal.Decimal
	AdultAge int
}

type RateSource string

const (
	RateSourceExplicit   RateSource = "explicit"
	RateSourceAgeDefault RateSource = "age_default"
)

// AgeOn 返回用户在 on 这一天的周岁
func (u *User) AgeOn(on Date) int {
	if u.DateOfBirth == nil {
		return 0
	}
	dob := *u.DateOfBirth
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}

// EffectiveHourlyRate 优先使用用户设置的时薪，否则按 on 当天的年龄选择默认时薪
func (u *User) EffectiveHourlyRate(on Date, defaults DefaultRates) (decimal.Decimal, RateSource, error) {
	if u.HourlyRate.Valid {
		return u.HourlyRate.Decimal, RateSourceExplicit, nil
	}
	if u.DateOfBirth == nil {
		return decimal.Zero, "", InvalidField("hourlyRate", "用户未设置时薪且缺少出生日期")
	}
	if u.AgeOn(on) < defaults.AdultAge {
		return defaults.Under18, RateSourceAgeDefault, nil
	}
	return defaults.Adult, RateSourceAgeDefault, nil
}
