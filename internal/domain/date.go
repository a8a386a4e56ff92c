package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date 是不带时区的日历日期，所有日期字符串只在进入系统时解析一次
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, InvalidField("date", "日期格式应为 YYYY-MM-DD")
	}
	return DateOf(t), nil
}

func (d Date) Year() int { return d.year }

func (d Date) Month() time.Month { return d.month }

func (d Date) Day() int { return d.day }

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) After(o Date) bool { return d.Time().After(o.Time()) }

func (d Date) ISOWeek() (year, week int) {
	return d.Time().ISOWeek()
}

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return InvalidField("date", "日期必须是字符串")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("无法将 %T 转换为日期", src)
	}
}

func (d *Date) scanString(s string) error {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// ClockTime 表示一天中的某个时刻，精确到分钟。零值表示未填写，与 00:00 不同
type ClockTime struct {
	minutes int
	set     bool
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{minutes: hour*60 + minute, set: true}
}

func (c ClockTime) IsZero() bool { return !c.set }

// ParseClockTime 接受 HH:MM，也接受数据库 TIME 类型返回的 HH:MM:SS
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClockTime(t.Hour(), t.Minute()), nil
		}
	}
	return ClockTime{}, InvalidField("time", fmt.Sprintf("时间 %q 格式应为 HH:MM", s))
}

func (c ClockTime) Minutes() int { return c.minutes }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return InvalidField("time", "时间必须是字符串")
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	case time.Time:
		*c = NewClockTime(v.Hour(), v.Minute())
		return nil
	default:
		return fmt.Errorf("无法将 %T 转换为时间", src)
	}
}

func (c *ClockTime) scanString(s string) error {
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String() + ":00", nil
}

// Week 是 ISO 周
type Week struct {
	Year   int `json:"year"`
	Number int `json:"weekNumber"`
}

func WeekOf(d Date) Week {
	y, w := d.ISOWeek()
	return Week{Year: y, Number: w}
}

// Start 返回该 ISO 周的周一。1 月 4 日必定位于第 1 周
func (w Week) Start() Date {
	jan4 := NewDate(w.Year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDays(-offset + 7*(w.Number-1))
}

func (w Week) End() Date {
	return w.Start().AddDays(6)
}

func (w Week) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Number)
}

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, InvalidField("month", "月份格式应为 YYYY-MM")
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Start() Date {
	return NewDate(m.Year, m.Month, 1)
}

func (m Month) End() Date {
	return NewDate(m.Year, m.Month+1, 0)
}

func (m Month) Next() Month {
	return MonthOf(NewDate(m.Year, m.Month+1, 1))
}

func (m Month) Before(o Month) bool {
	return m.Start().Before(o.Start())
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
