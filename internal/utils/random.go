package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	var sb strings.Builder
	sb.WriteString(commonSurnames[rand.Intn(len(commonSurnames))])
	for i, n := 0, rand.Intn(2)+1; i < n; i++ {
		sb.WriteString(commonNameCharacters[rand.Intn(len(commonNameCharacters))])
	}
	return sb.String()
}

const digits = "0123456789"

// GenerateUsernameFromChineseName 取每个字拼音的前若干个字母，再加上 1~3 位数字
func GenerateUsernameFromChineseName(chineseName string) string {
	var sb strings.Builder
	for _, py := range pinyin.LazyConvert(chineseName, nil) {
		sb.WriteString(py[:rand.Intn(len(py))+1])
	}
	for i, n := 0, rand.Intn(3)+1; i < n; i++ {
		sb.WriteByte(digits[rand.Intn(len(digits))])
	}
	return sb.String()
}

// GenerateRandomDateOfBirth 生成一个在 today 时年龄位于 [minAge, maxAge] 的出生日期
func GenerateRandomDateOfBirth(today domain.Date, minAge, maxAge int) domain.Date {
	age := minAge + rand.Intn(maxAge-minAge+1)
	return today.AddDays(-age*365 - rand.Intn(365))
}

// GenerateRandomHourlyRate 有一半的概率不设置时薪，此时使用按年龄的默认时薪
func GenerateRandomHourlyRate() decimal.NullDecimal {
	if rand.Intn(2) == 0 {
		return decimal.NullDecimal{}
	}
	pence := 1000 + rand.Intn(1000) // £10.00 ~ £19.99
	return decimal.NewNullDecimal(decimal.New(int64(pence), -2))
}

func GenerateRandomEmployee(password string, emailDomainName string, today domain.Date) (*domain.User, error) {
	username := GenerateUsernameFromChineseName(GenerateRandomChineseName())
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	email := username + "@" + emailDomainName
	dob := GenerateRandomDateOfBirth(today, 16, 45)

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		Email:        &email,
		Role:         domain.RoleEmployee,
		HourlyRate:   GenerateRandomHourlyRate(),
		DateOfBirth:  &dob,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// RandomTimeOffset 返回 [0, max) 之间以 step 为步长的随机时长，用于打散种子数据的时间
func RandomTimeOffset(max, step time.Duration) time.Duration {
	n := int(max / step)
	if n <= 0 {
		return 0
	}
	return time.Duration(rand.Intn(n)) * step
}
