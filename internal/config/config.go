package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
		AutoMigrate        bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	} `envPrefix:"DATABASE_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // 小时，14 天
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD" envDefault:"password123"`
		} `envPrefix:"USER_"`
		Fixtures string `env:"FIXTURES" envDefault:"./internal/seed/data/fixtures.yaml"`
	} `envPrefix:"SEED_"`
	Email struct {
		UserDomain string `env:"USER_DOMAIN" envDefault:"example.com"`
		SMTP       struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	OTP struct {
		Expiration int `env:"EXPIRATION" envDefault:"900"` // 秒，15 分钟
	} `envPrefix:"OTP_"`
	Pay struct {
		RateUnder18 decimal.Decimal `env:"RATE_UNDER_18" envDefault:"7.55"`
		RateAdult   decimal.Decimal `env:"RATE_ADULT" envDefault:"12.21"`
		AdultAge    int             `env:"ADULT_AGE" envDefault:"18"`
	} `envPrefix:"PAY_"`
	Assistant struct {
		HistoryLength int `env:"HISTORY_LENGTH" envDefault:"200"`
	} `envPrefix:"ASSISTANT_"`
}

func LoadConfig() (*Config, error) {
	// .env 文件是可选的，不存在时直接使用环境变量
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

// DefaultRates 返回未设置时薪的用户按年龄使用的默认时薪
func (c *Config) DefaultRates() domain.DefaultRates {
	return domain.DefaultRates{
		Under18:  c.Pay.RateUnder18,
		Adult:    c.Pay.RateAdult,
		AdultAge: c.Pay.AdultAge,
	}
}
