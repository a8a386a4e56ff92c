package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userID"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}
