package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a cached market price for a symbol.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
