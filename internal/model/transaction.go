package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values as stored in the ledger.
const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// Transaction represents a single buy or sell recorded in a user's ledger.
// Shares are stored signed: positive for a buy, negative for a sell, and the
// sign always agrees with Type. Transactions are append-only and immutable
// once created; every report is recomputed from the full ordered history.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Symbol    string          `json:"symbol"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// IsBuy reports whether the transaction adds shares to the ledger.
func (t Transaction) IsBuy() bool {
	return t.Type == TransactionTypeBuy
}

// Quantity returns the unsigned number of shares moved by the transaction.
func (t Transaction) Quantity() int64 {
	if t.Shares < 0 {
		return -t.Shares
	}
	return t.Shares
}
