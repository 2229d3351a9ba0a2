package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stockx/stockx-backend/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true,
}

// symbolPattern matches a normalized ticker: 1-10 uppercase letters,
// digits, dots or hyphens (e.g. AAPL, BRK.B).
var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)

// ValidateCreateTransaction validates a transaction creation request.
// The engine downstream assumes well-formed transactions, so every
// malformed order has to be rejected here, at ingestion.
//
// Required fields:
//   - symbol: 1-10 characters, normalized to uppercase before matching
//   - type: must be one of: buy, sell
//   - shares: must be a positive integer (the type carries the direction)
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	} else if !symbolPattern.MatchString(symbol) {
		errors["symbol"] = fmt.Sprintf("invalid symbol: %s", req.Symbol)
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
