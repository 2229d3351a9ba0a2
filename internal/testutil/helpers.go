package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/auth"
	"github.com/stockx/stockx-backend/internal/repository"
	"github.com/stockx/stockx-backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// StubPriceSource is a deterministic price oracle for tests. Symbols
// missing from Prices report apperrors.ErrPriceUnavailable.
type StubPriceSource struct {
	Prices map[string]decimal.Decimal
}

// GetPrice implements service.PriceSource.
func (s *StubPriceSource) GetPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := s.Prices[symbol]
	if !ok {
		return decimal.Zero, apperrors.ErrPriceUnavailable
	}
	return price, nil
}

// NewStubPriceSource creates a StubPriceSource from symbol -> decimal price
// string pairs.
//
// Example usage:
//
//	prices := testutil.NewStubPriceSource(map[string]string{"AAPL": "250"})
func NewStubPriceSource(prices map[string]string) *StubPriceSource {
	parsed := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		parsed[symbol] = decimal.RequireFromString(price)
	}
	return &StubPriceSource{Prices: parsed}
}

// NewTestAccountingService wires an AccountingService against the test
// database and the given price source.
func NewTestAccountingService(t *testing.T, db *sql.DB, prices service.PriceSource) *service.AccountingService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewAccountingService(transactionRepo, prices)
}

// NewTestTransactionService wires a TransactionService against the test
// database and the given price source.
func NewTestTransactionService(t *testing.T, db *sql.DB, prices service.PriceSource) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(transactionRepo, prices)
}

// NewTestUserService wires a UserService against the test database with a
// throwaway session key.
func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	return service.NewUserService(userRepo, NewTestTokenManager(t))
}

// NewTestTokenManager creates a TokenManager with a freshly generated key
// and a short TTL.
func NewTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()

	key, err := auth.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate session key: %v", err)
	}

	tokens, err := auth.NewTokenManager(key, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}

	return tokens
}
