package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockx/stockx-backend/internal/api/request"
	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/repository"
)

// TransactionService handles the ledger write path and transaction
// retrieval. The write path is append-only: a recorded transaction is never
// updated or deleted, which is what lets every report recompute from source.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	prices          PriceSource
}

// NewTransactionService creates a new TransactionService with the provided
// repository and price source dependencies.
func NewTransactionService(transactionRepo *repository.TransactionRepository, prices PriceSource) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		prices:          prices,
	}
}

// CreateTransaction records a buy or sell for the user. The execution price
// is taken from the price oracle at recording time; if no price is
// available the order is rejected outright rather than recorded at a made-up
// price. Shares are stored signed so the kind and the sign always agree:
// buys positive, sells negative.
//
// Malformed requests (zero shares, unknown type, bad symbol) are expected to
// be rejected by validation before this method runs.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	price, err := s.prices.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	shares := req.Shares
	if req.Type == model.TransactionTypeSell {
		shares = -shares
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Symbol:    symbol,
		Shares:    shares,
		Price:     price,
		Type:      req.Type,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// ListTransactions retrieves the user's transaction history, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return s.transactionRepo.ListTransactions(ctx, userID)
}

// GetTransaction retrieves a single transaction owned by the user.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, userID, transactionID)
}
