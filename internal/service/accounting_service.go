package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/repository"
)

// PriceSource supplies current market prices. It is satisfied by
// quotes.Service in production and by stubs in tests.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// AccountingService exposes the two read-side projections over a user's
// ledger: the realized-gains report and the portfolio snapshot. Both fetch
// the full transaction history once and recompute from scratch; nothing is
// cached, so the two reports can never disagree through stale intermediate
// state, and the service holds no mutable state across calls.
type AccountingService struct {
	transactionRepo *repository.TransactionRepository
	prices          PriceSource
}

// NewAccountingService creates a new AccountingService with the provided
// ledger repository and price source.
func NewAccountingService(transactionRepo *repository.TransactionRepository, prices PriceSource) *AccountingService {
	return &AccountingService{
		transactionRepo: transactionRepo,
		prices:          prices,
	}
}

// RealizedGains replays the user's ledger and reports the FIFO-matched
// profit of every sale. An empty ledger yields an empty report with a zero
// total.
func (s *AccountingService) RealizedGains(ctx context.Context, userID string) (model.RealizedGainsReport, error) {
	ledger, err := s.transactionRepo.GetLedger(ctx, userID)
	if err != nil {
		return model.RealizedGainsReport{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	results, totalProfit := ComputeRealizedGains(ledger)

	return model.RealizedGainsReport{
		Results:     results,
		TotalProfit: totalProfit,
	}, nil
}

// PortfolioSnapshot derives the user's open positions from the ledger and
// values them at current market prices. Symbols without a live price appear
// with a zero market price rather than failing the snapshot.
func (s *AccountingService) PortfolioSnapshot(ctx context.Context, userID string) (model.PortfolioSnapshot, error) {
	ledger, err := s.transactionRepo.GetLedger(ctx, userID)
	if err != nil {
		return model.PortfolioSnapshot{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	positions := ComputePositions(ctx, ledger, s.prices.GetPrice)

	totalMarketValue := decimal.Zero
	for _, position := range positions {
		totalMarketValue = totalMarketValue.Add(position.MarketValue)
	}

	return model.PortfolioSnapshot{
		Positions:        positions,
		TotalMarketValue: totalMarketValue,
	}, nil
}
