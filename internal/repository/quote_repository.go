package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/model"
)

// QuoteRepository provides data access methods for the cached market quote
// table.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// UpsertQuote stores the latest price for a symbol, replacing any previous
// cached value.
func (s *QuoteRepository) UpsertQuote(ctx context.Context, q model.Quote) error {
	query := `
		INSERT INTO quote (symbol, price, currency, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			currency = excluded.currency,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		q.Symbol,
		q.Price.String(),
		q.Currency,
		q.UpdatedAt.UTC().Format(TimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}

	return nil
}

// GetQuote retrieves the cached quote for a symbol. Returns
// apperrors.ErrQuoteNotFound when the symbol has never been quoted.
func (s *QuoteRepository) GetQuote(ctx context.Context, symbol string) (model.Quote, error) {
	query := `
		SELECT symbol, price, currency, updated_at
		FROM quote
		WHERE symbol = ?
	`

	var q model.Quote
	var priceStr, updatedAtStr string

	err := s.db.QueryRowContext(ctx, query, symbol).Scan(
		&q.Symbol,
		&priceStr,
		&q.Currency,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quote{}, apperrors.ErrQuoteNotFound
	}
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to scan quote row: %w", err)
	}

	q.Price, err = decimal.NewFromString(priceStr)
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to parse quote price: %w", err)
	}

	q.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return q, nil
}
