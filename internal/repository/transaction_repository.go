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

// TransactionRepository provides data access methods for the ledger
// transaction table. The table is append-only: rows are inserted once and
// never updated or deleted by the application.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetLedger retrieves a user's full transaction history in replay order:
// ascending by creation time, with ties broken by id so the ordering is a
// deterministic total order. This is the read contract the accounting
// projections depend on.
func (s *TransactionRepository) GetLedger(ctx context.Context, userID string) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, shares, price, type, created_at
		FROM "transaction"
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	return s.queryTransactions(ctx, query, userID)
}

// ListTransactions retrieves a user's transaction history newest first, for
// display purposes.
func (s *TransactionRepository) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, shares, price, type, created_at
		FROM "transaction"
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	return s.queryTransactions(ctx, query, userID)
}

// GetTransaction retrieves a single transaction by ID, scoped to its owner.
func (s *TransactionRepository) GetTransaction(ctx context.Context, userID, transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, shares, price, type, created_at
		FROM "transaction"
		WHERE id = ? AND user_id = ?
	`

	row := s.db.QueryRowContext(ctx, query, transactionID, userID)

	transaction, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// InsertTransaction appends a new transaction to the ledger.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, user_id, symbol, shares, price, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Symbol,
		t.Shares,
		t.Price.String(),
		t.Type,
		t.CreatedAt.UTC().Format(TimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetHeldSymbols returns the distinct symbols appearing in any user's
// ledger. Used by the background quote refresh to know which prices to keep
// warm.
func (s *TransactionRepository) GetHeldSymbols(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT symbol
		FROM "transaction"
		ORDER BY symbol ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query held symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}

func (s *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		transaction, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// scanTransaction reads one transaction row. Price travels as decimal text
// so money never passes through binary floating point.
func scanTransaction(scan func(...any) error) (model.Transaction, error) {
	var t model.Transaction
	var priceStr, createdAtStr string

	err := scan(
		&t.ID,
		&t.UserID,
		&t.Symbol,
		&t.Shares,
		&priceStr,
		&t.Type,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	t.Price, err = decimal.NewFromString(priceStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse price: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return t, nil
}
