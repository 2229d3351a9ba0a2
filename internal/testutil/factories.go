package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/repository"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithUsername("alice").
//	    WithEmail("alice@example.org").
//	    Build(t, db)
type UserBuilder struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	id := MakeID()
	return &UserBuilder{
		ID:       id,
		Username: "testuser",
		// Unique per builder so the email constraint never collides
		Email:        fmt.Sprintf("user-%s@example.org", id[:8]),
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		CreatedAt:    time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPasswordHash sets a custom bcrypt hash.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	query := `
		INSERT INTO user (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Username, b.Email, b.PasswordHash, b.CreatedAt.UTC().Format(repository.TimeFormat))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Username:     b.Username,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		CreatedAt:    b.CreatedAt,
	}
}

// CreateUser creates a user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test ledger
// transactions. Shares are stored signed; use Buy and Sell to get the sign
// and type right.
//
// Example usage:
//
//	tx := testutil.NewTransaction(user.ID).
//	    WithSymbol("AAPL").
//	    Buy(10, "100").
//	    WithCreatedAt(someTime).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	UserID    string
	Symbol    string
	Shares    int64
	Price     decimal.Decimal
	Type      string
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults: a buy
// of 10 AAPL at 100.
func NewTransaction(userID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		UserID:    userID,
		Symbol:    "AAPL",
		Shares:    10,
		Price:     decimal.NewFromInt(100),
		Type:      model.TransactionTypeBuy,
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithSymbol sets the symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// Buy makes the transaction a buy of the given share count at the given
// decimal price string.
func (b *TransactionBuilder) Buy(shares int64, price string) *TransactionBuilder {
	b.Shares = shares
	b.Price = decimal.RequireFromString(price)
	b.Type = model.TransactionTypeBuy
	return b
}

// Sell makes the transaction a sell of the given share count at the given
// decimal price string. Shares are stored negative.
func (b *TransactionBuilder) Sell(shares int64, price string) *TransactionBuilder {
	b.Shares = -shares
	b.Price = decimal.RequireFromString(price)
	b.Type = model.TransactionTypeSell
	return b
}

// WithCreatedAt sets the ledger timestamp. Tests ordering-sensitive
// behavior.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, user_id, symbol, shares, price, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.UserID,
		b.Symbol,
		b.Shares,
		b.Price.String(),
		b.Type,
		b.CreatedAt.UTC().Format(repository.TimeFormat),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		UserID:    b.UserID,
		Symbol:    b.Symbol,
		Shares:    b.Shares,
		Price:     b.Price,
		Type:      b.Type,
		CreatedAt: b.CreatedAt.UTC(),
	}
}
