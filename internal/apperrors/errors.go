package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or email does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrQuoteNotFound indicates no cached quote exists for a symbol.
	ErrQuoteNotFound = errors.New("quote not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidCredentials indicates that login failed because the email or
	// password did not match a registered user.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates that a registration used an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrPriceUnavailable indicates that no market price could be obtained for a
	// symbol. The write path treats this as fatal for the order; the portfolio
	// snapshot degrades to a zero price instead.
	ErrPriceUnavailable = errors.New("no price available for symbol")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. They indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToGetRealizedGains     = errors.New("failed to compute realized gains")
	ErrFailedToGetPortfolio         = errors.New("failed to compute portfolio snapshot")
	ErrFailedToRetrieveUser         = errors.New("failed to retrieve user")
)

// Authentication errors.
var (
	// ErrMissingToken indicates that a protected route was called without a
	// session token.
	ErrMissingToken = errors.New("missing session token")

	// ErrInvalidToken indicates that a session token failed verification or
	// has expired.
	ErrInvalidToken = errors.New("invalid or expired session token")
)
