package quotes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/repository"
)

// Service is the price oracle used by the rest of the application. It
// layers a database-backed quote cache over the upstream market-data
// client: lookups serve from cache while the quote is fresh, otherwise they
// fetch upstream under a bounded timeout and fall back to the stale cached
// value if the fetch fails.
type Service struct {
	client    Client
	quoteRepo *repository.QuoteRepository
	maxAge    time.Duration
	timeout   time.Duration
}

// NewService creates a quote Service with the provided client, cache
// repository and freshness/timeout policy.
func NewService(client Client, quoteRepo *repository.QuoteRepository, maxAge, timeout time.Duration) *Service {
	return &Service{
		client:    client,
		quoteRepo: quoteRepo,
		maxAge:    maxAge,
		timeout:   timeout,
	}
}

// GetPrice returns the current market price for a symbol.
// Returns apperrors.ErrPriceUnavailable when neither the upstream API nor
// the cache can supply a price; callers decide whether that is fatal.
func (s *Service) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	cached, cacheErr := s.quoteRepo.GetQuote(ctx, symbol)
	if cacheErr == nil && time.Since(cached.UpdatedAt) < s.maxAge {
		return cached.Price, nil
	}

	quote, err := s.fetchAndStore(ctx, symbol)
	if err == nil {
		return quote.Price, nil
	}

	// Upstream failed: a stale quote is still better than none.
	if cacheErr == nil {
		return cached.Price, nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrPriceUnavailable, symbol)
}

// RefreshSymbols fetches fresh quotes for the given symbols, continuing on
// per-symbol failures. Returns the number of symbols refreshed and the
// first error encountered, if any.
func (s *Service) RefreshSymbols(ctx context.Context, symbols []string) (int, error) {
	var refreshed int
	var firstErr error

	for _, symbol := range symbols {
		if _, err := s.fetchAndStore(ctx, symbol); err != nil {
			log.Printf("quote refresh failed for %s: %v", symbol, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		refreshed++
	}

	return refreshed, firstErr
}

func (s *Service) fetchAndStore(ctx context.Context, symbol string) (MarketQuote, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quote, err := s.client.FetchQuote(fetchCtx, symbol)
	if err != nil {
		return MarketQuote{}, err
	}

	currency := quote.Currency
	if currency == "" {
		currency = "USD"
	}

	stored := model.Quote{
		Symbol:    symbol,
		Price:     quote.Price,
		Currency:  currency,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.quoteRepo.UpsertQuote(ctx, stored); err != nil {
		// The fetched price is still usable even if caching it failed.
		log.Printf("failed to cache quote for %s: %v", symbol, err)
	}

	return quote, nil
}
