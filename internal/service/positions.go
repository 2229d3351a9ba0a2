package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/stockx/stockx-backend/internal/model"
)

// PriceLookup supplies the current market price for a symbol. Implementations
// may fail per symbol; the position aggregator degrades to a zero price
// instead of aborting the snapshot.
type PriceLookup func(ctx context.Context, symbol string) (decimal.Decimal, error)

// maxConcurrentLookups bounds the number of price lookups in flight for a
// single snapshot.
const maxConcurrentLookups = 4

// ComputePositions derives the currently open positions from a user's full
// transaction history.
//
// Per symbol it sums the signed share counts and the signed cost
// (shares * price, so sells subtract at their own sale price), giving the
// net invested capital rather than a matched cost basis. Symbols whose net
// share count is zero are omitted entirely. Each remaining symbol is priced
// once through the lookup; lookups run concurrently since there is no
// ordering dependency between symbols, but the returned slice is always
// sorted by symbol so the snapshot is deterministic.
func ComputePositions(ctx context.Context, transactions []model.Transaction, lookup PriceLookup) []model.PortfolioPosition {
	type balance struct {
		netShares int64
		totalCost decimal.Decimal
	}

	balances := make(map[string]*balance)
	for _, transaction := range transactions {
		b, ok := balances[transaction.Symbol]
		if !ok {
			b = &balance{totalCost: decimal.Zero}
			balances[transaction.Symbol] = b
		}
		b.netShares += transaction.Shares
		b.totalCost = b.totalCost.Add(transaction.Price.Mul(decimal.NewFromInt(transaction.Shares)))
	}

	symbols := make([]string, 0, len(balances))
	for symbol, b := range balances {
		if b.netShares == 0 {
			continue
		}
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	positions := make([]model.PortfolioPosition, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, symbol := range symbols {
		g.Go(func() error {
			price, err := lookup(gctx, symbol)
			if err != nil {
				// One symbol without a live price must not sink the
				// whole snapshot.
				price = decimal.Zero
			}

			b := balances[symbol]
			marketValue := price.Mul(decimal.NewFromInt(b.netShares))

			positions[i] = model.PortfolioPosition{
				Symbol:         symbol,
				NetShares:      b.netShares,
				TotalCostBasis: b.totalCost,
				MarketPrice:    price,
				MarketValue:    marketValue,
				UnrealizedGain: marketValue.Sub(b.totalCost),
			}
			return nil
		})
	}

	// Lookup errors are absorbed per symbol, so Wait cannot fail.
	_ = g.Wait()

	return positions
}
