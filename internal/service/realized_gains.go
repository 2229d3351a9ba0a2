package service

import (
	"github.com/shopspring/decimal"

	"github.com/stockx/stockx-backend/internal/model"
)

// lot is the remaining open quantity from a single buy transaction,
// carrying its original unit cost. Lots live only for the duration of one
// ComputeRealizedGains call; they are rebuilt from the full ledger on every
// query and never persisted.
type lot struct {
	remaining int64
	unitCost  decimal.Decimal
}

// ComputeRealizedGains replays a user's ledger and produces the realized
// profit of every sale using FIFO cost-basis matching.
//
// The input must be the complete transaction history in replay order
// (ascending creation time, ties broken by id). One queue of open lots is
// kept per symbol: buys push a lot onto the queue tail, sells consume lots
// from the head, oldest first. Results preserve the input order, so sales
// across symbols stay interleaved chronologically.
//
// A sale that exhausts its symbol's queue before being fully covered is
// oversold: it is marked unmatched, and none of its profit, not even the
// portion that did match, counts toward the returned total. The engine is a
// pure function of the ordered input; it assumes well-formed transactions
// and has no failure modes of its own.
func ComputeRealizedGains(transactions []model.Transaction) ([]model.RealizedSaleResult, decimal.Decimal) {
	open := make(map[string][]lot)
	results := []model.RealizedSaleResult{}
	totalProfit := decimal.Zero

	for _, transaction := range transactions {
		switch transaction.Type {
		case model.TransactionTypeBuy:
			open[transaction.Symbol] = append(open[transaction.Symbol], lot{
				remaining: transaction.Shares,
				unitCost:  transaction.Price,
			})
		case model.TransactionTypeSell:
			result := matchSale(open, transaction)
			results = append(results, result)
			if !result.Unmatched {
				totalProfit = totalProfit.Add(result.Profit)
			}
		}
	}

	return results, totalProfit
}

// matchSale consumes open lots for the sale's symbol, oldest first, until
// the sold quantity is covered or the queue runs dry.
func matchSale(open map[string][]lot, sale model.Transaction) model.RealizedSaleResult {
	remaining := sale.Quantity()
	queue := open[sale.Symbol]
	profit := decimal.Zero

	for remaining > 0 && len(queue) > 0 {
		head := &queue[0]

		used := head.remaining
		if remaining < used {
			used = remaining
		}

		perShareGain := sale.Price.Sub(head.unitCost)
		profit = profit.Add(perShareGain.Mul(decimal.NewFromInt(used)))

		remaining -= used
		head.remaining -= used
		if head.remaining == 0 {
			queue = queue[1:]
		}
	}

	open[sale.Symbol] = queue

	if remaining > 0 {
		// Oversold: withhold the whole sale, not just the uncovered part.
		return model.RealizedSaleResult{
			Transaction: sale,
			Profit:      decimal.Zero,
			Unmatched:   true,
		}
	}

	return model.RealizedSaleResult{
		Transaction: sale,
		Profit:      profit,
	}
}
