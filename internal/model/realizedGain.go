package model

import "github.com/shopspring/decimal"

// RealizedSaleResult is the outcome of matching one sell transaction against
// the FIFO queue of open purchase lots for its symbol.
//
// When Unmatched is true the sale could not be fully covered by prior buys
// (the ledger sold more shares than it ever bought). The whole sale is then
// withheld from TotalProfit rather than partially credited, and Profit is
// left at zero.
type RealizedSaleResult struct {
	Transaction Transaction     `json:"transaction"`
	Profit      decimal.Decimal `json:"profit"`
	Unmatched   bool            `json:"unmatched"`
}

// RealizedGainsReport lists the realized result of every sale in a user's
// ledger, in original chronological order, together with the total profit
// over all fully matched sales.
type RealizedGainsReport struct {
	Results     []RealizedSaleResult `json:"results"`
	TotalProfit decimal.Decimal      `json:"totalProfit"`
}
