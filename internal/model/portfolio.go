package model

import "github.com/shopspring/decimal"

// PortfolioPosition represents the currently open position in one symbol.
// TotalCostBasis is the signed running balance of money invested: buys add
// shares*price, sells subtract at their own sale price, giving the net
// capital currently at risk rather than a FIFO-matched cost figure.
//
// A position only exists while NetShares is nonzero; fully closed symbols
// are omitted from the snapshot entirely.
type PortfolioPosition struct {
	Symbol         string          `json:"symbol"`
	NetShares      int64           `json:"netShares"`
	TotalCostBasis decimal.Decimal `json:"totalCostBasis"`
	MarketPrice    decimal.Decimal `json:"marketPrice"`
	MarketValue    decimal.Decimal `json:"marketValue"`
	UnrealizedGain decimal.Decimal `json:"unrealizedGain"`
}

// PortfolioSnapshot is the current state of a user's holdings, valued at
// live market prices. Symbols whose price lookup failed are included with a
// zero market price rather than dropped.
type PortfolioSnapshot struct {
	Positions        []PortfolioPosition `json:"positions"`
	TotalMarketValue decimal.Decimal     `json:"totalMarketValue"`
}
