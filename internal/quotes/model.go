package quotes

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Only the fields needed to extract the latest close price and
// symbol metadata are mapped.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// MarketQuote is the parsed result of one symbol lookup: the most recent
// price converted to a decimal at the API boundary, so all downstream money
// arithmetic stays fixed-point.
type MarketQuote struct {
	Symbol   string
	Currency string
	Price    decimal.Decimal
	AsOf     time.Time
}
