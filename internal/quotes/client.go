package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client is the upstream market-data contract. Implementations must honor
// context cancellation; the caller imposes the timeout.
type Client interface {
	FetchQuote(ctx context.Context, symbol string) (MarketQuote, error)
}

// FinanceClient fetches quotes from the Yahoo Finance chart API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// FetchQuote retrieves the most recent market price for a symbol.
// The regular market price from the chart metadata is preferred; when it is
// absent the latest daily close is used instead.
func (c *FinanceClient) FetchQuote(ctx context.Context, symbol string) (MarketQuote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	response, err := c.query(ctx, url)
	if err != nil {
		return MarketQuote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return MarketQuote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]

	price := result.Meta.RegularMarketPrice
	if price == 0 {
		if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
			return MarketQuote{}, fmt.Errorf("no close prices returned for symbol %s", symbol)
		}
		closes := result.Indicators.Quote[0].Close
		price = closes[len(closes)-1]
	}
	if price <= 0 {
		return MarketQuote{}, fmt.Errorf("no usable price for symbol %s", symbol)
	}

	asOf := time.Now().UTC()
	if len(result.Timestamp) > 0 {
		asOf = time.Unix(result.Timestamp[len(result.Timestamp)-1], 0).UTC()
	}

	return MarketQuote{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Price:    decimal.NewFromFloat(price),
		AsOf:     asOf,
	}, nil
}

// query executes an HTTP request against the chart API and decodes the
// response, surfacing any API level error message.
func (c *FinanceClient) query(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
