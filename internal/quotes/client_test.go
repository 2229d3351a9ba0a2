package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestClient(server *httptest.Server) *FinanceClient {
	return &FinanceClient{
		httpClient: server.Client(),
		baseURL:    server.URL,
	}
}

func TestFetchQuote(t *testing.T) {
	t.Run("uses regular market price from metadata", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"chart": {
					"result": [{
						"meta": {"currency": "USD", "symbol": "AAPL", "regularMarketPrice": 187.25},
						"timestamp": [1718805600],
						"indicators": {"quote": [{"close": [185.0, 186.5]}]}
					}],
					"error": null
				}
			}`))
		}))
		defer server.Close()

		quote, err := newTestClient(server).FetchQuote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("FetchQuote() returned unexpected error: %v", err)
		}

		if !quote.Price.Equal(decimal.RequireFromString("187.25")) {
			t.Errorf("Price = %s, want 187.25", quote.Price)
		}
		if quote.Symbol != "AAPL" || quote.Currency != "USD" {
			t.Errorf("Quote = %+v, want AAPL/USD", quote)
		}
		if quote.AsOf.Unix() != 1718805600 {
			t.Errorf("AsOf = %v, want unix 1718805600", quote.AsOf)
		}
	})

	t.Run("falls back to last close when market price is missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"chart": {
					"result": [{
						"meta": {"currency": "USD", "symbol": "AAPL"},
						"timestamp": [1718805600],
						"indicators": {"quote": [{"close": [185.0, 186.5]}]}
					}],
					"error": null
				}
			}`))
		}))
		defer server.Close()

		quote, err := newTestClient(server).FetchQuote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("FetchQuote() returned unexpected error: %v", err)
		}

		if !quote.Price.Equal(decimal.RequireFromString("186.5")) {
			t.Errorf("Price = %s, want 186.5", quote.Price)
		}
	})

	t.Run("surfaces upstream API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"chart": {"result": [], "error": "No data found, symbol may be delisted"}}`))
		}))
		defer server.Close()

		_, err := newTestClient(server).FetchQuote(context.Background(), "BOGUS")
		if err == nil {
			t.Fatalf("Expected error for delisted symbol, got nil")
		}
	})

	t.Run("errors on empty result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
		}))
		defer server.Close()

		_, err := newTestClient(server).FetchQuote(context.Background(), "AAPL")
		if err == nil {
			t.Fatalf("Expected error for empty result, got nil")
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(server).FetchQuote(ctx, "AAPL")
		if err == nil {
			t.Fatalf("Expected error for cancelled context, got nil")
		}
	})
}
