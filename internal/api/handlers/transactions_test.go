package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stockx/stockx-backend/internal/api/handlers"
	"github.com/stockx/stockx-backend/internal/api/middleware"
	"github.com/stockx/stockx-backend/internal/api/request"
	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/testutil"
)

// TestCreateTransactionEndpoint tests the order recording endpoint.
func TestCreateTransactionEndpoint(t *testing.T) {
	t.Run("records a priced buy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		prices := testutil.NewStubPriceSource(map[string]string{"AAPL": "187.25"})
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/transaction", user.ID, request.CreateTransactionRequest{
			Symbol: "aapl",
			Type:   "buy",
			Shares: 10,
		})
		rec := httptest.NewRecorder()
		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Status = %d, want 201. Body: %s", rec.Code, rec.Body.String())
		}

		var created model.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if created.Symbol != "AAPL" || created.Shares != 10 {
			t.Errorf("Transaction = %+v, want 10 AAPL", created)
		}
		if created.Price.String() != "187.25" {
			t.Errorf("Price = %s, want 187.25", created.Price)
		}
	})

	t.Run("rejects invalid payload with field errors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		prices := testutil.NewStubPriceSource(nil)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/transaction", user.ID, request.CreateTransactionRequest{
			Symbol: "AAPL",
			Type:   "short",
			Shares: 0,
		})
		rec := httptest.NewRecorder()
		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Status = %d, want 400. Body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects unknown fields in the body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		prices := testutil.NewStubPriceSource(nil)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

		body := strings.NewReader(`{"symbol": "AAPL", "type": "buy", "shares": 1, "price": 1}`)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", body)
		req = req.WithContext(middleware.WithUserID(req.Context(), user.ID))
		rec := httptest.NewRecorder()
		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Status = %d, want 400. Body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns bad gateway when no price is available", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		prices := testutil.NewStubPriceSource(nil)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

		req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/transaction", user.ID, request.CreateTransactionRequest{
			Symbol: "AAPL",
			Type:   "buy",
			Shares: 1,
		})
		rec := httptest.NewRecorder()
		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("Status = %d, want 502. Body: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestGetTransactionEndpoint tests single-transaction retrieval.
func TestGetTransactionEndpoint(t *testing.T) {
	t.Run("returns an owned transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		prices := testutil.NewStubPriceSource(nil)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

		tx := testutil.NewTransaction(user.ID).WithSymbol("MSFT").Buy(3, "410").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+tx.ID, map[string]string{"uuid": tx.ID})
		req = req.WithContext(middleware.WithUserID(req.Context(), user.ID))
		rec := httptest.NewRecorder()
		handler.GetTransaction(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
		}

		var got model.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.ID != tx.ID || got.Symbol != "MSFT" {
			t.Errorf("Transaction = %+v, want %s", got, tx.ID)
		}
	})

	t.Run("hides other users' transactions behind 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prices := testutil.NewStubPriceSource(nil)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

		tx := testutil.NewTransaction(owner.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+tx.ID, map[string]string{"uuid": tx.ID})
		req = req.WithContext(middleware.WithUserID(req.Context(), other.ID))
		rec := httptest.NewRecorder()
		handler.GetTransaction(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Status = %d, want 404. Body: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestListTransactionsEndpoint tests history listing.
func TestListTransactionsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db)
	prices := testutil.NewStubPriceSource(nil)
	handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db, prices))

	testutil.NewTransaction(user.ID).WithSymbol("AAPL").Build(t, db)
	testutil.NewTransaction(user.ID).WithSymbol("MSFT").Build(t, db)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/transaction", user.ID)
	rec := httptest.NewRecorder()
	handler.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &transactions); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(transactions) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(transactions))
	}
}
