package handlers

import (
	"net/http"

	"github.com/stockx/stockx-backend/internal/api/middleware"
	"github.com/stockx/stockx-backend/internal/api/response"
	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the two ledger read
// operations: the portfolio snapshot and the realized-gains report. Both
// are computed fresh from the transaction history on every request.
type PortfolioHandler struct {
	accountingService *service.AccountingService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(accountingService *service.AccountingService) *PortfolioHandler {
	return &PortfolioHandler{
		accountingService: accountingService,
	}
}

// Snapshot handles GET requests for the authenticated user's current
// holdings valued at market prices. Symbols without a live price come back
// with a zero market price; the snapshot itself never fails over a single
// symbol.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioSnapshot
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	snapshot, err := h.accountingService.PortfolioSnapshot(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// RealizedGains handles GET requests for the authenticated user's
// realized-gains report: one row per sale in chronological order, with
// oversold sales flagged per row instead of failing the report.
//
// Endpoint: GET /api/portfolio/realized-gains
// Response: 200 OK with RealizedGainsReport
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *PortfolioHandler) RealizedGains(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	report, err := h.accountingService.RealizedGains(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetRealizedGains.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
