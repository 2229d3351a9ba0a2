package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stockx/stockx-backend/internal/api/handlers"
	custommiddleware "github.com/stockx/stockx-backend/internal/api/middleware"
	"github.com/stockx/stockx-backend/internal/auth"
	"github.com/stockx/stockx-backend/internal/config"
	"github.com/stockx/stockx-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	db *sql.DB,
	userService *service.UserService,
	transactionService *service.TransactionService,
	accountingService *service.AccountingService,
	tokens *auth.TokenManager,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	authMiddleware := custommiddleware.NewAuthenticator(tokens)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.GetVersion)
		})

		// Account namespace
		r.Route("/users", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(userService)
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(authMiddleware.Authenticate).Get("/me", userHandler.Me)
		})

		// Ledger write path and history
		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Use(authMiddleware.Authenticate)
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		// Read-side projections
		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(accountingService)
			r.Use(authMiddleware.Authenticate)
			r.Get("/", portfolioHandler.Snapshot)
			r.Get("/realized-gains", portfolioHandler.RealizedGains)
		})
	})

	return r
}
