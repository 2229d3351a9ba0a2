package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockx/stockx-backend/internal/api"
	"github.com/stockx/stockx-backend/internal/auth"
	"github.com/stockx/stockx-backend/internal/config"
	"github.com/stockx/stockx-backend/internal/database"
	"github.com/stockx/stockx-backend/internal/quotes"
	"github.com/stockx/stockx-backend/internal/repository"
	"github.com/stockx/stockx-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Session tokens
	tokens, err := auth.NewTokenManager(cfg.Session.Key, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("Failed to initialize session tokens: %v", err)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Create services
	quoteService := quotes.NewService(
		quotes.NewFinanceClient(),
		quoteRepo,
		cfg.Quotes.MaxAge,
		cfg.Quotes.Timeout,
	)
	userService := service.NewUserService(userRepo, tokens)
	transactionService := service.NewTransactionService(transactionRepo, quoteService)
	accountingService := service.NewAccountingService(transactionRepo, quoteService)

	// Background quote refresh for every symbol held in any ledger
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Quotes.RefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		symbols, err := transactionRepo.GetHeldSymbols(ctx)
		if err != nil {
			log.Printf("Quote refresh: failed to list held symbols: %v", err)
			return
		}
		refreshed, err := quoteService.RefreshSymbols(ctx, symbols)
		if err != nil {
			log.Printf("Quote refresh: %d/%d symbols refreshed, first error: %v", refreshed, len(symbols), err)
			return
		}
		log.Printf("Quote refresh: %d symbols refreshed", refreshed)
	})
	if err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	scheduler.Start()

	// Create router
	router := api.NewRouter(db, userService, transactionService, accountingService, tokens, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
