package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/will1001/flashcard-japan/internal/api"
	"github.com/will1001/flashcard-japan/internal/domain/card"
	"github.com/will1001/flashcard-japan/internal/infrastructure/config"
	"github.com/will1001/flashcard-japan/internal/service"
	"github.com/will1001/flashcard-japan/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := store.Open(startCtx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		cancelStart()
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.CatalogPath != "" {
		if err := seedCatalog(startCtx, db, cfg.CatalogPath, logger); err != nil {
			cancelStart()
			logger.Error("failed to import catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
	}
	cancelStart()

	quizzes := service.NewQuizService(db, db, logger)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go quizzes.RunSweeper(sweepCtx, time.Minute)
	handler := api.NewHandler(db, quizzes, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(cfg.AllowedOrigins)(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "driver", db.Driver())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// seedCatalog upserts the cards of a JSON catalog file into the store.
func seedCatalog(ctx context.Context, db *store.SQLStore, path string, logger *slog.Logger) error {
	cards, err := store.LoadCatalogFile(path)
	if err != nil {
		return err
	}
	if err := card.ValidateCatalog(cards); err != nil {
		return err
	}
	n, err := db.ImportCards(ctx, cards)
	if err != nil {
		return err
	}
	logger.Info("catalog imported", "path", path, "cards", n)
	return nil
}
