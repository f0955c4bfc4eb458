package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/txnsheet/internal/api/handlers"
	"github.com/dvloznov/txnsheet/internal/api/middleware"
	"github.com/dvloznov/txnsheet/internal/classifier"
	"github.com/dvloznov/txnsheet/internal/config"
	"github.com/dvloznov/txnsheet/internal/creds"
	"github.com/dvloznov/txnsheet/internal/logger"
	"github.com/dvloznov/txnsheet/internal/sheets"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log := logger.New("")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set - classification calls will fail")
	}
	if err := cfg.RequireSheets(); err != nil {
		log.Fatal().Err(err).Msg("Invalid spreadsheet configuration")
	}

	ctx := context.Background()

	gemini := classifier.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)

	// The writer is only constructed when writes are enabled; the classify-only
	// deployment shape never touches the spreadsheet.
	var writer handlers.TransactionWriter
	if cfg.WriteEnabled {
		ts, err := creds.TokenSource(ctx, cfg.SheetsCreds)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load spreadsheet credentials")
		}
		svc, err := sheets.NewService(ctx, ts, cfg.SpreadsheetID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create spreadsheet service")
		}
		writer = sheets.NewWriter(svc)
	}

	opts := handlers.Options{
		SharedSecret:  cfg.SharedSecret,
		DenialMessage: cfg.DenialMessage,
		WriteEnabled:  cfg.WriteEnabled,
	}
	messagesHandler := handlers.NewMessagesHandler(gemini, writer, opts, log)
	recordsHandler := handlers.NewRecordsHandler(writer, opts, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			messagesHandler.ProcessMessage(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/v1/records", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			recordsHandler.AppendRecord(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Bool("write_enabled", cfg.WriteEnabled).
			Bool("secret_required", cfg.SharedSecret != "").
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
