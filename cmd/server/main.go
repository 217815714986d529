package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/billetera/billetera/internal/auth"
	"github.com/billetera/billetera/internal/config"
	"github.com/billetera/billetera/internal/handler"
	"github.com/billetera/billetera/internal/mail"
	"github.com/billetera/billetera/internal/service"
	"github.com/billetera/billetera/internal/storage/sqlite"
	"github.com/billetera/billetera/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	mailer := mail.NewSender(cfg)

	h := handler.New(
		authenticator,
		tokens,
		service.NewExpenseService(store),
		service.NewIncomeService(store),
		service.NewCreditCardService(store),
		service.NewInvitationService(store, mailer),
		service.NewSummaryService(store),
		store,
	)

	router := h.Router()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	sweeper, err := service.NewExpirySweeper(store, cfg.SweepSchedule)
	if err != nil {
		slog.Error("Failed to schedule expiry sweep", "schedule", cfg.SweepSchedule, "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()
	slog.Info("Expiry sweep scheduled", "schedule", cfg.SweepSchedule)

	// h2c lets clients speak HTTP/2 without TLS when the server sits
	// behind a terminating proxy.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h2cHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	slog.Info("Server starting", "address", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
