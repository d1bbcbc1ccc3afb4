package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GolpiraElmiA/OSRTickets/internal/auth"
	"github.com/GolpiraElmiA/OSRTickets/internal/config"
	"github.com/GolpiraElmiA/OSRTickets/internal/handler"
	"github.com/GolpiraElmiA/OSRTickets/internal/kafka"
	"github.com/GolpiraElmiA/OSRTickets/internal/notify"
	"github.com/GolpiraElmiA/OSRTickets/internal/repository"
	"github.com/GolpiraElmiA/OSRTickets/internal/router"
	"github.com/GolpiraElmiA/OSRTickets/internal/store"
)

// API is the HTTP application (the default run mode).
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI wires the whole service: Drive store, repository (initial load
// happens here), authorizer, notifiers, handlers, router.
func NewAPI(ctx context.Context, cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	driveStore, err := store.NewDrive(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	repo, err := repository.New(ctx, driveStore, cfg.DriveFileName)
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	authz := auth.New(cfg.OperatorTokens, cfg.AdminSecret)
	notifier := notify.NewClient(cfg.NotifyWebhookURL)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicTicket)

	ticketHandler := handler.NewTicketHandler(repo, authz, notifier, producer, cfg.Sections)
	healthHandler := handler.NewHealthHandler(repo)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(ticketHandler, healthHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv, producer: producer}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	logrus.Infof("HTTP server listening on %s", a.httpSrv.Addr)
	logrus.Infof("  Swagger UI:  %s/swagger", base)
	logrus.Infof("  Health:      %s/health", base)
	logrus.Infof("  API v1:      %s/api/v1/", base)
	logrus.Infof("  Ticket file: %s (Drive)", a.cfg.DriveFileName)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		logrus.Warnf("kafka close: %v", err)
	}
	return nil
}
