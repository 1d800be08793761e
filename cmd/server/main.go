package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	tk, err := tokens.New(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var events mykafka.Publisher = mykafka.Nop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = producer
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var search service.ProductSearcher
	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := es.NewClient(esCtx, cfg)
		esCancel()
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			search = &es.ProductIndex{ES: client, Index: cfg.ESIndex}
		}
	}

	e := httpserver.New(logger, httpserver.NewDeps(conn, tk, events, search))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := db.Close(conn); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
