package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-delivery/config"
	httpapi "food-delivery/stats-svc/internal/api/http"
	"food-delivery/stats-svc/internal/service"
	"food-delivery/stats-svc/internal/storage"
)

const consumerGroup = "stats-svc"

func main() {
	cfg := config.Load()
	log := config.NewLogger("stats-svc", cfg.LogLevel)

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()
	store := storage.NewStore(rdb)

	reader := config.NewKafkaReader(cfg, consumerGroup)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, store, log)
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("consumer stopped")
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.StatsPort,
		Handler:      httpapi.NewRouter(httpapi.NewHandler(store, log)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("stats service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
