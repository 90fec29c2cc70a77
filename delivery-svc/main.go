package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"food-delivery/config"
	httpapi "food-delivery/delivery-svc/internal/api/http"
	"food-delivery/delivery-svc/internal/service"
	"food-delivery/delivery-svc/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := config.NewLogger("delivery-svc", cfg.LogLevel)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to load catalog")
	}

	pricingPolicy, err := service.ParsePricingPolicy(cfg.PricingPolicy)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	statusPolicy, err := service.ParseTransitionPolicy(cfg.StatusPolicy)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	publisher, closers := buildPublisher(cfg, log)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	firstID := max(1000, catalog.MaxID()+1)
	orderSvc := service.NewOrderService(storage.NewOrderStore(firstID), catalog,
		service.WithPricingPolicy(pricingPolicy),
		service.WithTransitionPolicy(statusPolicy),
		service.WithPublisher(publisher),
		service.WithQRGenerator(service.DefaultQRGenerator{BaseURL: cfg.PublicURL}),
		service.WithLogger(log),
	)
	handler := httpapi.NewHandler(service.NewCatalogService(catalog), orderSvc, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":           srv.Addr,
			"restaurants":    len(catalog.AllRestaurants()),
			"pricing_policy": pricingPolicy,
			"status_policy":  cfg.StatusPolicy,
		}).Info("delivery service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func loadCatalog(cfg config.Config) (*storage.CatalogStore, error) {
	switch cfg.CatalogSource {
	case "embedded":
		return storage.EmbeddedCatalog()
	case "file":
		return storage.LoadCatalogFile(cfg.CatalogFile)
	case "postgres":
		db := config.MustInitPostgres(cfg)
		defer db.Close()
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(); err != nil {
			return nil, err
		}
		return repo.LoadCatalog()
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

// buildPublisher connects the brokers named in EVENTS_BROKERS. A broker that cannot be reached
// is logged and skipped so orders keep flowing.
func buildPublisher(cfg config.Config, log logrus.FieldLogger) (service.EventPublisher, []io.Closer) {
	var publishers []storage.Publisher
	var closers []io.Closer

	if cfg.BrokerEnabled("kafka") {
		writer := config.NewKafkaWriter(cfg)
		writer.Completion = func(messages []kafka.Message, err error) {
			if err != nil {
				log.WithError(err).WithField("messages", len(messages)).Warn("kafka delivery failed")
			}
		}
		publishers = append(publishers, storage.NewKafkaPublisher(writer))
		closers = append(closers, writer)
	}

	if cfg.BrokerEnabled("rabbitmq") {
		conn, ch, err := config.DialRabbitMQ(cfg)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, notifications disabled")
		} else if pub, err := storage.NewRabbitPublisher(ch); err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, notifications disabled")
			conn.Close()
		} else {
			publishers = append(publishers, pub)
			closers = append(closers, conn)
		}
	}

	if len(publishers) == 0 {
		return nil, closers
	}
	return storage.NewMultiPublisher(publishers...), closers
}
