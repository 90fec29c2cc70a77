package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"food-delivery/stats-svc/internal/domain"
)

const readRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    logrus.FieldLogger
}

func NewConsumer(reader MessageReader, store StoreInterface, log logrus.FieldLogger) *Consumer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    log,
	}
}

// Start reads until ctx is cancelled. Malformed messages and store failures are logged and
// skipped.
func (c *Consumer) Start(ctx context.Context) error {
	c.Log.Info("starting order events consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Log.WithError(err).Error("error reading message")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.WithError(err).WithField("offset", message.Offset).Warn("error unmarshaling message")
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			c.Log.WithError(err).WithField("order_id", event.OrderID).Error("error processing event")
		}
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) error {
	log := c.Log.WithFields(logrus.Fields{
		"event":         event.Type,
		"order_id":      event.OrderID,
		"restaurant_id": event.RestaurantID,
	})

	switch event.Type {
	case domain.EventOrderCreated:
		if err := c.Store.ApplyCreated(ctx, event); err != nil {
			return err
		}
	case domain.EventOrderStatusChanged:
		if err := c.Store.ApplyStatus(ctx, event); err != nil {
			return err
		}
	default:
		log.Debug("ignoring event")
		return nil
	}

	log.Debug("event processed")
	return nil
}
