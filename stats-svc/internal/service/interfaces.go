package service

import (
	"context"

	"github.com/segmentio/kafka-go"

	"food-delivery/stats-svc/internal/domain"
	"food-delivery/stats-svc/internal/storage"
)

type StoreInterface interface {
	ApplyCreated(ctx context.Context, event domain.OrderEvent) error
	ApplyStatus(ctx context.Context, event domain.OrderEvent) error
}

type StatsInterface interface {
	RestaurantStats(ctx context.Context, restaurantID int, limit int) (domain.RestaurantStats, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	Process(ctx context.Context, event domain.OrderEvent) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ StatsInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
