package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"food-delivery/stats-svc/internal/domain"
)

type StoreInterface struct {
	mock.Mock
}

func (m *StoreInterface) ApplyCreated(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *StoreInterface) ApplyStatus(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type StatsInterface struct {
	mock.Mock
}

func (m *StatsInterface) RestaurantStats(ctx context.Context, restaurantID int, limit int) (domain.RestaurantStats, error) {
	args := m.Called(ctx, restaurantID, limit)
	return args.Get(0).(domain.RestaurantStats), args.Error(1)
}

func (m *StatsInterface) StatusCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
