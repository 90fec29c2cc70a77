package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"food-delivery/pricing"
	"food-delivery/stats-svc/internal/domain"
)

const (
	itemNamesKey = "stats:items"
	statusesKey  = "stats:statuses"
)

func restaurantKey(restaurantID int) string {
	return fmt.Sprintf("stats:restaurant:%d", restaurantID)
}

func restaurantItemsKey(restaurantID int) string {
	return fmt.Sprintf("stats:restaurant:%d:items", restaurantID)
}

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// ApplyCreated counts the order, its revenue and the quantity of every item in one transaction.
func (s *Store) ApplyCreated(ctx context.Context, event domain.OrderEvent) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		key := restaurantKey(event.RestaurantID)
		pipe.HIncrBy(ctx, key, "orders", 1)
		pipe.HIncrBy(ctx, key, "revenue_cents", int64(event.Total))

		itemsKey := restaurantItemsKey(event.RestaurantID)
		for _, item := range event.Items {
			member := strconv.Itoa(item.ID)
			pipe.ZIncrBy(ctx, itemsKey, float64(item.Quantity), member)
			if item.Name != "" {
				pipe.HSet(ctx, itemNamesKey, member, item.Name)
			}
		}
		if event.Status != "" {
			pipe.HIncrBy(ctx, statusesKey, event.Status, 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply order %d: %w", event.OrderID, err)
	}
	return nil
}

// ApplyStatus moves one order from its previous status bucket to the new one.
func (s *Store) ApplyStatus(ctx context.Context, event domain.OrderEvent) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if event.PreviousStatus != "" {
			pipe.HIncrBy(ctx, statusesKey, event.PreviousStatus, -1)
		}
		pipe.HIncrBy(ctx, statusesKey, event.Status, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply status of order %d: %w", event.OrderID, err)
	}
	return nil
}

func (s *Store) RestaurantStats(ctx context.Context, restaurantID int, limit int) (domain.RestaurantStats, error) {
	stats := domain.RestaurantStats{RestaurantID: restaurantID, TopItems: []domain.ItemStat{}}

	fields, err := s.rdb.HGetAll(ctx, restaurantKey(restaurantID)).Result()
	if err != nil {
		return stats, fmt.Errorf("read restaurant %d: %w", restaurantID, err)
	}
	stats.Orders, _ = strconv.ParseInt(fields["orders"], 10, 64)
	revenue, _ := strconv.ParseInt(fields["revenue_cents"], 10, 64)
	stats.Revenue = pricing.Amount(revenue)

	if limit <= 0 {
		return stats, nil
	}
	top, err := s.rdb.ZRevRangeWithScores(ctx, restaurantItemsKey(restaurantID), 0, int64(limit-1)).Result()
	if err != nil {
		return stats, fmt.Errorf("read top items of restaurant %d: %w", restaurantID, err)
	}
	if len(top) == 0 {
		return stats, nil
	}

	members := make([]string, len(top))
	for i, z := range top {
		members[i] = z.Member.(string)
	}
	names, err := s.rdb.HMGet(ctx, itemNamesKey, members...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return stats, fmt.Errorf("read item names: %w", err)
	}

	for i, z := range top {
		id, _ := strconv.Atoi(members[i])
		item := domain.ItemStat{ItemID: id, Quantity: int64(z.Score)}
		if i < len(names) {
			if name, ok := names[i].(string); ok {
				item.Name = name
			}
		}
		stats.TopItems = append(stats.TopItems, item)
	}
	return stats, nil
}

func (s *Store) StatusCounts(ctx context.Context) (map[string]int64, error) {
	fields, err := s.rdb.HGetAll(ctx, statusesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read status counts: %w", err)
	}
	counts := make(map[string]int64, len(fields))
	for status, v := range fields {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		counts[status] = n
	}
	return counts, nil
}
