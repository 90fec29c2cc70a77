package service

import (
	"context"

	"food-delivery/delivery-svc/internal/domain"
	"food-delivery/delivery-svc/internal/storage"
)

type CatalogRepository interface {
	AllRestaurants() []domain.Restaurant
	Restaurant(id int) (domain.Restaurant, error)
	Menu(restaurantID int) ([]domain.MenuItem, error)
	MenuItem(id int) (domain.MenuItem, bool)
}

type OrderRepository interface {
	Create(build func(id int) domain.Order) domain.Order
	Get(id int) (domain.Order, error)
	Update(id int, mutate func(order *domain.Order) error) (domain.Order, error)
	List() []domain.Order
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

type CatalogServiceInterface interface {
	List() []domain.Restaurant
	Get(id int) (domain.Restaurant, error)
	Menu(id int) (domain.Restaurant, []domain.MenuItem, error)
	Search(query string) []domain.Restaurant
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error)
	Get(id int) (domain.Order, error)
	List() []domain.Order
	UpdateStatus(ctx context.Context, id int, status domain.Status) (domain.Order, error)
	Receipt(id int) ([]byte, error)
}

var (
	_ CatalogRepository = (*storage.CatalogStore)(nil)
	_ OrderRepository   = (*storage.OrderStore)(nil)
	_ EventPublisher    = (*storage.KafkaPublisher)(nil)
	_ EventPublisher    = (*storage.RabbitPublisher)(nil)
	_ EventPublisher    = storage.MultiPublisher(nil)

	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
)
