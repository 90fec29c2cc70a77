package storage

import (
	"context"
	"errors"

	"food-delivery/delivery-svc/internal/domain"
)

// Publisher is implemented by every event backend in this package.
type Publisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// MultiPublisher publishes each event to every backend and joins their errors.
type MultiPublisher []Publisher

func NewMultiPublisher(publishers ...Publisher) MultiPublisher {
	return MultiPublisher(publishers)
}

func (m MultiPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
