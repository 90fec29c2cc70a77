package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"food-delivery/delivery-svc/internal/domain"
	"food-delivery/pricing"
)

var ErrReceiptsDisabled = errors.New("receipts are disabled")

const defaultPublishTimeout = 500 * time.Millisecond

type OrderService struct {
	orders      OrderRepository
	catalog     CatalogRepository
	publisher   EventPublisher
	qr          QRGenerator
	pricing     PricingPolicy
	transitions TransitionPolicy
	pubTimeout  time.Duration
	now         func() time.Time
	log         logrus.FieldLogger
}

type OrderOption func(*OrderService)

func WithPricingPolicy(p PricingPolicy) OrderOption {
	return func(s *OrderService) { s.pricing = p }
}

func WithTransitionPolicy(t TransitionPolicy) OrderOption {
	return func(s *OrderService) { s.transitions = t }
}

func WithPublisher(p EventPublisher) OrderOption {
	return func(s *OrderService) { s.publisher = p }
}

func WithQRGenerator(g QRGenerator) OrderOption {
	return func(s *OrderService) { s.qr = g }
}

// WithPublishTimeout bounds how long a request waits on event delivery.
func WithPublishTimeout(d time.Duration) OrderOption {
	return func(s *OrderService) { s.pubTimeout = d }
}

func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

func WithLogger(l logrus.FieldLogger) OrderOption {
	return func(s *OrderService) { s.log = l }
}

func NewOrderService(orders OrderRepository, catalog CatalogRepository, opts ...OrderOption) *OrderService {
	s := &OrderService{
		orders:      orders,
		catalog:     catalog,
		pricing:     PricingTrust,
		transitions: PermissiveTransitions{},
		pubTimeout:  defaultPublishTimeout,
		now:         time.Now,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type quote struct {
	items       []domain.CartLine
	subtotal    pricing.Amount
	deliveryFee pricing.Amount
	total       pricing.Amount
}

func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.RestaurantID <= 0 {
		return domain.Order{}, fmt.Errorf("%w: restaurantId is required", domain.ErrValidation)
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: items are required", domain.ErrValidation)
	}

	q, err := s.quote(req)
	if err != nil {
		return domain.Order{}, err
	}

	order := s.orders.Create(func(id int) domain.Order {
		createdAt := s.now()
		return domain.Order{
			ID:                id,
			RestaurantID:      req.RestaurantID,
			Items:             q.items,
			DeliveryAddress:   req.DeliveryAddress,
			CustomerName:      req.CustomerName,
			CustomerPhone:     req.CustomerPhone,
			Subtotal:          q.subtotal,
			DeliveryFee:       q.deliveryFee,
			Total:             q.total,
			Status:            domain.StatusPending,
			CreatedAt:         createdAt,
			EstimatedDelivery: createdAt.Add(domain.DeliveryWindow),
		}
	})

	s.log.WithFields(logrus.Fields{
		"order_id":      order.ID,
		"restaurant_id": order.RestaurantID,
		"total":         order.Total.String(),
	}).Info("order created")

	s.publish(ctx, domain.OrderEvent{
		Type:         domain.EventOrderCreated,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		Items:        order.Items,
		Total:        order.Total,
		Timestamp:    order.CreatedAt,
	})

	return order, nil
}

func (s *OrderService) quote(req domain.CreateOrderRequest) (quote, error) {
	items := append([]domain.CartLine(nil), req.Items...)

	switch s.pricing {
	case PricingRecompute:
		return priced(items, req.DeliveryFee)

	case PricingCatalog:
		rest, err := s.catalog.Restaurant(req.RestaurantID)
		if err != nil {
			if domain.IsNotFound(err) {
				return quote{}, fmt.Errorf("%w: unknown restaurant %d", domain.ErrValidation, req.RestaurantID)
			}
			return quote{}, err
		}
		for i, line := range items {
			if line.Quantity <= 0 {
				return quote{}, fmt.Errorf("%w: quantity for item %d must be positive", domain.ErrValidation, line.ID)
			}
			item, ok := s.catalog.MenuItem(line.ID)
			if !ok || item.RestaurantID != rest.ID {
				return quote{}, fmt.Errorf("%w: item %d is not on the menu of restaurant %d", domain.ErrValidation, line.ID, rest.ID)
			}
			items[i] = domain.CartLine{MenuItem: item, Quantity: line.Quantity}
		}
		return priced(items, rest.DeliveryFee)

	default:
		return quote{
			items:       items,
			subtotal:    req.Subtotal,
			deliveryFee: req.DeliveryFee,
			total:       req.Total,
		}, nil
	}
}

// priced recomputes totals with overflow checks; submitted prices and quantities are arbitrary.
func priced(items []domain.CartLine, deliveryFee pricing.Amount) (quote, error) {
	subtotal, err := pricing.CheckedSubtotal(domain.PriceLines(items))
	if err != nil {
		return quote{}, fmt.Errorf("%w: subtotal: %v", domain.ErrValidation, err)
	}
	total, err := pricing.CheckedTotal(subtotal, deliveryFee)
	if err != nil {
		return quote{}, fmt.Errorf("%w: total: %v", domain.ErrValidation, err)
	}
	return quote{
		items:       items,
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		total:       total,
	}, nil
}

func (s *OrderService) Get(id int) (domain.Order, error) {
	return s.orders.Get(id)
}

func (s *OrderService) List() []domain.Order {
	return s.orders.List()
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status domain.Status) (domain.Order, error) {
	var previous domain.Status
	order, err := s.orders.Update(id, func(o *domain.Order) error {
		if !s.transitions.Allow(o.Status, status) {
			return fmt.Errorf("%w: %q -> %q", domain.ErrInvalidTransition, o.Status, status)
		}
		previous = o.Status
		o.Status = status
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     previous,
		"to":       order.Status,
	}).Info("order status changed")

	s.publish(ctx, domain.OrderEvent{
		Type:           domain.EventOrderStatusChanged,
		OrderID:        order.ID,
		RestaurantID:   order.RestaurantID,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total,
		Timestamp:      s.now(),
	})

	return order, nil
}

func (s *OrderService) Receipt(id int) ([]byte, error) {
	if _, err := s.orders.Get(id); err != nil {
		return nil, err
	}
	if s.qr == nil {
		return nil, ErrReceiptsDisabled
	}
	png, err := s.qr.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate receipt: %w", err)
	}
	return png, nil
}

// Delivery of events is best effort; the order is already stored. The caller going away does
// not cancel delivery, but a slow broker only holds the request for pubTimeout.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.pubTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": event.OrderID,
			"event":    event.Type,
		}).Warn("failed to publish order event")
	}
}
