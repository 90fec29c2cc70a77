package mocks

import (
	"github.com/stretchr/testify/mock"

	"food-delivery/delivery-svc/internal/domain"
)

// OrderRepository records calls. Create and Update run the supplied callbacks against the
// configured return values so the service logic under test still executes.
type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create expects the id to assign as its return value.
func (m *OrderRepository) Create(build func(id int) domain.Order) domain.Order {
	args := m.Called(build)
	return build(args.Int(0))
}

func (m *OrderRepository) Get(id int) (domain.Order, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Order), args.Error(1)
}

// Update expects the stored order and a lookup error as its return values.
func (m *OrderRepository) Update(id int, mutate func(order *domain.Order) error) (domain.Order, error) {
	args := m.Called(id, mutate)
	if err := args.Error(1); err != nil {
		return domain.Order{}, err
	}
	order := args.Get(0).(domain.Order).Clone()
	if err := mutate(&order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (m *OrderRepository) List() []domain.Order {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Order)
}
