package mocks

import (
	"github.com/stretchr/testify/mock"

	"food-delivery/delivery-svc/internal/domain"
)

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogRepository) AllRestaurants() []domain.Restaurant {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Restaurant)
}

func (m *CatalogRepository) Restaurant(id int) (domain.Restaurant, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Restaurant), args.Error(1)
}

func (m *CatalogRepository) Menu(restaurantID int) ([]domain.MenuItem, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *CatalogRepository) MenuItem(id int) (domain.MenuItem, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.MenuItem), args.Bool(1)
}
