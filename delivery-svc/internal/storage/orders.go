package storage

import (
	"sync"

	"food-delivery/delivery-svc/internal/domain"
)

// OrderStore keeps orders in memory for the lifetime of the process. One instance is created at
// start-up and handed to its consumers.
type OrderStore struct {
	mu     sync.Mutex
	orders map[int]domain.Order
	seq    []int
	nextID int
}

// NewOrderStore returns a store whose first id is firstID.
func NewOrderStore(firstID int) *OrderStore {
	return &OrderStore{
		orders: make(map[int]domain.Order),
		nextID: firstID,
	}
}

// NextID reserves a fresh id. Ids are strictly increasing and never reused.
func (s *OrderStore) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserveID()
}

func (s *OrderStore) reserveID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *OrderStore) Put(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(order)
}

func (s *OrderStore) put(order domain.Order) {
	if _, exists := s.orders[order.ID]; !exists {
		s.seq = append(s.seq, order.ID)
	}
	s.orders[order.ID] = order.Clone()
	if order.ID >= s.nextID {
		s.nextID = order.ID + 1
	}
}

// Create assigns the next id and stores the order built for it in one critical section, so
// ids follow insertion order even under concurrent callers.
func (s *OrderStore) Create(build func(id int) domain.Order) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := build(s.reserveID())
	s.put(order)
	return order.Clone()
}

func (s *OrderStore) Get(id int) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order.Clone(), nil
}

// Update applies mutate to the stored order under the store lock. The order is left untouched
// when mutate returns an error.
func (s *OrderStore) Update(id int, mutate func(order *domain.Order) error) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order = order.Clone()
	if err := mutate(&order); err != nil {
		return domain.Order{}, err
	}
	s.orders[id] = order
	return order.Clone(), nil
}

func (s *OrderStore) SetStatus(id int, status domain.Status) (domain.Order, error) {
	return s.Update(id, func(order *domain.Order) error {
		order.Status = status
		return nil
	})
}

// List returns every order in creation order.
func (s *OrderStore) List() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]domain.Order, 0, len(s.seq))
	for _, id := range s.seq {
		orders = append(orders, s.orders[id].Clone())
	}
	return orders
}
