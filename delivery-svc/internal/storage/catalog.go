package storage

import (
	"fmt"

	"food-delivery/delivery-svc/internal/domain"
)

// CatalogStore is the read-only restaurant and menu catalog. It is built once at start-up and
// never mutated, so it is safe for concurrent readers.
type CatalogStore struct {
	restaurants []domain.Restaurant
	index       map[int]int
	menus       map[int][]domain.MenuItem
	items       map[int]domain.MenuItem
	maxID       int
}

// NewCatalogStore validates the catalog definition and indexes it. Restaurant order and the
// per-restaurant item order are kept as given.
func NewCatalogStore(restaurants []domain.Restaurant, items []domain.MenuItem) (*CatalogStore, error) {
	store := &CatalogStore{
		restaurants: make([]domain.Restaurant, 0, len(restaurants)),
		index:       make(map[int]int, len(restaurants)),
		menus:       make(map[int][]domain.MenuItem, len(restaurants)),
		items:       make(map[int]domain.MenuItem, len(items)),
	}

	for _, rest := range restaurants {
		if rest.ID <= 0 {
			return nil, fmt.Errorf("restaurant %q: id must be positive", rest.Name)
		}
		if _, dup := store.index[rest.ID]; dup {
			return nil, fmt.Errorf("restaurant %d: duplicate id", rest.ID)
		}
		if rest.DeliveryFee < 0 || rest.MinOrder < 0 {
			return nil, fmt.Errorf("restaurant %d: negative delivery fee or minimum order", rest.ID)
		}
		if rest.Rating < 0 || rest.Rating > 5 {
			return nil, fmt.Errorf("restaurant %d: rating %.1f out of range", rest.ID, rest.Rating)
		}
		store.index[rest.ID] = len(store.restaurants)
		store.restaurants = append(store.restaurants, rest)
		store.menus[rest.ID] = []domain.MenuItem{}
		store.maxID = max(store.maxID, rest.ID)
	}

	for _, item := range items {
		if item.ID <= 0 {
			return nil, fmt.Errorf("menu item %q: id must be positive", item.Name)
		}
		if _, dup := store.items[item.ID]; dup {
			return nil, fmt.Errorf("menu item %d: duplicate id", item.ID)
		}
		if _, ok := store.index[item.RestaurantID]; !ok {
			return nil, fmt.Errorf("menu item %d: unknown restaurant %d", item.ID, item.RestaurantID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("menu item %d: negative price", item.ID)
		}
		store.items[item.ID] = item
		store.menus[item.RestaurantID] = append(store.menus[item.RestaurantID], item)
		store.maxID = max(store.maxID, item.ID)
	}

	return store, nil
}

func (s *CatalogStore) AllRestaurants() []domain.Restaurant {
	return append([]domain.Restaurant(nil), s.restaurants...)
}

func (s *CatalogStore) Restaurant(id int) (domain.Restaurant, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.Restaurant{}, domain.ErrRestaurantNotFound
	}
	return s.restaurants[i], nil
}

// Menu returns an empty, non-nil slice for a restaurant without items.
func (s *CatalogStore) Menu(restaurantID int) ([]domain.MenuItem, error) {
	menu, ok := s.menus[restaurantID]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return append([]domain.MenuItem{}, menu...), nil
}

func (s *CatalogStore) MenuItem(id int) (domain.MenuItem, bool) {
	item, ok := s.items[id]
	return item, ok
}

// MaxID is the largest restaurant or menu item id in the catalog.
func (s *CatalogStore) MaxID() int {
	return s.maxID
}
