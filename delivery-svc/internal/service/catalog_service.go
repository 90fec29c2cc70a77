package service

import (
	"strings"

	"food-delivery/delivery-svc/internal/domain"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List() []domain.Restaurant {
	return s.repo.AllRestaurants()
}

func (s *CatalogService) Get(id int) (domain.Restaurant, error) {
	return s.repo.Restaurant(id)
}

func (s *CatalogService) Menu(id int) (domain.Restaurant, []domain.MenuItem, error) {
	rest, err := s.repo.Restaurant(id)
	if err != nil {
		return domain.Restaurant{}, nil, err
	}
	menu, err := s.repo.Menu(id)
	if err != nil {
		return domain.Restaurant{}, nil, err
	}
	return rest, menu, nil
}

// Search matches query case-insensitively against name or cuisine. Results keep catalog
// order; an empty query returns everything.
func (s *CatalogService) Search(query string) []domain.Restaurant {
	all := s.repo.AllRestaurants()
	if query == "" {
		return all
	}

	needle := strings.ToLower(query)
	results := []domain.Restaurant{}
	for _, rest := range all {
		if strings.Contains(strings.ToLower(rest.Name), needle) ||
			strings.Contains(strings.ToLower(rest.Cuisine), needle) {
			results = append(results, rest)
		}
	}
	return results
}
