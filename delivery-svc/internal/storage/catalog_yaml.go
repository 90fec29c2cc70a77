package storage

import (
	_ "embed"
	"fmt"
	"os"

	"food-delivery/delivery-svc/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Restaurants []catalogRestaurant `yaml:"restaurants"`
}

type catalogRestaurant struct {
	domain.Restaurant `yaml:",inline"`
	Menu              []domain.MenuItem `yaml:"menu"`
}

// LoadCatalogYAML builds a catalog from its YAML definition.
func LoadCatalogYAML(data []byte) (*CatalogStore, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	restaurants := make([]domain.Restaurant, 0, len(file.Restaurants))
	var items []domain.MenuItem
	for _, rest := range file.Restaurants {
		restaurants = append(restaurants, rest.Restaurant)
		for _, item := range rest.Menu {
			item.RestaurantID = rest.ID
			items = append(items, item)
		}
	}
	return NewCatalogStore(restaurants, items)
}

func LoadCatalogFile(path string) (*CatalogStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return LoadCatalogYAML(data)
}

// EmbeddedCatalog is the catalog shipped with the binary.
func EmbeddedCatalog() (*CatalogStore, error) {
	return LoadCatalogYAML(embeddedCatalog)
}
