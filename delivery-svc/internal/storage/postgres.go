package storage

import (
	"database/sql"
	"fmt"

	"food-delivery/delivery-svc/internal/domain"
)

// PostgresRepository reads the catalog from the restaurants and menu_items tables. It is only
// consulted at start-up; the running service serves the catalog from memory.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			cuisine TEXT NOT NULL DEFAULT '',
			rating NUMERIC(2,1) NOT NULL DEFAULT 0,
			delivery_time TEXT NOT NULL DEFAULT '',
			delivery_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
			min_order NUMERIC(10,2) NOT NULL DEFAULT 0,
			image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id INTEGER PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL,
			category TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, cuisine, rating, delivery_time, delivery_fee, min_order, COALESCE(image, '')
		FROM restaurants
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Cuisine, &rest.Rating, &rest.DeliveryTime,
			&rest.DeliveryFee, &rest.MinOrder, &rest.Image); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) ListMenuItems() ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(category, '')
		FROM menu_items
		ORDER BY restaurant_id, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LoadCatalog reads both tables once and builds the in-memory catalog.
func (r *PostgresRepository) LoadCatalog() (*CatalogStore, error) {
	restaurants, err := r.ListRestaurants()
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	items, err := r.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return NewCatalogStore(restaurants, items)
}
