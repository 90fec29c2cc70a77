package domain

import (
	"time"

	"food-delivery/pricing"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// EventItem is the part of an order line the aggregates need.
type EventItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderEvent mirrors the messages delivery-svc publishes on the orders topic.
type OrderEvent struct {
	Type           string         `json:"type"`
	OrderID        int            `json:"orderId"`
	RestaurantID   int            `json:"restaurantId"`
	Status         string         `json:"status"`
	PreviousStatus string         `json:"previousStatus,omitempty"`
	Items          []EventItem    `json:"items,omitempty"`
	Total          pricing.Amount `json:"total"`
	Timestamp      time.Time      `json:"timestamp"`
}

type ItemStat struct {
	ItemID   int    `json:"itemId"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type RestaurantStats struct {
	RestaurantID int            `json:"restaurantId"`
	Orders       int64          `json:"orders"`
	Revenue      pricing.Amount `json:"revenue"`
	TopItems     []ItemStat     `json:"topItems"`
}
