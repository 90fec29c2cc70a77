package domain

import (
	"time"

	"food-delivery/pricing"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Type           string         `json:"type"`
	OrderID        int            `json:"orderId"`
	RestaurantID   int            `json:"restaurantId"`
	Status         Status         `json:"status"`
	PreviousStatus Status         `json:"previousStatus,omitempty"`
	Items          []CartLine     `json:"items,omitempty"`
	Total          pricing.Amount `json:"total"`
	Timestamp      time.Time      `json:"timestamp"`
}
