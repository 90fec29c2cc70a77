package api

import (
	"time"

	"food-delivery/pricing"
)

type Restaurant struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Cuisine      string         `json:"cuisine"`
	Rating       float64        `json:"rating"`
	DeliveryTime string         `json:"deliveryTime"`
	DeliveryFee  pricing.Amount `json:"deliveryFee"`
	MinOrder     pricing.Amount `json:"minOrder"`
	Image        string         `json:"image"`
}

type MenuItem struct {
	ID           int            `json:"id"`
	RestaurantID int            `json:"restaurantId"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Price        pricing.Amount `json:"price"`
	Category     string         `json:"category"`
}

type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

type Order struct {
	ID                int            `json:"id"`
	RestaurantID      int            `json:"restaurantId"`
	Items             []CartLine     `json:"items"`
	DeliveryAddress   string         `json:"deliveryAddress"`
	CustomerName      string         `json:"customerName"`
	CustomerPhone     string         `json:"customerPhone"`
	Subtotal          pricing.Amount `json:"subtotal"`
	DeliveryFee       pricing.Amount `json:"deliveryFee"`
	Total             pricing.Amount `json:"total"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
}

type CreateOrderRequest struct {
	RestaurantID    int            `json:"restaurantId"`
	Items           []CartLine     `json:"items"`
	DeliveryAddress string         `json:"deliveryAddress"`
	CustomerName    string         `json:"customerName"`
	CustomerPhone   string         `json:"customerPhone"`
	Subtotal        pricing.Amount `json:"subtotal"`
	DeliveryFee     pricing.Amount `json:"deliveryFee"`
	Total           pricing.Amount `json:"total"`
}

type menuResponse struct {
	Restaurant Restaurant `json:"restaurant"`
	Menu       []MenuItem `json:"menu"`
}
