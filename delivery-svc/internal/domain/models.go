package domain

import (
	"time"

	"food-delivery/pricing"
)

// DeliveryWindow is the fixed offset between order creation and the promised delivery time.
const DeliveryWindow = 30 * time.Minute

type Restaurant struct {
	ID           int            `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Cuisine      string         `json:"cuisine" yaml:"cuisine"`
	Rating       float64        `json:"rating" yaml:"rating"`
	DeliveryTime string         `json:"deliveryTime" yaml:"deliveryTime"`
	DeliveryFee  pricing.Amount `json:"deliveryFee" yaml:"deliveryFee"`
	MinOrder     pricing.Amount `json:"minOrder" yaml:"minOrder"`
	Image        string         `json:"image" yaml:"image"`
}

type MenuItem struct {
	ID           int            `json:"id" yaml:"id"`
	RestaurantID int            `json:"restaurantId" yaml:"-"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	Price        pricing.Amount `json:"price" yaml:"price"`
	Category     string         `json:"category" yaml:"category"`
}

// CartLine is a menu item snapshot with the quantity ordered. RestaurantID of the embedded item
// is the restaurant the line was added under.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

func (l CartLine) PriceLine() pricing.Line {
	return pricing.Line{Price: l.Price, Quantity: l.Quantity}
}

func PriceLines(lines []CartLine) []pricing.Line {
	out := make([]pricing.Line, len(lines))
	for i, line := range lines {
		out[i] = line.PriceLine()
	}
	return out
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
	Status            Status         `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	o.Items = append([]CartLine(nil), o.Items...)
	return o
}

// CreateOrderRequest is the order submission accepted from clients.
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

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
