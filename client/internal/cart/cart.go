// Package cart holds the client's in-progress order for a single restaurant.
package cart

import (
	"errors"
	"strings"

	"food-delivery/client/internal/api"
	"food-delivery/pricing"
)

var (
	ErrMixedRestaurant = errors.New("item belongs to another restaurant")
	ErrEmpty           = errors.New("cart is empty")
	ErrMissingDetails  = errors.New("name, phone and address are required")
)

type Details struct {
	Name    string
	Phone   string
	Address string
}

type Cart struct {
	restaurant api.Restaurant
	lines      []api.CartLine
}

func New(restaurant api.Restaurant) *Cart {
	return &Cart{restaurant: restaurant}
}

func (c *Cart) Restaurant() api.Restaurant {
	return c.restaurant
}

// SwitchRestaurant starts over when rest differs from the current restaurant.
func (c *Cart) SwitchRestaurant(rest api.Restaurant) {
	if rest.ID != c.restaurant.ID {
		c.lines = nil
	}
	c.restaurant = rest
}

// Add puts one more of item in the cart. Items carrying no restaurant id are taken to belong
// to the cart's restaurant.
func (c *Cart) Add(item api.MenuItem) error {
	if item.RestaurantID != 0 && item.RestaurantID != c.restaurant.ID {
		return ErrMixedRestaurant
	}
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			return nil
		}
	}
	item.RestaurantID = c.restaurant.ID
	c.lines = append(c.lines, api.CartLine{MenuItem: item, Quantity: 1})
	return nil
}

// Remove takes one away, dropping the line when it reaches zero.
func (c *Cart) Remove(itemID int) {
	for i := range c.lines {
		if c.lines[i].ID != itemID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
			return
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
}

func (c *Cart) Delete(itemID int) {
	for i := range c.lines {
		if c.lines[i].ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Lines() []api.CartLine {
	return append([]api.CartLine(nil), c.lines...)
}

func (c *Cart) Quantity(itemID int) int {
	for _, line := range c.lines {
		if line.ID == itemID {
			return line.Quantity
		}
	}
	return 0
}

func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) Subtotal() pricing.Amount {
	lines := make([]pricing.Line, len(c.lines))
	for i, line := range c.lines {
		lines[i] = pricing.Line{Price: line.Price, Quantity: line.Quantity}
	}
	return pricing.Subtotal(lines)
}

func (c *Cart) Total() pricing.Amount {
	return pricing.Total(c.Subtotal(), c.restaurant.DeliveryFee)
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Checkout builds the order submission. The cart is left untouched; clear it once the order
// has been accepted.
func (c *Cart) Checkout(d Details) (api.CreateOrderRequest, error) {
	if len(c.lines) == 0 {
		return api.CreateOrderRequest{}, ErrEmpty
	}
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Phone) == "" || strings.TrimSpace(d.Address) == "" {
		return api.CreateOrderRequest{}, ErrMissingDetails
	}
	return api.CreateOrderRequest{
		RestaurantID:    c.restaurant.ID,
		Items:           c.Lines(),
		DeliveryAddress: d.Address,
		CustomerName:    d.Name,
		CustomerPhone:   d.Phone,
		Subtotal:        c.Subtotal(),
		DeliveryFee:     c.restaurant.DeliveryFee,
		Total:           c.Total(),
	}, nil
}
