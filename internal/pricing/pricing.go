// Package pricing holds the pure price calculations for cart lines and totals.
package pricing

import (
	"github.com/angelmondragon/pastaprego-backend/internal/catalog"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

// DefaultDeliveryFee is the flat fee added to every order.
const DefaultDeliveryFee types.Money = 250

// Line is the pricing view of a cart line item.
type Line struct {
	Product  catalog.Product
	Extras   []catalog.Extra
	Quantity int
}

// Totals is the derived money summary of a cart.
type Totals struct {
	Subtotal    types.Money `json:"subtotal_cents"`
	DeliveryFee types.Money `json:"delivery_fee_cents"`
	Total       types.Money `json:"total_cents"`
}

// UnitPrice is the base product price plus every selected extra.
func UnitPrice(product catalog.Product, extras []catalog.Extra) types.Money {
	price := product.Price
	for _, e := range extras {
		price += e.Price
	}
	return price
}

// LineTotal is the unit price times quantity.
func LineTotal(line Line) types.Money {
	return UnitPrice(line.Product, line.Extras).Times(line.Quantity)
}

// Subtotal sums every line total. Integer addition keeps the result independent of line order.
func Subtotal(lines []Line) types.Money {
	var sum types.Money
	for _, line := range lines {
		sum += LineTotal(line)
	}
	return sum
}

// Engine applies the configured delivery fee on top of the subtotal.
type Engine struct {
	DeliveryFee types.Money
}

// NewEngine builds an engine; a negative fee falls back to the default.
func NewEngine(deliveryFee types.Money) Engine {
	if deliveryFee < 0 {
		deliveryFee = DefaultDeliveryFee
	}
	return Engine{DeliveryFee: deliveryFee}
}

// GrandTotal is the subtotal plus the delivery fee.
func (e Engine) GrandTotal(lines []Line) types.Money {
	return Subtotal(lines) + e.DeliveryFee
}

// Totals computes subtotal, fee and grand total in one pass.
func (e Engine) Totals(lines []Line) Totals {
	subtotal := Subtotal(lines)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: e.DeliveryFee,
		Total:       subtotal + e.DeliveryFee,
	}
}
