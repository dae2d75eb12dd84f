package cart

import (
	"slices"

	"github.com/angelmondragon/pastaprego-backend/internal/catalog"
	"github.com/angelmondragon/pastaprego-backend/internal/pricing"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

// LineItem is a product snapshot plus the selected extras and a quantity >= 1.
type LineItem struct {
	Key      LineItemKey     `json:"key"`
	Product  catalog.Product `json:"product"`
	Extras   []catalog.Extra `json:"extras"`
	Quantity int             `json:"quantity"`
}

// Identity derives the structural identity from the snapshot.
func (li LineItem) Identity() Identity {
	ids := make([]string, 0, len(li.Extras))
	for _, e := range li.Extras {
		ids = append(ids, e.ID)
	}
	return NewIdentity(li.Product.ID, ids)
}

func (li LineItem) UnitPrice() types.Money {
	return pricing.UnitPrice(li.Product, li.Extras)
}

func (li LineItem) LineTotal() types.Money {
	return pricing.LineTotal(li.pricingLine())
}

func (li LineItem) pricingLine() pricing.Line {
	return pricing.Line{Product: li.Product, Extras: li.Extras, Quantity: li.Quantity}
}

func (li LineItem) clone() LineItem {
	li.Extras = slices.Clone(li.Extras)
	return li
}

// Cart is an immutable snapshot of line items in insertion order.
type Cart struct {
	Items []LineItem `json:"items"`
}

// IsEmpty reports whether the cart has no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount sums the quantities of every line item.
func (c Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Find returns the line item with the given key.
func (c Cart) Find(key LineItemKey) (LineItem, bool) {
	if i := c.index(key); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// Lines converts the cart into pricing input.
func (c Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, item.pricingLine())
	}
	return lines
}

// Subtotal is the pricing subtotal of the snapshot.
func (c Cart) Subtotal() types.Money {
	return pricing.Subtotal(c.Lines())
}

func (c Cart) index(key LineItemKey) int {
	return slices.IndexFunc(c.Items, func(item LineItem) bool { return item.Key == key })
}

func (c Cart) clone() Cart {
	if len(c.Items) == 0 {
		return Cart{Items: []LineItem{}}
	}
	items := make([]LineItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = item.clone()
	}
	return Cart{Items: items}
}
