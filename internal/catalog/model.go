package catalog

import (
	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

// Category is a menu section.
type Category struct {
	ID   enums.CategoryID `json:"id"`
	Name string           `json:"name"`
}

// Product is an immutable menu entry.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       types.Money      `json:"price_cents"`
	CategoryID  enums.CategoryID `json:"category_id"`
	Image       string           `json:"image"`
}

// Customizable reports whether the product accepts extras.
func (p Product) Customizable() bool {
	return p.CategoryID.Customizable()
}

// Extra is an add-on (protein or topping) priced on top of a product.
type Extra struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price types.Money     `json:"price_cents"`
	Kind  enums.ExtraKind `json:"kind"`
}
