package orders

import (
	"time"

	"github.com/angelmondragon/pastaprego-backend/internal/cart"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

// Summary is the confirmation of a placed order. Items and totals are
// copied at submission and never follow later cart changes.
type Summary struct {
	Number      string          `json:"number"`
	Items       []cart.ItemView `json:"items"`
	ItemCount   int             `json:"item_count"`
	Subtotal    types.Money     `json:"subtotal_cents"`
	DeliveryFee types.Money     `json:"delivery_fee_cents"`
	Total       types.Money     `json:"total_cents"`
	Customer    CustomerDetails `json:"customer"`
	PlacedAt    time.Time       `json:"placed_at"`
}
