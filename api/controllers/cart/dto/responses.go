package dto

import (
	"github.com/angelmondragon/pastaprego-backend/internal/cart"
	"github.com/angelmondragon/pastaprego-backend/internal/effects"
)

// CartResponse is the priced cart plus the session's in-flight add
// transitions. Adding lists the product ids currently showing the
// "added" badge.
type CartResponse struct {
	cart.View
	Transitions []effects.Transition `json:"transitions"`
	Adding      []string             `json:"adding"`
}

// AddItemResponse is the resulting line plus the transition it started.
type AddItemResponse struct {
	Item       cart.ItemView      `json:"item"`
	Transition effects.Transition `json:"transition"`
}

// UpdateQuantityResponse reports the line after the change. Removed is set
// when the quantity reached zero and the line left the cart.
type UpdateQuantityResponse struct {
	Item    cart.ItemView `json:"item"`
	Removed bool          `json:"removed"`
}
