package cart

import (
	"strings"

	"github.com/angelmondragon/pastaprego-backend/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/pastaprego-backend/internal/cart"
)

func toAddItemInput(payload dto.AddItemRequest) cartsvc.AddItemInput {
	extras := make([]string, 0, len(payload.ExtraIDs))
	for _, id := range payload.ExtraIDs {
		extras = append(extras, strings.TrimSpace(id))
	}
	return cartsvc.AddItemInput{
		ProductID: strings.TrimSpace(payload.ProductID),
		ExtraIDs:  extras,
	}
}
