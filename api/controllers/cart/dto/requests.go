package dto

// AddItemRequest selects a product and its extras by catalog id.
type AddItemRequest struct {
	ProductID string   `json:"product_id" validate:"required,max=64"`
	ExtraIDs  []string `json:"extra_ids" validate:"max=16,dive,required,max=64"`
}

// UpdateQuantityRequest carries a signed quantity change. Decreases are
// unbounded since the quantity clamps at zero; increases are capped per call.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"ne=0,max=99"`
}
