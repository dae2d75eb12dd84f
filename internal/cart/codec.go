package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errInvalidRecord = errors.New("invalid cart record")

func encode(c Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// decode parses a persisted line-item list and rejects any record that
// breaks the cart rules: a unique key per line, a key that matches the
// snapshot, quantity >= 1, and no repeated extras.
func decode(payload []byte) (Cart, error) {
	var items []LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", errInvalidRecord, err)
	}

	seen := make(map[LineItemKey]struct{}, len(items))
	for i, item := range items {
		switch {
		case item.Product.ID == "":
			return Cart{}, fmt.Errorf("%w: item %d has no product id", errInvalidRecord, i)
		case item.Quantity < 1:
			return Cart{}, fmt.Errorf("%w: item %d has quantity %d", errInvalidRecord, i, item.Quantity)
		}
		id := item.Identity()
		if len(id.ExtraIDs) != len(item.Extras) {
			return Cart{}, fmt.Errorf("%w: item %d repeats an extra", errInvalidRecord, i)
		}
		if id.Key() != item.Key {
			return Cart{}, fmt.Errorf("%w: item %d key %q does not match %q", errInvalidRecord, i, item.Key, id.Key())
		}
		if _, dup := seen[item.Key]; dup {
			return Cart{}, fmt.Errorf("%w: duplicate key %q", errInvalidRecord, item.Key)
		}
		seen[item.Key] = struct{}{}
	}
	return Cart{Items: items}.clone(), nil
}
