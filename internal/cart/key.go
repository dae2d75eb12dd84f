package cart

import (
	"slices"
	"strings"
)

// keySeparator joins the product id and the sorted extra ids in a LineItemKey.
const keySeparator = "-"

// LineItemKey is the public identifier of a line item: the product id alone,
// or the product id followed by the sorted extra ids, all joined with "-".
type LineItemKey string

func (k LineItemKey) String() string { return string(k) }

// Identity is the structural identity of a line item. ExtraIDs is always
// sorted and free of duplicates, so two selections of the same extras in a
// different order compare equal.
type Identity struct {
	ProductID string
	ExtraIDs  []string
}

// NewIdentity normalises the extra ids of a selection.
func NewIdentity(productID string, extraIDs []string) Identity {
	ids := slices.Clone(extraIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		ids = nil
	}
	return Identity{ProductID: productID, ExtraIDs: ids}
}

// Key renders the identity in its public string form.
func (id Identity) Key() LineItemKey {
	if len(id.ExtraIDs) == 0 {
		return LineItemKey(id.ProductID)
	}
	return LineItemKey(id.ProductID + keySeparator + strings.Join(id.ExtraIDs, keySeparator))
}

// Equal compares identities structurally.
func (id Identity) Equal(other Identity) bool {
	return id.ProductID == other.ProductID && slices.Equal(id.ExtraIDs, other.ExtraIDs)
}

// KeyFor is a shorthand for NewIdentity(productID, extraIDs).Key().
func KeyFor(productID string, extraIDs []string) LineItemKey {
	return NewIdentity(productID, extraIDs).Key()
}
