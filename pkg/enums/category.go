package enums

import "fmt"

// CategoryID is the closed set of menu categories.
type CategoryID string

const (
	CategoryPastasClasicas   CategoryID = "pastas-clasicas"
	CategoryPastasEspeciales CategoryID = "pastas-especiales"
	CategorySalsas           CategoryID = "salsas"
	CategoryBebidas          CategoryID = "bebidas"
	CategoryPostres          CategoryID = "postres"
)

var validCategoryIDs = []CategoryID{
	CategoryPastasClasicas,
	CategoryPastasEspeciales,
	CategorySalsas,
	CategoryBebidas,
	CategoryPostres,
}

// String implements fmt.Stringer.
func (c CategoryID) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CategoryID.
func (c CategoryID) IsValid() bool {
	for _, candidate := range validCategoryIDs {
		if candidate == c {
			return true
		}
	}
	return false
}

// Customizable reports whether products in the category accept extras.
func (c CategoryID) Customizable() bool {
	return c == CategoryPastasClasicas || c == CategoryPastasEspeciales
}

// ParseCategoryID converts raw input into a CategoryID.
func ParseCategoryID(value string) (CategoryID, error) {
	for _, candidate := range validCategoryIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
