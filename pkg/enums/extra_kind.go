package enums

import "fmt"

// ExtraKind distinguishes add-on groups shown in the customization sheet.
type ExtraKind string

const (
	ExtraKindProtein ExtraKind = "protein"
	ExtraKindTopping ExtraKind = "topping"
)

var validExtraKinds = []ExtraKind{
	ExtraKindProtein,
	ExtraKindTopping,
}

// String implements fmt.Stringer.
func (k ExtraKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ExtraKind.
func (k ExtraKind) IsValid() bool {
	for _, candidate := range validExtraKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseExtraKind converts raw input into an ExtraKind.
func ParseExtraKind(value string) (ExtraKind, error) {
	for _, candidate := range validExtraKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid extra kind %q", value)
}
