package enums

// CheckoutState tracks a single checkout attempt.
type CheckoutState string

const (
	CheckoutStateEditing   CheckoutState = "editing"
	CheckoutStateSubmitted CheckoutState = "submitted"
)

// String implements fmt.Stringer.
func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether no further edits are accepted.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSubmitted
}
