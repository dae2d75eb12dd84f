package orders

import (
	"strings"

	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
)

// Field names a checkout form input. Values match the JSON keys.
type Field string

const (
	FieldName    Field = "name"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
	FieldNotes   Field = "notes"
)

// Fields lists every form input in display order.
var Fields = []Field{FieldName, FieldPhone, FieldAddress, FieldNotes}

func (f Field) String() string { return string(f) }

func (f Field) IsValid() bool {
	switch f {
	case FieldName, FieldPhone, FieldAddress, FieldNotes:
		return true
	}
	return false
}

func ParseField(value string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(value)))
	if !f.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout field").
			WithDetails(map[string]any{"field": value})
	}
	return f, nil
}

// CustomerDetails is the delivery form entered at checkout.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c CustomerDetails) Trimmed() CustomerDetails {
	return CustomerDetails{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		Notes:   strings.TrimSpace(c.Notes),
	}
}

// Get returns the raw value of a field.
func (c CustomerDetails) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldPhone:
		return c.Phone
	case FieldAddress:
		return c.Address
	case FieldNotes:
		return c.Notes
	}
	return ""
}

// With returns a copy with one field replaced.
func (c CustomerDetails) With(f Field, value string) CustomerDetails {
	switch f {
	case FieldName:
		c.Name = value
	case FieldPhone:
		c.Phone = value
	case FieldAddress:
		c.Address = value
	case FieldNotes:
		c.Notes = value
	}
	return c
}
