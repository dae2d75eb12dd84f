package orders

import (
	"context"

	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
)

// Checkout is one checkout attempt. Errors are recomputed from the form on
// every read; the touched set only decides which of them are shown. A
// Checkout belongs to a single caller and is not safe for concurrent use.
type Checkout struct {
	assembler *Assembler
	source    CartSource
	form      CustomerDetails
	touched   map[Field]bool
	state     enums.CheckoutState
	summary   Summary
}

func NewCheckout(assembler *Assembler, source CartSource) *Checkout {
	return &Checkout{
		assembler: assembler,
		source:    source,
		touched:   make(map[Field]bool, len(Fields)),
		state:     enums.CheckoutStateEditing,
	}
}

// State is editing until a submit succeeds.
func (c *Checkout) State() enums.CheckoutState {
	return c.state
}

// Form returns the values entered so far.
func (c *Checkout) Form() CustomerDetails {
	return c.form
}

// Set records a field edit.
func (c *Checkout) Set(field Field, value string) error {
	if c.state.IsTerminal() {
		return submittedError()
	}
	if !field.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout field").
			WithDetails(map[string]any{"field": field})
	}
	c.form = c.form.With(field, value)
	return nil
}

// Touch marks a field as interacted with, making its error visible.
func (c *Checkout) Touch(field Field) {
	if field.IsValid() {
		c.touched[field] = true
	}
}

// TouchAll marks every field.
func (c *Checkout) TouchAll() {
	for _, f := range Fields {
		c.touched[f] = true
	}
}

// Errors returns every current validation error, touched or not.
func (c *Checkout) Errors() ValidationErrors {
	return Validate(c.form)
}

// VisibleErrors returns the errors of touched fields only.
func (c *Checkout) VisibleErrors() ValidationErrors {
	return c.Errors().Only(c.touched)
}

// Submit places the order. Any failure keeps the attempt in editing with
// every field touched so all errors surface.
func (c *Checkout) Submit(ctx context.Context) (Summary, error) {
	if c.state.IsTerminal() {
		return Summary{}, submittedError()
	}
	c.TouchAll()
	summary, err := c.assembler.PlaceOrder(ctx, c.form, c.source)
	if err != nil {
		return Summary{}, err
	}
	c.summary = summary
	c.state = enums.CheckoutStateSubmitted
	return summary, nil
}

// Summary returns the placed order once submitted.
func (c *Checkout) Summary() (Summary, bool) {
	return c.summary, c.state.IsTerminal()
}

func submittedError() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already submitted")
}
