package orders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pastaprego-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
)

type cartStores interface {
	WithCart(ctx context.Context, session string, fn func(*cart.Store) error) error
}

// ValidateInput is a form plus the fields the user has interacted with.
type ValidateInput struct {
	Form    CustomerDetails
	Touched []Field
}

// ValidateResult reports overall validity and the errors to display.
type ValidateResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Service exposes checkout operations for a cart session.
type Service interface {
	Validate(input ValidateInput) ValidateResult
	PlaceOrder(ctx context.Context, session string, form CustomerDetails) (Summary, error)
	LastOrder(session string) (Summary, error)
}

type service struct {
	carts         cartStores
	assembler     *Assembler
	confirmations *Confirmations
}

// NewService wires the assembler to the session carts.
func NewService(carts cartStores, assembler *Assembler, confirmations *Confirmations) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart stores required")
	}
	if assembler == nil {
		return nil, fmt.Errorf("order assembler required")
	}
	if confirmations == nil {
		return nil, fmt.Errorf("confirmations required")
	}
	return &service{carts: carts, assembler: assembler, confirmations: confirmations}, nil
}

func (s *service) Validate(input ValidateInput) ValidateResult {
	attempt := NewCheckout(s.assembler, nil)
	for _, f := range Fields {
		_ = attempt.Set(f, input.Form.Get(f))
	}
	for _, f := range input.Touched {
		attempt.Touch(f)
	}
	return ValidateResult{
		Valid:  attempt.Errors().Empty(),
		Errors: attempt.VisibleErrors().Details(),
	}
}

func (s *service) PlaceOrder(ctx context.Context, session string, form CustomerDetails) (Summary, error) {
	var summary Summary
	err := s.carts.WithCart(ctx, session, func(store *cart.Store) error {
		attempt := NewCheckout(s.assembler, store)
		for _, f := range Fields {
			_ = attempt.Set(f, form.Get(f))
		}
		var submitErr error
		summary, submitErr = attempt.Submit(ctx)
		return submitErr
	})
	if err != nil {
		return Summary{}, err
	}
	s.confirmations.Record(session, summary)
	return summary, nil
}

func (s *service) LastOrder(session string) (Summary, error) {
	summary, ok := s.confirmations.Last(session)
	if !ok {
		return Summary{}, pkgerrors.New(pkgerrors.CodeNotFound, "no order placed in this session")
	}
	return summary, nil
}
