package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/pastaprego-backend/internal/cart"
	"github.com/angelmondragon/pastaprego-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/metrics"
)

// CartSource is the slice of the cart store an order needs.
type CartSource interface {
	Snapshot() cart.Cart
	Drain(ctx context.Context) (cart.Cart, error)
}

type numberer interface {
	Next() string
}

// AssemblerOptions carries optional collaborators.
type AssemblerOptions struct {
	Logger  *logger.Logger
	Metrics *metrics.Storefront
	Now     func() time.Time
}

// Assembler turns a valid form and a non-empty cart into an order summary.
type Assembler struct {
	engine  pricing.Engine
	numbers numberer
	logg    *logger.Logger
	metrics *metrics.Storefront
	now     func() time.Time
}

func NewAssembler(engine pricing.Engine, numbers numberer, opts AssemblerOptions) (*Assembler, error) {
	if numbers == nil {
		return nil, fmt.Errorf("order number generator required")
	}
	a := &Assembler{
		engine:  engine,
		numbers: numbers,
		logg:    opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
	if a.logg == nil {
		a.logg = logger.Nop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a, nil
}

// Validate runs the form rules.
func (a *Assembler) Validate(form CustomerDetails) ValidationErrors {
	return Validate(form)
}

// PlaceOrder validates the form, empties the cart and returns the summary.
// Nothing is drained when validation fails or the cart is empty.
func (a *Assembler) PlaceOrder(ctx context.Context, form CustomerDetails, source CartSource) (Summary, error) {
	if source == nil {
		return Summary{}, pkgerrors.New(pkgerrors.CodeInternal, "cart source required")
	}
	if errs := Validate(form); !errs.Empty() {
		for field := range errs {
			a.metrics.IncValidationFailure(field.String())
		}
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "checkout form is invalid").
			WithDetails(errs.Details())
	}
	if source.Snapshot().IsEmpty() {
		return Summary{}, emptyCartError()
	}

	contents, err := source.Drain(ctx)
	if err != nil {
		return Summary{}, err
	}
	if contents.IsEmpty() {
		return Summary{}, emptyCartError()
	}

	view := cart.NewView(contents, a.engine)
	summary := Summary{
		Number:      a.numbers.Next(),
		Items:       view.Items,
		ItemCount:   view.ItemCount,
		Subtotal:    view.Totals.Subtotal,
		DeliveryFee: view.Totals.DeliveryFee,
		Total:       view.Totals.Total,
		Customer:    form.Trimmed(),
		PlacedAt:    a.now().UTC(),
	}

	a.metrics.ObserveOrder(summary.Total.Cents())
	a.logg.Info(a.logg.WithFields(ctx, map[string]any{
		"order_number": summary.Number,
		"item_count":   summary.ItemCount,
		"total_cents":  summary.Total.Cents(),
	}), "order.placed")

	return summary, nil
}

func emptyCartError() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
}
