package cart

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pastaprego-backend/internal/catalog"
	"github.com/angelmondragon/pastaprego-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

type selectionResolver interface {
	ResolveSelection(productID string, extraIDs []string) (catalog.Selection, error)
}

// Service exposes per-session cart operations keyed by catalog ids.
type Service interface {
	View(ctx context.Context, session string) (View, error)
	AddItem(ctx context.Context, session string, input AddItemInput) (ItemView, error)
	UpdateQuantity(ctx context.Context, session string, key LineItemKey, delta int) (ItemView, error)
	RemoveItem(ctx context.Context, session string, key LineItemKey) error
	Clear(ctx context.Context, session string) error
	WithCart(ctx context.Context, session string, fn func(*Store) error) error
}

// AddItemInput identifies a product and its selected extras by id.
type AddItemInput struct {
	ProductID string
	ExtraIDs  []string
}

// ItemView is a line item with its derived prices.
type ItemView struct {
	LineItem
	UnitPrice types.Money `json:"unit_price_cents"`
	LineTotal types.Money `json:"line_total_cents"`
}

// View is the cart as rendered to clients.
type View struct {
	Items     []ItemView     `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    pricing.Totals `json:"totals"`
}

type service struct {
	registry *Registry
	catalog  selectionResolver
	engine   pricing.Engine
}

// NewService builds a cart service over the session registry.
func NewService(registry *Registry, catalog selectionResolver, engine pricing.Engine) (Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("cart registry required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	return &service{registry: registry, catalog: catalog, engine: engine}, nil
}

func (s *service) WithCart(ctx context.Context, session string, fn func(*Store) error) error {
	return s.registry.WithCart(ctx, session, fn)
}

func (s *service) View(ctx context.Context, session string) (View, error) {
	snapshot, err := s.registry.Snapshot(ctx, session)
	if err != nil {
		return View{}, err
	}
	return NewView(snapshot, s.engine), nil
}

func (s *service) AddItem(ctx context.Context, session string, input AddItemInput) (ItemView, error) {
	selection, err := s.catalog.ResolveSelection(input.ProductID, input.ExtraIDs)
	if err != nil {
		return ItemView{}, err
	}
	var item LineItem
	err = s.registry.WithCart(ctx, session, func(store *Store) error {
		var addErr error
		item, addErr = store.AddItem(ctx, selection.Product, selection.Extras)
		return addErr
	})
	if err != nil {
		return ItemView{}, err
	}
	return newItemView(item), nil
}

func (s *service) UpdateQuantity(ctx context.Context, session string, key LineItemKey, delta int) (ItemView, error) {
	var (
		item  LineItem
		found bool
	)
	err := s.registry.WithCart(ctx, session, func(store *Store) error {
		var updateErr error
		item, found, updateErr = store.UpdateQuantity(ctx, key, delta)
		return updateErr
	})
	if err != nil {
		return ItemView{}, err
	}
	if !found {
		return ItemView{}, lineItemNotFound(key)
	}
	return newItemView(item), nil
}

func (s *service) RemoveItem(ctx context.Context, session string, key LineItemKey) error {
	var found bool
	err := s.registry.WithCart(ctx, session, func(store *Store) error {
		var removeErr error
		found, removeErr = store.RemoveItem(ctx, key)
		return removeErr
	})
	if err != nil {
		return err
	}
	if !found {
		return lineItemNotFound(key)
	}
	return nil
}

func (s *service) Clear(ctx context.Context, session string) error {
	return s.registry.WithCart(ctx, session, func(store *Store) error {
		return store.Clear(ctx)
	})
}

// NewView prices a snapshot.
func NewView(c Cart, engine pricing.Engine) View {
	items := make([]ItemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, newItemView(item))
	}
	return View{
		Items:     items,
		ItemCount: c.ItemCount(),
		Totals:    engine.Totals(c.Lines()),
	}
}

func newItemView(item LineItem) ItemView {
	return ItemView{
		LineItem:  item,
		UnitPrice: item.UnitPrice(),
		LineTotal: item.LineTotal(),
	}
}

func lineItemNotFound(key LineItemKey) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found").
		WithDetails(map[string]any{"line_item_key": key})
}
