package catalog

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
)

// Catalog is a read-only view over the static menu. It is safe for concurrent use
// because nothing mutates it after construction.
type Catalog struct {
	categories []Category
	products   []Product
	extras     []Extra

	productByID map[string]Product
	extraByID   map[string]Extra
}

// Selection is a product plus the extras chosen for it, resolved against the catalog.
type Selection struct {
	Product Product
	Extras  []Extra
}

// New validates and indexes the provided menu data.
func New(categories []Category, products []Product, extras []Extra) (*Catalog, error) {
	c := &Catalog{
		categories:  append([]Category(nil), categories...),
		products:    append([]Product(nil), products...),
		extras:      append([]Extra(nil), extras...),
		productByID: make(map[string]Product, len(products)),
		extraByID:   make(map[string]Extra, len(extras)),
	}

	known := map[enums.CategoryID]struct{}{}
	for _, category := range categories {
		if !category.ID.IsValid() {
			return nil, fmt.Errorf("category %q is not supported", category.ID)
		}
		known[category.ID] = struct{}{}
	}

	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("product id is required")
		}
		if _, dup := c.productByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if _, ok := known[p.CategoryID]; !ok {
			return nil, fmt.Errorf("product %q references unknown category %q", p.ID, p.CategoryID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has a negative price", p.ID)
		}
		c.productByID[p.ID] = p
	}

	for _, e := range extras {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("extra id is required")
		}
		if _, dup := c.extraByID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate extra id %q", e.ID)
		}
		if !e.Kind.IsValid() {
			return nil, fmt.Errorf("extra %q has unknown kind %q", e.ID, e.Kind)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("extra %q has a negative price", e.ID)
		}
		c.extraByID[e.ID] = e
	}

	return c, nil
}

// Default returns the storefront menu.
func Default() *Catalog {
	c, err := New(defaultCategories, defaultProducts, defaultExtras)
	if err != nil {
		panic(fmt.Sprintf("default catalog is invalid: %v", err))
	}
	return c
}

// Categories lists menu sections in display order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Products lists products, optionally filtered by category. An empty filter returns everything.
func (c *Catalog) Products(category string) ([]Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return append([]Product(nil), c.products...), nil
	}
	id, err := enums.ParseCategoryID(category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category")
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.CategoryID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

// Product returns a single product.
func (c *Catalog) Product(id string) (Product, error) {
	p, ok := c.productByID[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").WithDetails(map[string]any{"product_id": id})
	}
	return p, nil
}

// Extras lists add-ons, optionally filtered by kind.
func (c *Catalog) Extras(kind string) ([]Extra, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return append([]Extra(nil), c.extras...), nil
	}
	k, err := enums.ParseExtraKind(kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown extra kind")
	}
	out := make([]Extra, 0, len(c.extras))
	for _, e := range c.extras {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out, nil
}

// Extra returns a single add-on.
func (c *Catalog) Extra(id string) (Extra, error) {
	e, ok := c.extraByID[id]
	if !ok {
		return Extra{}, pkgerrors.New(pkgerrors.CodeNotFound, "extra not found").WithDetails(map[string]any{"extra_id": id})
	}
	return e, nil
}

// ResolveSelection turns client-supplied ids into catalog values. Extras are only
// accepted on customizable products and each id may appear once.
func (c *Catalog) ResolveSelection(productID string, extraIDs []string) (Selection, error) {
	product, err := c.Product(strings.TrimSpace(productID))
	if err != nil {
		return Selection{}, err
	}
	if len(extraIDs) == 0 {
		return Selection{Product: product}, nil
	}
	if !product.Customizable() {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "product does not accept extras").WithDetails(map[string]any{"product_id": product.ID})
	}

	seen := make(map[string]struct{}, len(extraIDs))
	extras := make([]Extra, 0, len(extraIDs))
	for _, raw := range extraIDs {
		id := strings.TrimSpace(raw)
		if _, dup := seen[id]; dup {
			return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "extra selected more than once").WithDetails(map[string]any{"extra_id": id})
		}
		seen[id] = struct{}{}
		extra, ok := c.extraByID[id]
		if !ok {
			return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown extra").WithDetails(map[string]any{"extra_id": id})
		}
		extras = append(extras, extra)
	}
	return Selection{Product: product, Extras: extras}, nil
}
