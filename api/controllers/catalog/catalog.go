package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/pastaprego-backend/api/responses"
	internalcatalog "github.com/angelmondragon/pastaprego-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
)

// Reader is the read-only catalog surface the handlers need.
type Reader interface {
	Categories() []internalcatalog.Category
	Products(category string) ([]internalcatalog.Product, error)
	Product(id string) (internalcatalog.Product, error)
	Extras(kind string) ([]internalcatalog.Extra, error)
}

// ProductResponse adds the customization flag and a display price.
type ProductResponse struct {
	internalcatalog.Product
	PriceDisplay string `json:"price_display"`
	Customizable bool   `json:"customizable"`
}

func newProductResponse(p internalcatalog.Product) ProductResponse {
	return ProductResponse{Product: p, PriceDisplay: p.Price.Display(), Customizable: p.Customizable()}
}

func Categories(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, reader.Categories())
	}
}

// Products lists products, filtered by the optional category query param.
func Products(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		products, err := reader.Products(r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			out = append(out, newProductResponse(p))
		}
		responses.WriteSuccess(w, out)
	}
}

func Product(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		product, err := reader.Product(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// Extras lists add-ons, filtered by the optional kind query param.
func Extras(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		extras, err := reader.Extras(r.URL.Query().Get("kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, extras)
	}
}
