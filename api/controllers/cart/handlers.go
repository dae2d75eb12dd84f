package cart

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/pastaprego-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/pastaprego-backend/api/middleware"
	"github.com/angelmondragon/pastaprego-backend/api/responses"
	"github.com/angelmondragon/pastaprego-backend/api/validators"
	cartsvc "github.com/angelmondragon/pastaprego-backend/internal/cart"
	"github.com/angelmondragon/pastaprego-backend/internal/effects"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
)

// Transitions is the slice of the effects queue the handlers use.
type Transitions interface {
	Start(session, productID, image string) effects.Transition
	Active(session string) []effects.Transition
}

// CartFetch renders the session cart with its in-flight transitions.
func CartFetch(svc cartsvc.Service, fx Transitions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		session := middleware.CartSessionFromContext(r.Context())

		view, err := svc.View(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(view, activeTransitions(fx, session)))
	}
}

// CartAddItem adds a selection and starts its cosmetic transition. The
// cart is already updated when the response is written.
func CartAddItem(svc cartsvc.Service, fx Transitions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		session := middleware.CartSessionFromContext(r.Context())

		var payload dto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AddItem(r.Context(), session, toAddItemInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := dto.AddItemResponse{Item: item}
		if fx != nil {
			out.Transition = fx.Start(session, item.Product.ID, item.Product.Image)
		}
		if logg != nil {
			ctx := logg.WithLineItemKey(r.Context(), item.Key.String())
			logg.Info(logg.WithField(ctx, "quantity", item.Quantity), "cart.item_added")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}

// CartUpdateQuantity applies a signed delta to one line.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		key, err := lineItemKeyParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dto.UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateQuantity(r.Context(), middleware.CartSessionFromContext(r.Context()), key, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto.UpdateQuantityResponse{Item: item, Removed: item.Quantity == 0})
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		key, err := lineItemKeyParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveItem(r.Context(), middleware.CartSessionFromContext(r.Context()), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		if err := svc.Clear(r.Context(), middleware.CartSessionFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func lineItemKeyParam(r *http.Request) (cartsvc.LineItemKey, error) {
	raw := chi.URLParam(r, "lineItemKey")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line item key")
	}
	decoded = strings.TrimSpace(decoded)
	if decoded == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "line item key is required")
	}
	return cartsvc.LineItemKey(decoded), nil
}

func activeTransitions(fx Transitions, session string) []effects.Transition {
	if fx == nil {
		return nil
	}
	return fx.Active(session)
}

func newCartResponse(view cartsvc.View, transitions []effects.Transition) dto.CartResponse {
	if transitions == nil {
		transitions = []effects.Transition{}
	}
	return dto.CartResponse{View: view, Transitions: transitions, Adding: effects.AddingProducts(transitions)}
}
