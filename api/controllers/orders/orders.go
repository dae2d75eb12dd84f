package orders

import (
	"net/http"

	"github.com/angelmondragon/pastaprego-backend/api/middleware"
	"github.com/angelmondragon/pastaprego-backend/api/responses"
	"github.com/angelmondragon/pastaprego-backend/api/validators"
	internalorders "github.com/angelmondragon/pastaprego-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/pastaprego-backend/pkg/errors"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
)

// FormPayload is the checkout form as sent by the storefront. Length caps
// only bound the payload; the business rules live in internal/orders.
type FormPayload struct {
	Name    string `json:"name" validate:"max=120"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address" validate:"max=300"`
	Notes   string `json:"notes" validate:"max=500"`
}

func (p FormPayload) details() internalorders.CustomerDetails {
	return internalorders.CustomerDetails{
		Name:    p.Name,
		Phone:   p.Phone,
		Address: p.Address,
		Notes:   p.Notes,
	}
}

type validateRequest struct {
	Form    FormPayload `json:"form"`
	Touched []string    `json:"touched" validate:"max=4"`
}

// ValidateCheckout returns the errors the form should display for the
// fields the user has touched so far.
func ValidateCheckout(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload validateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		touched := make([]internalorders.Field, 0, len(payload.Touched))
		for _, raw := range payload.Touched {
			field, err := internalorders.ParseField(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			touched = append(touched, field)
		}

		result := svc.Validate(internalorders.ValidateInput{Form: payload.Form.details(), Touched: touched})
		responses.WriteSuccess(w, result)
	}
}

// PlaceOrder validates the form, drains the session cart and returns the
// confirmation summary.
func PlaceOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload FormPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.PlaceOrder(r.Context(), middleware.CartSessionFromContext(r.Context()), payload.details())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

// LastOrder returns the most recent confirmation for the session.
func LastOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		summary, err := svc.LastOrder(middleware.CartSessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
