package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourbay/storefront/api/responses"
	"github.com/tourbay/storefront/api/validators"
	cartsvc "github.com/tourbay/storefront/internal/cart"
	catalogsvc "github.com/tourbay/storefront/internal/catalog"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
	"github.com/tourbay/storefront/pkg/logger"
)

type participantCounts struct {
	Adult  int `json:"adult" validate:"min=0"`
	Child  int `json:"child" validate:"min=0"`
	Infant int `json:"infant" validate:"min=0"`
}

type selectedOption struct {
	OptionID string `json:"option_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type tourQuoteRequest struct {
	VariantID       string            `json:"variant_id" validate:"required"`
	Participants    participantCounts `json:"participants"`
	SelectedOptions []selectedOption  `json:"selected_options,omitempty"`
}

type flatQuoteRequest struct {
	VariantID       string           `json:"variant_id" validate:"required"`
	Quantity        int              `json:"quantity" validate:"min=0"`
	SelectedOptions []selectedOption `json:"selected_options,omitempty"`
}

// TourDetail serves a tour detail payload with its bookability verdict.
func TourDetail(service *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Tour(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// EventDetail serves an event detail payload.
func EventDetail(service *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := service.Event(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// TransferDetail serves a transfer detail payload.
func TransferDetail(service *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := service.Transfer(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// TourQuote prices a tour selection before it is added to the cart.
func TourQuote(service *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload tourQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		participants := cartsvc.Participants{
			Adult:  payload.Participants.Adult,
			Child:  payload.Participants.Child,
			Infant: payload.Participants.Infant,
		}

		quote, err := service.QuoteTour(r.Context(), chi.URLParam(r, "id"), payload.VariantID, participants, toSelections(payload.SelectedOptions))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pricingError(err))
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// EventQuote prices an event selection.
func EventQuote(service *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload flatQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := service.QuoteEvent(r.Context(), chi.URLParam(r, "id"), payload.VariantID, payload.Quantity, toSelections(payload.SelectedOptions))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pricingError(err))
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// TransferQuote prices a transfer selection.
func TransferQuote(service *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload flatQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := service.QuoteTransfer(r.Context(), chi.URLParam(r, "id"), payload.VariantID, payload.Quantity, toSelections(payload.SelectedOptions))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pricingError(err))
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func toSelections(options []selectedOption) []cartsvc.SelectedOption {
	selections := make([]cartsvc.SelectedOption, 0, len(options))
	for _, opt := range options {
		selections = append(selections, cartsvc.SelectedOption{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
		})
	}
	return selections
}

// pricingError keeps remote error codes intact and downgrades calculator
// failures to validation errors with their message.
func pricingError(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
}
