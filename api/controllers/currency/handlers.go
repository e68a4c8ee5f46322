package currency

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tourbay/storefront/api/middleware"
	"github.com/tourbay/storefront/api/responses"
	"github.com/tourbay/storefront/api/validators"
	currencysvc "github.com/tourbay/storefront/internal/currency"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
	"github.com/tourbay/storefront/pkg/logger"
)

// PreferenceStore persists per-user display currency choices.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, code string) error
}

type supportedResponse struct {
	Base       string `json:"base"`
	Currencies any    `json:"currencies"`
	Degraded   bool   `json:"degraded"`
}

type preferenceRequest struct {
	Code string `json:"code" validate:"required,len=3"`
}

type preferenceResponse struct {
	Code string `json:"code"`
}

// Supported lists the currencies the storefront can display.
func Supported(service *currencysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, degraded := service.Supported(r.Context())
		responses.WriteSuccess(w, supportedResponse{
			Base:       table.Base,
			Currencies: table.Currencies,
			Degraded:   degraded,
		})
	}
}

// PreferenceGet returns the user's display currency.
func PreferenceGet(prefs PreferenceStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		code, err := prefs.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load currency preference"))
			return
		}
		responses.WriteSuccess(w, preferenceResponse{Code: code})
	}
}

// PreferenceSet stores the user's display currency after checking it
// against the supported table.
func PreferenceSet(service *currencysvc.Service, prefs PreferenceStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload preferenceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := validators.CurrencyCode(payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !service.IsSupported(r.Context(), code) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "currency not supported").WithDetails(map[string]string{"code": code}))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if err := prefs.Set(r.Context(), userID, code); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store currency preference"))
			return
		}
		responses.WriteSuccess(w, preferenceResponse{Code: code})
	}
}

// Present converts and formats one amount for display.
func Present(presenter *currencysvc.Presenter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		amount, err := decimal.NewFromString(query.Get("amount"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal number"))
			return
		}

		from, err := validators.CurrencyCode(query.Get("from"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.CurrencyCode(query.Get("to"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, presenter.Present(r.Context(), amount, from, to, locale))
	}
}
