package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/tourbay/storefront/api/controllers/cart/dto"
	"github.com/tourbay/storefront/api/middleware"
	"github.com/tourbay/storefront/api/responses"
	"github.com/tourbay/storefront/api/validators"
	cartsvc "github.com/tourbay/storefront/internal/cart"
	"github.com/tourbay/storefront/internal/currency"
	"github.com/tourbay/storefront/pkg/bookingapi"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
	"github.com/tourbay/storefront/pkg/logger"
)

// RemoteAdder is the cart-add slice of the booking platform client.
type RemoteAdder interface {
	AddCartItem(ctx context.Context, req bookingapi.AddCartItemRequest) (*bookingapi.CartItem, error)
}

// PreferenceReader resolves a user's display currency.
type PreferenceReader interface {
	Get(ctx context.Context, userID string) (string, error)
}

// CartFetch returns the cart read model. A ?refresh=true query pulls the
// authoritative snapshot from the platform first.
func CartFetch(manager *cartsvc.Manager, presenter *currency.Presenter, prefs PreferenceReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if strings.EqualFold(r.URL.Query().Get("refresh"), "true") {
			if result := store.Refresh(r.Context()); !result.Success {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUpstream, result.Error))
				return
			}
		}

		displayCode := store.Currency()
		if prefs != nil {
			if code, prefErr := prefs.Get(r.Context(), middleware.UserIDFromContext(r.Context())); prefErr == nil && code != "" {
				displayCode = code
			}
		}

		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, newCartView(r.Context(), store, presenter, displayCode, locale))
	}
}

// CartItemAdd persists a new line item on the platform, then mirrors the
// confirmed record locally.
func CartItemAdd(manager *cartsvc.Manager, adder RemoteAdder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := toRemoteAdd(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmed, err := adder.AddCartItem(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := store.AddItem(r.Context(), cartsvc.FromRemoteItem(*confirmed))
		responses.WriteSuccessStatus(w, http.StatusCreated, newMutationResult(r.Context(), result, store))
	}
}

// CartItemUpdate merges a partial edit, resubmits the full payload to the
// platform, and reports the reconciled state.
func CartItemUpdate(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload cartdto.UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := store.UpdateItem(r.Context(), itemID, toUpdatePatch(payload))
		responses.WriteSuccess(w, newMutationResult(r.Context(), result, store))
	}
}

// CartItemRemove deletes a line item remotely, then locally on success.
func CartItemRemove(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		result := store.RemoveItem(r.Context(), itemID)
		responses.WriteSuccess(w, newMutationResult(r.Context(), result, store))
	}
}

// CartClear empties the cart remotely, then locally on success.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := store.Clear(r.Context())
		responses.WriteSuccess(w, newMutationResult(r.Context(), result, store))
	}
}

func storeFromRequest(r *http.Request, manager *cartsvc.Manager) (*cartsvc.Store, error) {
	if manager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable")
	}
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	store, err := manager.StoreFor(r.Context(), userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cart store")
	}
	return store, nil
}
