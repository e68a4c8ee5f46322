package cart

import (
	"context"

	cartdto "github.com/tourbay/storefront/api/controllers/cart/dto"
	cartsvc "github.com/tourbay/storefront/internal/cart"
	"github.com/tourbay/storefront/internal/currency"
)

func newCartView(ctx context.Context, store *cartsvc.Store, presenter *currency.Presenter, displayCode, locale string) cartdto.CartView {
	agg := store.Aggregate()

	view := cartdto.CartView{
		Items:      make([]cartdto.ItemView, 0, len(agg.Items)),
		TotalItems: agg.TotalItems,
		TotalPrice: agg.TotalPrice,
		Currency:   agg.Currency,
	}

	for _, item := range agg.Items {
		view.Items = append(view.Items, newItemView(item, store.IsUpdating(item.ID)))
	}

	if presenter != nil {
		presented := presenter.Present(ctx, agg.TotalPrice, agg.Currency, displayCode, locale)
		view.DisplayTotal = presented.Formatted
		view.DisplayDegraded = presented.Degraded
	}

	return view
}

func newItemView(item cartsvc.LineItem, updating bool) cartdto.ItemView {
	view := cartdto.ItemView{
		ID:              item.ID,
		ProductType:     string(item.ProductType),
		ProductID:       item.ProductID,
		VariantID:       item.VariantID,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		OptionsTotal:    item.OptionsTotal,
		TotalPrice:      item.TotalPrice,
		Currency:        item.Currency,
		ScheduleID:      item.BookingData.ScheduleID,
		SpecialRequests: item.BookingData.SpecialRequests,
		Updating:        updating,
	}

	if item.BookingData.Participants != nil {
		view.Participants = &cartdto.ParticipantCounts{
			Adult:  item.BookingData.Participants.Adult,
			Child:  item.BookingData.Participants.Child,
			Infant: item.BookingData.Participants.Infant,
		}
	}

	for _, opt := range item.SelectedOptions {
		view.SelectedOptions = append(view.SelectedOptions, cartdto.SelectedOption{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
		})
	}

	return view
}

func newMutationResult(ctx context.Context, result cartsvc.Result, store *cartsvc.Store) cartdto.MutationResult {
	return cartdto.MutationResult{
		Success: result.Success,
		Error:   result.Error,
		Cart:    newCartView(ctx, store, nil, "", ""),
	}
}
