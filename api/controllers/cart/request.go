package cart

import (
	cartdto "github.com/tourbay/storefront/api/controllers/cart/dto"
	cartsvc "github.com/tourbay/storefront/internal/cart"
	"github.com/tourbay/storefront/pkg/bookingapi"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
)

func toRemoteAdd(payload cartdto.AddItemRequest) (bookingapi.AddCartItemRequest, error) {
	req := bookingapi.AddCartItemRequest{
		ProductType: payload.ProductType,
		ProductID:   payload.ProductID,
		VariantID:   payload.VariantID,
		Quantity:    payload.Quantity,
		BookingData: bookingapi.BookingData{
			ScheduleID:      payload.ScheduleID,
			SpecialRequests: payload.SpecialRequests,
		},
	}

	for _, opt := range payload.SelectedOptions {
		if opt.Quantity <= 0 {
			continue
		}
		req.SelectedOptions = append(req.SelectedOptions, bookingapi.SelectedOption{
			OptionID: opt.OptionID,
			Quantity: opt.Quantity,
		})
	}

	if payload.ProductType == string(cartsvc.ProductTour) {
		if payload.Participants == nil {
			return req, pkgerrors.New(pkgerrors.CodeValidation, "participants are required for tours")
		}
		participants := bookingapi.Participants{
			Adult:  payload.Participants.Adult,
			Child:  payload.Participants.Child,
			Infant: payload.Participants.Infant,
		}
		total := participants.Adult + participants.Child + participants.Infant
		if total < 1 {
			return req, pkgerrors.New(pkgerrors.CodeValidation, "at least one participant is required")
		}
		req.BookingData.Participants = &participants
		// tour quantity always follows the headcount
		req.Quantity = total
	} else if payload.Quantity < 1 {
		return req, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	return req, nil
}

func toUpdatePatch(payload cartdto.UpdateItemRequest) cartsvc.UpdatePatch {
	patch := cartsvc.UpdatePatch{
		Quantity:        payload.Quantity,
		ScheduleID:      payload.ScheduleID,
		SpecialRequests: payload.SpecialRequests,
	}

	if len(payload.Participants) > 0 {
		patch.Participants = make(map[cartsvc.Category]int, len(payload.Participants))
		for category, count := range payload.Participants {
			patch.Participants[cartsvc.Category(category)] = count
		}
	}

	if payload.SelectedOptions != nil {
		patch.SelectedOptions = make([]cartsvc.SelectedOption, 0, len(payload.SelectedOptions))
		for _, opt := range payload.SelectedOptions {
			patch.SelectedOptions = append(patch.SelectedOptions, cartsvc.SelectedOption{
				OptionID: opt.OptionID,
				Quantity: opt.Quantity,
			})
		}
	}

	return patch
}
