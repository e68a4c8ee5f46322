package cart

import (
	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/pkg/bookingapi"
)

// ProductType tags the shape of a line item's booking data.
type ProductType string

const (
	ProductTour     ProductType = "tour"
	ProductEvent    ProductType = "event"
	ProductTransfer ProductType = "transfer"
)

func (p ProductType) IsValid() bool {
	switch p {
	case ProductTour, ProductEvent, ProductTransfer:
		return true
	}
	return false
}

// Category is one participant pricing bucket.
type Category string

const (
	CategoryAdult  Category = "adult"
	CategoryChild  Category = "child"
	CategoryInfant Category = "infant"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryAdult, CategoryChild, CategoryInfant:
		return true
	}
	return false
}

// Participants holds the per-category headcount of a tour line item.
type Participants struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Infant int `json:"infant"`
}

// Total is the derived quantity of a tour line item.
func (p Participants) Total() int {
	return p.Adult + p.Child + p.Infant
}

// WithCount returns a copy with one category replaced.
func (p Participants) WithCount(category Category, count int) Participants {
	switch category {
	case CategoryAdult:
		p.Adult = count
	case CategoryChild:
		p.Child = count
	case CategoryInfant:
		p.Infant = count
	}
	return p
}

// SelectedOption is a paid add-on attached to a line item.
type SelectedOption struct {
	OptionID string `json:"option_id"`
	Quantity int    `json:"quantity"`
}

// BookingData is the variant-shaped payload carried by a line item. The
// remote contract requires resending it in full on every update.
type BookingData struct {
	Participants    *Participants `json:"participants,omitempty"`
	ScheduleID      string        `json:"schedule_id,omitempty"`
	SpecialRequests string        `json:"special_requests,omitempty"`
}

// LineItem is one purchasable unit mirrored from the platform cart.
type LineItem struct {
	ID              string           `json:"id"`
	ProductType     ProductType      `json:"product_type"`
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id,omitempty"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	OptionsTotal    decimal.Decimal  `json:"options_total"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	Currency        string           `json:"currency"`
	BookingData     BookingData      `json:"booking_data"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
}

// Aggregate is the derived read model exposed to the UI chrome.
type Aggregate struct {
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
}

// Result is the uniform outcome of a store operation. Operations report
// failure through it instead of propagating errors to the UI layer.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result {
	return Result{Success: true}
}

func failed(msg string) Result {
	return Result{Success: false, Error: msg}
}

// UpdatePatch describes a partial user edit. The store merges it over the
// current item before building the full remote payload.
type UpdatePatch struct {
	Quantity        *int
	Participants    map[Category]int
	SelectedOptions []SelectedOption
	ScheduleID      *string
	SpecialRequests *string
}

// PruneOptions drops zero-quantity entries before submission.
func PruneOptions(options []SelectedOption) []SelectedOption {
	pruned := make([]SelectedOption, 0, len(options))
	for _, opt := range options {
		if opt.Quantity > 0 {
			pruned = append(pruned, opt)
		}
	}
	return pruned
}

func fromRemoteItem(item bookingapi.CartItem) LineItem {
	options := make([]SelectedOption, 0, len(item.SelectedOptions))
	for _, opt := range item.SelectedOptions {
		options = append(options, SelectedOption{OptionID: opt.OptionID, Quantity: opt.Quantity})
	}

	var participants *Participants
	if item.BookingData.Participants != nil {
		participants = &Participants{
			Adult:  item.BookingData.Participants.Adult,
			Child:  item.BookingData.Participants.Child,
			Infant: item.BookingData.Participants.Infant,
		}
	}

	return LineItem{
		ID:           item.ID,
		ProductType:  ProductType(item.ProductType),
		ProductID:    item.ProductID,
		VariantID:    item.VariantID,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		OptionsTotal: item.OptionsTotal,
		TotalPrice:   item.TotalPrice,
		Currency:     item.Currency,
		BookingData: BookingData{
			Participants:    participants,
			ScheduleID:      item.BookingData.ScheduleID,
			SpecialRequests: item.BookingData.SpecialRequests,
		},
		SelectedOptions: options,
	}
}

// FromRemoteItem converts a platform cart item into the local mirror shape.
func FromRemoteItem(item bookingapi.CartItem) LineItem {
	return fromRemoteItem(item)
}

func toRemoteUpdate(item LineItem) bookingapi.UpdateCartItemRequest {
	options := make([]bookingapi.SelectedOption, 0, len(item.SelectedOptions))
	for _, opt := range item.SelectedOptions {
		options = append(options, bookingapi.SelectedOption{OptionID: opt.OptionID, Quantity: opt.Quantity})
	}

	var participants *bookingapi.Participants
	if item.BookingData.Participants != nil {
		participants = &bookingapi.Participants{
			Adult:  item.BookingData.Participants.Adult,
			Child:  item.BookingData.Participants.Child,
			Infant: item.BookingData.Participants.Infant,
		}
	}

	return bookingapi.UpdateCartItemRequest{
		Quantity:        item.Quantity,
		SelectedOptions: options,
		BookingData: bookingapi.BookingData{
			Participants:    participants,
			ScheduleID:      item.BookingData.ScheduleID,
			SpecialRequests: item.BookingData.SpecialRequests,
		},
	}
}
