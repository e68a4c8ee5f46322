package cartdto

import "github.com/shopspring/decimal"

// ParticipantCounts carries per-category headcounts on tour payloads.
type ParticipantCounts struct {
	Adult  int `json:"adult" validate:"min=0"`
	Child  int `json:"child" validate:"min=0"`
	Infant int `json:"infant" validate:"min=0"`
}

// SelectedOption is one paid add-on selection.
type SelectedOption struct {
	OptionID string `json:"option_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// AddItemRequest is the POST /cart/items payload.
type AddItemRequest struct {
	ProductType     string             `json:"product_type" validate:"required,oneof=tour event transfer"`
	ProductID       string             `json:"product_id" validate:"required"`
	VariantID       string             `json:"variant_id"`
	Quantity        int                `json:"quantity" validate:"min=0"`
	Participants    *ParticipantCounts `json:"participants,omitempty"`
	ScheduleID      string             `json:"schedule_id,omitempty"`
	SpecialRequests string             `json:"special_requests,omitempty"`
	SelectedOptions []SelectedOption   `json:"selected_options,omitempty"`
}

// UpdateItemRequest is the PATCH /cart/items/{id} payload. Absent fields
// leave the current values untouched.
type UpdateItemRequest struct {
	Quantity        *int             `json:"quantity,omitempty"`
	Participants    map[string]int   `json:"participants,omitempty"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
	ScheduleID      *string          `json:"schedule_id,omitempty"`
	SpecialRequests *string          `json:"special_requests,omitempty"`
}

// ItemView is one cart line as the UI renders it.
type ItemView struct {
	ID              string             `json:"id"`
	ProductType     string             `json:"product_type"`
	ProductID       string             `json:"product_id"`
	VariantID       string             `json:"variant_id,omitempty"`
	Quantity        int                `json:"quantity"`
	UnitPrice       decimal.Decimal    `json:"unit_price"`
	OptionsTotal    decimal.Decimal    `json:"options_total"`
	TotalPrice      decimal.Decimal    `json:"total_price"`
	Currency        string             `json:"currency"`
	Participants    *ParticipantCounts `json:"participants,omitempty"`
	ScheduleID      string             `json:"schedule_id,omitempty"`
	SpecialRequests string             `json:"special_requests,omitempty"`
	SelectedOptions []SelectedOption   `json:"selected_options,omitempty"`
	Updating        bool               `json:"updating"`
}

// CartView is the aggregate read model plus display formatting.
type CartView struct {
	Items          []ItemView      `json:"items"`
	TotalItems     int             `json:"total_items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Currency       string          `json:"currency"`
	DisplayTotal   string          `json:"display_total,omitempty"`
	DisplayDegraded bool           `json:"display_degraded,omitempty"`
}

// MutationResult reports a cart mutation outcome together with the state
// the UI should now render.
type MutationResult struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Cart    CartView `json:"cart"`
}
