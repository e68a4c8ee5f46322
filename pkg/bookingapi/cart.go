package bookingapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Participants mirrors the per-category headcount of a tour booking.
type Participants struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Infant int `json:"infant"`
}

// BookingData is resent in full on every update; the platform does not
// support partial patches.
type BookingData struct {
	Participants    *Participants `json:"participants,omitempty"`
	ScheduleID      string        `json:"schedule_id,omitempty"`
	SpecialRequests string        `json:"special_requests,omitempty"`
}

// SelectedOption is one paid add-on attached to a line item.
type SelectedOption struct {
	OptionID string `json:"option_id"`
	Quantity int    `json:"quantity"`
}

// CartItem is the platform's authoritative view of one cart line.
type CartItem struct {
	ID              string           `json:"id"`
	ProductType     string           `json:"product_type"`
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id,omitempty"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	OptionsTotal    decimal.Decimal  `json:"options_total"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	Currency        string           `json:"currency"`
	BookingData     BookingData      `json:"booking_data"`
	SelectedOptions []SelectedOption `json:"selected_options"`
}

// CartSnapshot is the full cart as the platform sees it.
type CartSnapshot struct {
	Items    []CartItem `json:"items"`
	Currency string     `json:"currency"`
}

// AddCartItemRequest is the POST /cart/add payload.
type AddCartItemRequest struct {
	ProductType     string           `json:"product_type"`
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id,omitempty"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	BookingData     BookingData      `json:"booking_data"`
}

// UpdateCartItemRequest is the PATCH /cart/items/{id} payload. Same shape as
// add minus product identity; booking_data must always be complete.
type UpdateCartItemRequest struct {
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	BookingData     BookingData      `json:"booking_data"`
}

// GetCart fetches the authoritative cart snapshot.
func (c *Client) GetCart(ctx context.Context) (*CartSnapshot, error) {
	var envelope struct {
		Data CartSnapshot `json:"data"`
	}
	if err := c.do(ctx, "cart.get", http.MethodGet, "/cart", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// AddCartItem persists a new line item and returns the created record.
func (c *Client) AddCartItem(ctx context.Context, req AddCartItemRequest) (*CartItem, error) {
	var envelope struct {
		Data CartItem `json:"data"`
	}
	if err := c.do(ctx, "cart.add", http.MethodPost, "/cart/add", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateCartItem submits a full-payload update and returns the confirmed item.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, req UpdateCartItemRequest) (*CartItem, error) {
	var envelope struct {
		Data CartItem `json:"data"`
	}
	path := "/cart/items/" + url.PathEscape(itemID)
	if err := c.do(ctx, "cart.update", http.MethodPatch, path, req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteCartItem removes a line item.
func (c *Client) DeleteCartItem(ctx context.Context, itemID string) error {
	path := "/cart/items/" + url.PathEscape(itemID)
	return c.do(ctx, "cart.remove", http.MethodDelete, path, nil, nil)
}

// ClearCart empties the remote cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "cart.clear", http.MethodDelete, "/cart/clear", nil, nil)
}
