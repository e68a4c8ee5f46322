package bookingapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// CategoryPrice is one participant category's entry in a pricing table.
type CategoryPrice struct {
	Factor     decimal.Decimal `json:"factor"`
	FinalPrice decimal.Decimal `json:"final_price"`
	IsFree     bool            `json:"is_free"`
}

// VariantPricing maps participant category (adult/child/infant) to its price.
type VariantPricing map[string]CategoryPrice

// Variant is one bookable package of a product.
type Variant struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// Schedule is one departure/date a product can be booked for.
type Schedule struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	IsFull bool   `json:"is_full"`
}

// ProductOption is a paid add-on offered on the detail page.
type ProductOption struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// TourDetail is the read-only payload backing a tour detail page.
type TourDetail struct {
	ID        string                    `json:"id"`
	Title     string                    `json:"title"`
	Currency  string                    `json:"currency"`
	Variants  []Variant                 `json:"variants"`
	Schedules []Schedule                `json:"schedules"`
	Pricing   map[string]VariantPricing `json:"pricing"`
	Options   []ProductOption           `json:"options"`
}

// EventDetail is the read-only payload backing an event detail page.
// Performance/section/ticket references travel via product and variant ids.
type EventDetail struct {
	ID       string                     `json:"id"`
	Title    string                     `json:"title"`
	Currency string                     `json:"currency"`
	Variants []Variant                  `json:"variants"`
	Prices   map[string]decimal.Decimal `json:"prices"`
	Options  []ProductOption            `json:"options"`
}

// TransferDetail is the read-only payload backing a transfer detail page.
// Route/vehicle references travel via product and variant ids.
type TransferDetail struct {
	ID       string                     `json:"id"`
	Title    string                     `json:"title"`
	Currency string                     `json:"currency"`
	Variants []Variant                  `json:"variants"`
	Prices   map[string]decimal.Decimal `json:"prices"`
	Options  []ProductOption            `json:"options"`
}

// GetTour fetches a tour detail payload.
func (c *Client) GetTour(ctx context.Context, id string) (*TourDetail, error) {
	var envelope struct {
		Data TourDetail `json:"data"`
	}
	if err := c.do(ctx, "catalog.tour", http.MethodGet, "/tours/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// GetEvent fetches an event detail payload.
func (c *Client) GetEvent(ctx context.Context, id string) (*EventDetail, error) {
	var envelope struct {
		Data EventDetail `json:"data"`
	}
	if err := c.do(ctx, "catalog.event", http.MethodGet, "/events/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// GetTransfer fetches a transfer detail payload.
func (c *Client) GetTransfer(ctx context.Context, id string) (*TransferDetail, error) {
	var envelope struct {
		Data TransferDetail `json:"data"`
	}
	if err := c.do(ctx, "catalog.transfer", http.MethodGet, "/transfers/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
