package bookingapi

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// Currency describes one supported currency and its rate against the base.
type Currency struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Rate   decimal.Decimal `json:"rate"`
}

// SupportedCurrencies is the payload of the supported-currencies endpoint.
type SupportedCurrencies struct {
	Base       string     `json:"base"`
	Currencies []Currency `json:"currencies"`
}

// ConversionResult carries a converted amount plus the platform's formatting.
type ConversionResult struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}

// GetSupportedCurrencies fetches the currency table the platform supports.
func (c *Client) GetSupportedCurrencies(ctx context.Context) (*SupportedCurrencies, error) {
	var envelope struct {
		Data SupportedCurrencies `json:"data"`
	}
	if err := c.do(ctx, "currency.supported", http.MethodGet, "/currencies", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// ConvertAmount converts between two supported currencies.
func (c *Client) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) (*ConversionResult, error) {
	req := struct {
		Amount decimal.Decimal `json:"amount"`
		From   string          `json:"from"`
		To     string          `json:"to"`
	}{Amount: amount, From: from, To: to}

	var envelope struct {
		Data ConversionResult `json:"data"`
	}
	if err := c.do(ctx, "currency.convert", http.MethodPost, "/currencies/convert", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
