// Package catalog maps remote product detail payloads into what detail
// pages need: the raw payload, a bookability verdict, and price quotes.
package catalog

import (
	"context"

	"github.com/tourbay/storefront/internal/cart"
	"github.com/tourbay/storefront/internal/pricing"
	"github.com/tourbay/storefront/pkg/bookingapi"
	"go.uber.org/multierr"
)

// Reader is the catalog slice of the booking platform client.
type Reader interface {
	GetTour(ctx context.Context, id string) (*bookingapi.TourDetail, error)
	GetEvent(ctx context.Context, id string) (*bookingapi.EventDetail, error)
	GetTransfer(ctx context.Context, id string) (*bookingapi.TransferDetail, error)
}

// TourView is a tour detail page's payload plus its bookability verdict.
type TourView struct {
	Detail   bookingapi.TourDetail `json:"detail"`
	Bookable bool                  `json:"bookable"`
	Reasons  []string              `json:"reasons,omitempty"`
}

type Service struct {
	remote Reader
}

func NewService(remote Reader) *Service {
	return &Service{remote: remote}
}

// Tour fetches a tour and evaluates whether it can be booked at all. Each
// failed precondition surfaces as its own reason string.
func (s *Service) Tour(ctx context.Context, id string) (*TourView, error) {
	detail, err := s.remote.GetTour(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &TourView{Detail: *detail, Bookable: true}
	if err := pricing.CheckTourBookable(detail); err != nil {
		view.Bookable = false
		for _, failure := range multierr.Errors(err) {
			view.Reasons = append(view.Reasons, failure.Error())
		}
	}
	return view, nil
}

// Event fetches an event detail payload.
func (s *Service) Event(ctx context.Context, id string) (*bookingapi.EventDetail, error) {
	return s.remote.GetEvent(ctx, id)
}

// Transfer fetches a transfer detail payload.
func (s *Service) Transfer(ctx context.Context, id string) (*bookingapi.TransferDetail, error) {
	return s.remote.GetTransfer(ctx, id)
}

// QuoteTour prices a tour selection from the live catalog payload.
func (s *Service) QuoteTour(ctx context.Context, id, variantID string, participants cart.Participants, selections []cart.SelectedOption) (*pricing.Quote, error) {
	detail, err := s.remote.GetTour(ctx, id)
	if err != nil {
		return nil, err
	}
	return pricing.QuoteTour(detail, variantID, participants, selections)
}

// QuoteEvent prices an event selection.
func (s *Service) QuoteEvent(ctx context.Context, id, variantID string, quantity int, selections []cart.SelectedOption) (*pricing.Quote, error) {
	detail, err := s.remote.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return pricing.QuoteFlat(detail.Currency, detail.Prices, variantID, quantity, detail.Options, selections)
}

// QuoteTransfer prices a transfer selection.
func (s *Service) QuoteTransfer(ctx context.Context, id, variantID string, quantity int, selections []cart.SelectedOption) (*pricing.Quote, error) {
	detail, err := s.remote.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	return pricing.QuoteFlat(detail.Currency, detail.Prices, variantID, quantity, detail.Options, selections)
}
