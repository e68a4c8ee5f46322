package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/internal/cart"
	"github.com/tourbay/storefront/pkg/bookingapi"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
)

type fakeReader struct {
	tour     *bookingapi.TourDetail
	event    *bookingapi.EventDetail
	transfer *bookingapi.TransferDetail
	err      error
}

func (f *fakeReader) GetTour(ctx context.Context, id string) (*bookingapi.TourDetail, error) {
	return f.tour, f.err
}

func (f *fakeReader) GetEvent(ctx context.Context, id string) (*bookingapi.EventDetail, error) {
	return f.event, f.err
}

func (f *fakeReader) GetTransfer(ctx context.Context, id string) (*bookingapi.TransferDetail, error) {
	return f.transfer, f.err
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func bookableTour() *bookingapi.TourDetail {
	return &bookingapi.TourDetail{
		ID:       "tour-1",
		Currency: "USD",
		Variants: []bookingapi.Variant{{ID: "variant-1", Active: true}},
		Schedules: []bookingapi.Schedule{
			{ID: "sched-1", Date: "2026-09-10"},
		},
		Pricing: map[string]bookingapi.VariantPricing{
			"variant-1": {
				"adult": {FinalPrice: dec("100.00")},
			},
		},
	}
}

func TestTourViewBookable(t *testing.T) {
	service := NewService(&fakeReader{tour: bookableTour()})

	view, err := service.Tour(context.Background(), "tour-1")
	if err != nil {
		t.Fatalf("tour: %v", err)
	}
	if !view.Bookable || len(view.Reasons) != 0 {
		t.Fatalf("expected bookable view, got %+v", view)
	}
}

func TestTourViewCollectsAllReasons(t *testing.T) {
	detail := bookableTour()
	detail.Variants[0].Active = false
	detail.Schedules[0].IsFull = true
	service := NewService(&fakeReader{tour: detail})

	view, err := service.Tour(context.Background(), "tour-1")
	if err != nil {
		t.Fatalf("tour: %v", err)
	}
	if view.Bookable {
		t.Fatal("expected unbookable view")
	}
	if len(view.Reasons) != 2 {
		t.Fatalf("expected both failures reported, got %v", view.Reasons)
	}
}

func TestTourPropagatesRemoteError(t *testing.T) {
	service := NewService(&fakeReader{err: pkgerrors.New(pkgerrors.CodeNotFound, "gone")})

	if _, err := service.Tour(context.Background(), "tour-x"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestQuoteTour(t *testing.T) {
	service := NewService(&fakeReader{tour: bookableTour()})

	quote, err := service.QuoteTour(context.Background(), "tour-1", "variant-1", cart.Participants{Adult: 2}, nil)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !quote.GrandTotal.Equal(dec("200.00")) {
		t.Fatalf("expected 200.00, got %s", quote.GrandTotal)
	}
}

func TestQuoteEvent(t *testing.T) {
	service := NewService(&fakeReader{event: &bookingapi.EventDetail{
		ID:       "event-1",
		Currency: "USD",
		Prices:   map[string]decimal.Decimal{"section-a": dec("40.00")},
	}})

	quote, err := service.QuoteEvent(context.Background(), "event-1", "section-a", 2, nil)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !quote.GrandTotal.Equal(dec("80.00")) {
		t.Fatalf("expected 80.00, got %s", quote.GrandTotal)
	}
}

func TestQuoteTransfer(t *testing.T) {
	service := NewService(&fakeReader{transfer: &bookingapi.TransferDetail{
		ID:       "transfer-1",
		Currency: "EUR",
		Prices:   map[string]decimal.Decimal{"sedan": dec("55.00")},
	}})

	quote, err := service.QuoteTransfer(context.Background(), "transfer-1", "sedan", 1, nil)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !quote.GrandTotal.Equal(dec("55.00")) {
		t.Fatalf("expected 55.00, got %s", quote.GrandTotal)
	}
}
