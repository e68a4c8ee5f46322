// Package pricing computes display quotes from catalog detail payloads. It
// is pure arithmetic: no network, no persistence, decimal end to end.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/internal/cart"
	"github.com/tourbay/storefront/pkg/bookingapi"
	"go.uber.org/multierr"
)

// Bookability failures are distinct so each can render its own message.
var (
	ErrNoSchedules      = errors.New("no available schedules")
	ErrNoActiveVariants = errors.New("no active variants")
	ErrNoPricing        = errors.New("pricing unavailable")
)

// CategoryLine is one participant category's contribution to a quote.
type CategoryLine struct {
	Category  cart.Category   `json:"category"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	IsFree    bool            `json:"is_free"`
}

// OptionLine is one selected add-on's contribution to a quote.
type OptionLine struct {
	OptionID  string          `json:"option_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Quote is the full price breakdown shown before an item enters the cart.
type Quote struct {
	Currency          string          `json:"currency"`
	Categories        []CategoryLine  `json:"categories,omitempty"`
	Options           []OptionLine    `json:"options,omitempty"`
	ParticipantsTotal decimal.Decimal `json:"participants_total"`
	OptionsTotal      decimal.Decimal `json:"options_total"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	// Addable is false when nothing is actually being purchased.
	Addable bool `json:"addable"`
}

// CheckTourBookable verifies the three independent preconditions for
// booking a tour. All failed conditions are reported, not just the first.
func CheckTourBookable(detail *bookingapi.TourDetail) error {
	var err error
	if !hasOpenSchedule(detail.Schedules) {
		err = multierr.Append(err, ErrNoSchedules)
	}
	if !hasActiveVariant(detail.Variants) {
		err = multierr.Append(err, ErrNoActiveVariants)
	}
	if len(detail.Pricing) == 0 {
		err = multierr.Append(err, ErrNoPricing)
	}
	return err
}

// QuoteTour prices a tour selection against its per-category table.
func QuoteTour(detail *bookingapi.TourDetail, variantID string, participants cart.Participants, selections []cart.SelectedOption) (*Quote, error) {
	table, ok := detail.Pricing[variantID]
	if !ok || len(table) == 0 {
		return nil, fmt.Errorf("variant %s: %w", variantID, ErrNoPricing)
	}

	quote := &Quote{
		Currency:          detail.Currency,
		ParticipantsTotal: decimal.Zero,
		OptionsTotal:      decimal.Zero,
	}

	counts := []struct {
		category cart.Category
		count    int
	}{
		{cart.CategoryAdult, participants.Adult},
		{cart.CategoryChild, participants.Child},
		{cart.CategoryInfant, participants.Infant},
	}
	for _, entry := range counts {
		if entry.count == 0 {
			continue
		}
		line, err := categoryLine(table, entry.category, entry.count)
		if err != nil {
			return nil, err
		}
		quote.Categories = append(quote.Categories, line)
		quote.ParticipantsTotal = quote.ParticipantsTotal.Add(line.Subtotal)
	}

	optionLines, optionsTotal, err := priceOptions(detail.Options, selections)
	if err != nil {
		return nil, err
	}
	quote.Options = optionLines
	quote.OptionsTotal = optionsTotal

	quote.GrandTotal = quote.ParticipantsTotal.Add(quote.OptionsTotal)
	quote.Addable = participants.Total() > 0
	return quote, nil
}

// QuoteFlat prices event and transfer selections, which carry a single
// per-variant price instead of a category table.
func QuoteFlat(currency string, prices map[string]decimal.Decimal, variantID string, quantity int, options []bookingapi.ProductOption, selections []cart.SelectedOption) (*Quote, error) {
	unit, ok := prices[variantID]
	if !ok {
		return nil, fmt.Errorf("variant %s: %w", variantID, ErrNoPricing)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	quote := &Quote{
		Currency:          currency,
		ParticipantsTotal: unit.Mul(decimal.NewFromInt(int64(quantity))),
	}

	optionLines, optionsTotal, err := priceOptions(options, selections)
	if err != nil {
		return nil, err
	}
	quote.Options = optionLines
	quote.OptionsTotal = optionsTotal

	quote.GrandTotal = quote.ParticipantsTotal.Add(quote.OptionsTotal)
	quote.Addable = quantity > 0
	return quote, nil
}

// categoryLine resolves one category's cost. Infants and free-flagged
// categories cost zero no matter what the table says; the override runs
// after the lookup so a missing row still fails loudly.
func categoryLine(table bookingapi.VariantPricing, category cart.Category, count int) (CategoryLine, error) {
	price, ok := table[string(category)]
	if !ok {
		return CategoryLine{}, fmt.Errorf("category %s: %w", category, ErrNoPricing)
	}

	line := CategoryLine{
		Category:  category,
		Count:     count,
		UnitPrice: price.FinalPrice,
		IsFree:    price.IsFree,
	}
	if category == cart.CategoryInfant || price.IsFree {
		line.UnitPrice = decimal.Zero
		line.IsFree = true
	}
	line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(count)))
	return line, nil
}

func priceOptions(catalog []bookingapi.ProductOption, selections []cart.SelectedOption) ([]OptionLine, decimal.Decimal, error) {
	byID := make(map[string]bookingapi.ProductOption, len(catalog))
	for _, opt := range catalog {
		byID[opt.ID] = opt
	}

	var lines []OptionLine
	total := decimal.Zero
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		opt, ok := byID[sel.OptionID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("unknown option %s", sel.OptionID)
		}
		line := OptionLine{
			OptionID:  opt.ID,
			Name:      opt.Name,
			Quantity:  sel.Quantity,
			UnitPrice: opt.Price,
			Subtotal:  opt.Price.Mul(decimal.NewFromInt(int64(sel.Quantity))),
		}
		lines = append(lines, line)
		total = total.Add(line.Subtotal)
	}
	return lines, total, nil
}

func hasOpenSchedule(schedules []bookingapi.Schedule) bool {
	for _, s := range schedules {
		if !s.IsFull {
			return true
		}
	}
	return false
}

func hasActiveVariant(variants []bookingapi.Variant) bool {
	for _, v := range variants {
		if v.Active {
			return true
		}
	}
	return false
}
