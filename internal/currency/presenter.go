package currency

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// conversionSource lets the presenter be tested without a live service.
type conversionSource interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) Conversion
}

// Presentation is a display-ready money value. Degraded presentations keep
// the original currency so the UI never shows a silently wrong number.
type Presentation struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
	Converted bool            `json:"converted"`
	Degraded  bool            `json:"degraded"`
}

// Presenter converts and formats amounts for a locale.
type Presenter struct {
	source conversionSource
}

func NewPresenter(source conversionSource) *Presenter {
	return &Presenter{source: source}
}

// Present converts amount from its original currency into the display
// currency and formats it for the locale. Zero amounts format directly in
// the display currency without consulting the conversion source.
func (p *Presenter) Present(ctx context.Context, amount decimal.Decimal, from, to, locale string) Presentation {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if amount.IsZero() {
		code := to
		if code == "" {
			code = from
		}
		return Presentation{
			Amount:    decimal.Zero,
			Currency:  code,
			Formatted: Format(decimal.Zero, code, locale),
			Converted: to != "" && from != to,
		}
	}

	if to == "" || from == to {
		return Presentation{
			Amount:    amount,
			Currency:  from,
			Formatted: Format(amount, from, locale),
		}
	}

	conv := p.source.Convert(ctx, amount, from, to)
	return Presentation{
		Amount:    conv.Amount,
		Currency:  conv.Currency,
		Formatted: Format(conv.Amount, conv.Currency, locale),
		Converted: conv.Converted,
		Degraded:  conv.Degraded,
	}
}

// Format renders an amount with the locale's number and symbol conventions.
// Unknown locales fall back to English; unknown currency codes render as
// "CODE amount".
func Format(amount decimal.Decimal, code, locale string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", code, amount.StringFixed(2))
	}

	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		tag = language.AmericanEnglish
	}

	value, _ := amount.Float64()
	printer := message.NewPrinter(tag)
	return printer.Sprintf("%v", currency.NarrowSymbol(unit.Amount(value)))
}
