package currency

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeSource struct {
	calls  int
	result Conversion
}

func (f *fakeSource) Convert(ctx context.Context, amount decimal.Decimal, from, to string) Conversion {
	f.calls++
	return f.result
}

func TestPresentZeroNeverConsultsSource(t *testing.T) {
	source := &fakeSource{}
	presenter := NewPresenter(source)

	p := presenter.Present(context.Background(), decimal.Zero, "USD", "EUR", "en")
	if source.calls != 0 {
		t.Fatalf("zero amount consulted the source %d times", source.calls)
	}
	if p.Currency != "EUR" || !p.Amount.IsZero() {
		t.Fatalf("unexpected presentation %+v", p)
	}
	if p.Formatted == "" {
		t.Fatal("expected formatted output for zero")
	}
}

func TestPresentIdentitySkipsSource(t *testing.T) {
	source := &fakeSource{}
	presenter := NewPresenter(source)

	p := presenter.Present(context.Background(), decimal.RequireFromString("42.50"), "USD", "USD", "en")
	if source.calls != 0 {
		t.Fatalf("identity presentation consulted the source %d times", source.calls)
	}
	if p.Converted || p.Degraded {
		t.Fatalf("identity presentation flagged: %+v", p)
	}
	if !strings.Contains(p.Formatted, "42.50") {
		t.Fatalf("unexpected formatting %q", p.Formatted)
	}
}

func TestPresentPropagatesDegradation(t *testing.T) {
	source := &fakeSource{result: Conversion{
		Amount:   decimal.RequireFromString("100"),
		Currency: "USD",
		Degraded: true,
	}}
	presenter := NewPresenter(source)

	p := presenter.Present(context.Background(), decimal.RequireFromString("100"), "USD", "EUR", "en")
	if !p.Degraded {
		t.Fatal("degradation lost in presentation")
	}
	// the original currency stays visible instead of a wrong EUR figure
	if p.Currency != "USD" {
		t.Fatalf("degraded presentation switched currency: %+v", p)
	}
}

func TestPresentConverted(t *testing.T) {
	source := &fakeSource{result: Conversion{
		Amount:    decimal.RequireFromString("91.53"),
		Currency:  "EUR",
		Converted: true,
	}}
	presenter := NewPresenter(source)

	p := presenter.Present(context.Background(), decimal.RequireFromString("100"), "USD", "EUR", "de")
	if !p.Converted || p.Degraded {
		t.Fatalf("unexpected flags %+v", p)
	}
	if p.Currency != "EUR" {
		t.Fatalf("unexpected currency %q", p.Currency)
	}
	if source.calls != 1 {
		t.Fatalf("expected exactly one source call, got %d", source.calls)
	}
}

func TestFormat(t *testing.T) {
	formatted := Format(decimal.RequireFromString("1234.50"), "USD", "en")
	if !strings.Contains(formatted, "$") {
		t.Fatalf("unexpected en formatting %q", formatted)
	}

	// unknown codes degrade to "CODE amount"
	formatted = Format(decimal.RequireFromString("10"), "ZZZ", "en")
	if formatted != "ZZZ 10.00" {
		t.Fatalf("unexpected fallback formatting %q", formatted)
	}
}
