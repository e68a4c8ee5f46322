package currency

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/pkg/bookingapi"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
)

type fakeConverter struct {
	mu           sync.Mutex
	supported    *bookingapi.SupportedCurrencies
	supportedErr error
	convertFn    func(amount decimal.Decimal, from, to string) (*bookingapi.ConversionResult, error)
	supportCalls int
	convertCalls int
}

func (f *fakeConverter) GetSupportedCurrencies(ctx context.Context) (*bookingapi.SupportedCurrencies, error) {
	f.mu.Lock()
	f.supportCalls++
	f.mu.Unlock()
	if f.supportedErr != nil {
		return nil, f.supportedErr
	}
	return f.supported, nil
}

func (f *fakeConverter) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) (*bookingapi.ConversionResult, error) {
	f.mu.Lock()
	f.convertCalls++
	fn := f.convertFn
	f.mu.Unlock()
	if fn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "no convert handler")
	}
	return fn(amount, from, to)
}

type fakeCache struct {
	values map[string]string
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value.(string)
	return nil
}

func (f *fakeCache) SupportedCurrenciesKey() string {
	return "sf:currencies:supported"
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func platformTable() *bookingapi.SupportedCurrencies {
	return &bookingapi.SupportedCurrencies{
		Base: "USD",
		Currencies: []bookingapi.Currency{
			{Code: "USD", Name: "US Dollar", Symbol: "$", Rate: decimal.NewFromInt(1)},
			{Code: "EUR", Name: "Euro", Symbol: "€", Rate: dec("0.92")},
		},
	}
}

func TestSupportedCachesPlatformTable(t *testing.T) {
	remote := &fakeConverter{supported: platformTable()}
	cache := newFakeCache()
	service := NewService(remote, cache, time.Hour, nil)
	ctx := context.Background()

	table, degraded := service.Supported(ctx)
	if degraded {
		t.Fatal("unexpected degradation")
	}
	if len(table.Currencies) != 2 {
		t.Fatalf("unexpected table %+v", table)
	}

	// second call must be served from the cache
	if _, degraded := service.Supported(ctx); degraded {
		t.Fatal("unexpected degradation on cached read")
	}
	if remote.supportCalls != 1 {
		t.Fatalf("expected 1 remote call, got %d", remote.supportCalls)
	}
}

func TestSupportedFallsBackWhenUnreachable(t *testing.T) {
	remote := &fakeConverter{supportedErr: pkgerrors.New(pkgerrors.CodeUpstream, "down")}
	service := NewService(remote, newFakeCache(), time.Hour, nil)

	table, degraded := service.Supported(context.Background())
	if !degraded {
		t.Fatal("expected degraded flag with fallback table")
	}
	if table.Base != "USD" || len(table.Currencies) == 0 {
		t.Fatalf("fallback table missing: %+v", table)
	}
}

func TestIsSupported(t *testing.T) {
	remote := &fakeConverter{supported: platformTable()}
	service := NewService(remote, nil, time.Hour, nil)
	ctx := context.Background()

	if !service.IsSupported(ctx, "eur") {
		t.Fatal("expected EUR to be supported")
	}
	if service.IsSupported(ctx, "XXX") {
		t.Fatal("expected XXX to be unsupported")
	}
}

func TestConvertIdentitySkipsCollaborator(t *testing.T) {
	remote := &fakeConverter{}
	service := NewService(remote, nil, time.Hour, nil)

	conv := service.Convert(context.Background(), dec("100"), "USD", "USD")
	if conv.Converted || conv.Degraded {
		t.Fatalf("identity conversion flagged: %+v", conv)
	}
	if !conv.Amount.Equal(dec("100")) || conv.Currency != "USD" {
		t.Fatalf("identity conversion changed the value: %+v", conv)
	}
	if remote.convertCalls != 0 {
		t.Fatalf("identity conversion reached the platform %d times", remote.convertCalls)
	}
}

func TestConvertZeroShortCircuits(t *testing.T) {
	remote := &fakeConverter{}
	service := NewService(remote, nil, time.Hour, nil)

	conv := service.Convert(context.Background(), decimal.Zero, "USD", "EUR")
	if !conv.Amount.IsZero() || conv.Currency != "EUR" || !conv.Converted {
		t.Fatalf("unexpected zero conversion %+v", conv)
	}
	if remote.convertCalls != 0 {
		t.Fatalf("zero conversion reached the platform %d times", remote.convertCalls)
	}
}

func TestConvertSuccess(t *testing.T) {
	remote := &fakeConverter{
		convertFn: func(amount decimal.Decimal, from, to string) (*bookingapi.ConversionResult, error) {
			return &bookingapi.ConversionResult{Amount: dec("91.53"), Currency: to}, nil
		},
	}
	service := NewService(remote, nil, time.Hour, nil)

	conv := service.Convert(context.Background(), dec("100"), "USD", "EUR")
	if !conv.Converted || conv.Degraded {
		t.Fatalf("unexpected flags %+v", conv)
	}
	if !conv.Amount.Equal(dec("91.53")) || conv.Currency != "EUR" {
		t.Fatalf("unexpected result %+v", conv)
	}
}

func TestConvertFailureFallsBackToOriginal(t *testing.T) {
	remote := &fakeConverter{
		convertFn: func(decimal.Decimal, string, string) (*bookingapi.ConversionResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUpstream, "down")
		},
	}
	service := NewService(remote, nil, time.Hour, nil)

	conv := service.Convert(context.Background(), dec("100"), "USD", "EUR")
	if !conv.Degraded || conv.Converted {
		t.Fatalf("failure not flagged degraded: %+v", conv)
	}
	// the original amount and currency ride through, never a wrong number
	if !conv.Amount.Equal(dec("100")) || conv.Currency != "USD" {
		t.Fatalf("degraded conversion altered the value: %+v", conv)
	}
}
