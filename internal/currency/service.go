package currency

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/pkg/bookingapi"
	"github.com/tourbay/storefront/pkg/logger"
)

// Converter is the currency slice of the booking platform client.
type Converter interface {
	GetSupportedCurrencies(ctx context.Context) (*bookingapi.SupportedCurrencies, error)
	ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) (*bookingapi.ConversionResult, error)
}

// Cache is the redis slice used to memoize the supported-currencies payload.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SupportedCurrenciesKey() string
}

// Conversion is the outcome of a display conversion. Degraded means the
// conversion failed and Amount still carries the original currency; the UI
// must style it distinctly rather than show a wrong number.
type Conversion struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Converted bool            `json:"converted"`
	Degraded  bool            `json:"degraded"`
}

// Service resolves supported currencies and converts display amounts.
type Service struct {
	remote   Converter
	cache    Cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

func NewService(remote Converter, cache Cache, cacheTTL time.Duration, logg *logger.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Service{remote: remote, cache: cache, cacheTTL: cacheTTL, logg: logg}
}

// Supported returns the platform's currency table, memoized in Redis. When
// the platform is unreachable the built-in fallback is served and flagged.
func (s *Service) Supported(ctx context.Context) (bookingapi.SupportedCurrencies, bool) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, false
	}

	table, err := s.remote.GetSupportedCurrencies(ctx)
	if err != nil || table == nil || len(table.Currencies) == 0 {
		if s.logg != nil {
			s.logg.Warn(ctx, "supported currencies unavailable, serving fallback table")
		}
		return FallbackCurrencies(), true
	}

	s.toCache(ctx, *table)
	return *table, false
}

// IsSupported reports whether code appears in the current table.
func (s *Service) IsSupported(ctx context.Context, code string) bool {
	table, _ := s.Supported(ctx)
	code = strings.ToUpper(code)
	for _, c := range table.Currencies {
		if strings.ToUpper(c.Code) == code {
			return true
		}
	}
	return false
}

// Convert converts a display amount between currencies. Zero amounts and
// identity conversions never touch the platform. On failure the original
// amount rides through unchanged, flagged degraded.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) Conversion {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if to == "" || from == to {
		return Conversion{Amount: amount, Currency: from}
	}
	if amount.IsZero() {
		return Conversion{Amount: decimal.Zero, Currency: to, Converted: true}
	}

	result, err := s.remote.ConvertAmount(ctx, amount, from, to)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "currency conversion failed, falling back to original amount", err)
		}
		return Conversion{Amount: amount, Currency: from, Degraded: true}
	}
	return Conversion{Amount: result.Amount, Currency: result.Currency, Converted: true}
}

func (s *Service) fromCache(ctx context.Context) (bookingapi.SupportedCurrencies, bool) {
	if s.cache == nil {
		return bookingapi.SupportedCurrencies{}, false
	}
	raw, err := s.cache.Get(ctx, s.cache.SupportedCurrenciesKey())
	if err != nil || raw == "" {
		return bookingapi.SupportedCurrencies{}, false
	}
	var table bookingapi.SupportedCurrencies
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		return bookingapi.SupportedCurrencies{}, false
	}
	return table, len(table.Currencies) > 0
}

func (s *Service) toCache(ctx context.Context, table bookingapi.SupportedCurrencies) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(table)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.SupportedCurrenciesKey(), string(payload), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "caching supported currencies failed")
	}
}
