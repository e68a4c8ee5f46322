package currency

import (
	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/pkg/bookingapi"
)

// fallbackTable is served when the platform's supported-currencies endpoint
// is unreachable. Rates are stale by definition; conversions against them
// are flagged degraded. Keep in sync with the platform's base set.
var fallbackTable = bookingapi.SupportedCurrencies{
	Base: "USD",
	Currencies: []bookingapi.Currency{
		{Code: "USD", Name: "US Dollar", Symbol: "$", Rate: decimal.NewFromInt(1)},
		{Code: "EUR", Name: "Euro", Symbol: "€", Rate: decimal.RequireFromString("0.92")},
		{Code: "GBP", Name: "British Pound", Symbol: "£", Rate: decimal.RequireFromString("0.79")},
		{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Rate: decimal.RequireFromString("149.50")},
		{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Rate: decimal.RequireFromString("1.53")},
		{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Rate: decimal.RequireFromString("1.36")},
		{Code: "TRY", Name: "Turkish Lira", Symbol: "₺", Rate: decimal.RequireFromString("34.20")},
		{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ", Rate: decimal.RequireFromString("3.67")},
	},
}

// FallbackCurrencies returns a copy of the built-in table.
func FallbackCurrencies() bookingapi.SupportedCurrencies {
	table := fallbackTable
	table.Currencies = make([]bookingapi.Currency, len(fallbackTable.Currencies))
	copy(table.Currencies, fallbackTable.Currencies)
	return table
}
