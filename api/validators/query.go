package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/tourbay/storefront/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// CurrencyCode validates a three-letter ISO code from a query or path value.
func CurrencyCode(value string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if len(code) != 3 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "currency code must be 3 letters").WithDetails(map[string]any{"field": "currency"})
	}
	return code, nil
}
