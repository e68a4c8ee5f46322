package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/tourbay/storefront/api/responses"
	pkgauth "github.com/tourbay/storefront/pkg/auth"
	"github.com/tourbay/storefront/pkg/bookingapi"
	"github.com/tourbay/storefront/pkg/config"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
	"github.com/tourbay/storefront/pkg/logger"
)

// Auth validates the bearer token minted by the platform auth service and
// seeds the request context with the user identity plus the raw token, which
// the booking client forwards on every remote call. Unauthenticated requests
// get a redirect target back to the originating page in the error details.
func Auth(jwtCfg config.JWTConfig, authCfg config.AuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, unauthorized(authCfg, r, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, unauthorized(authCfg, r, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(jwtCfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, unauthorized(authCfg, r, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			if claims.Locale != "" {
				ctx = WithLocale(ctx, claims.Locale)
			}
			ctx = bookingapi.ContextWithToken(ctx, token)
			// the platform can still reject the token mid-session; keep the
			// redirect target around so that 401 also points back here
			ctx = responses.WithLoginRedirect(ctx, loginRedirect(authCfg, r))

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized builds the 401 with a login redirect that returns the user
// to the page they were on.
func unauthorized(cfg config.AuthConfig, r *http.Request, msg string) error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, msg).
		WithDetails(map[string]string{"redirect": loginRedirect(cfg, r)})
}

func loginRedirect(cfg config.AuthConfig, r *http.Request) string {
	loginURL := cfg.LoginURL
	if loginURL == "" {
		loginURL = "/login"
	}
	return loginURL + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
}
