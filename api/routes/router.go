package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tourbay/storefront/api/controllers"
	cartcontrollers "github.com/tourbay/storefront/api/controllers/cart"
	catalogcontrollers "github.com/tourbay/storefront/api/controllers/catalog"
	currencycontrollers "github.com/tourbay/storefront/api/controllers/currency"
	"github.com/tourbay/storefront/api/middleware"
	cartsvc "github.com/tourbay/storefront/internal/cart"
	catalogsvc "github.com/tourbay/storefront/internal/catalog"
	currencysvc "github.com/tourbay/storefront/internal/currency"
	"github.com/tourbay/storefront/pkg/bookingapi"
	"github.com/tourbay/storefront/pkg/config"
	"github.com/tourbay/storefront/pkg/logger"
	"github.com/tourbay/storefront/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *redis.Client,
	booking *bookingapi.Client,
	cartManager *cartsvc.Manager,
	catalogService *catalogsvc.Service,
	currencyService *currencysvc.Service,
	presenter *currencysvc.Presenter,
	preferences currencycontrollers.PreferenceStore,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbPinger,
			"redis":    redisClient,
		}))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())
		r.Get("/currencies", currencycontrollers.Supported(currencyService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, cfg.Auth, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartManager, presenter, preferences, logg))
			r.Delete("/", cartcontrollers.CartClear(cartManager, logg))
			r.Post("/items", cartcontrollers.CartItemAdd(cartManager, booking, logg))
			r.Patch("/items/{itemID}", cartcontrollers.CartItemUpdate(cartManager, logg))
			r.Delete("/items/{itemID}", cartcontrollers.CartItemRemove(cartManager, logg))
		})

		r.Route("/currencies", func(r chi.Router) {
			r.Get("/", currencycontrollers.Supported(currencyService, logg))
			r.Get("/preference", currencycontrollers.PreferenceGet(preferences, logg))
			r.Put("/preference", currencycontrollers.PreferenceSet(currencyService, preferences, logg))
			r.Get("/present", currencycontrollers.Present(presenter, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Route("/tours/{id}", func(r chi.Router) {
				r.Get("/", catalogcontrollers.TourDetail(catalogService, logg))
				r.Post("/quote", catalogcontrollers.TourQuote(catalogService, logg))
			})
			r.Route("/events/{id}", func(r chi.Router) {
				r.Get("/", catalogcontrollers.EventDetail(catalogService, logg))
				r.Post("/quote", catalogcontrollers.EventQuote(catalogService, logg))
			})
			r.Route("/transfers/{id}", func(r chi.Router) {
				r.Get("/", catalogcontrollers.TransferDetail(catalogService, logg))
				r.Post("/quote", catalogcontrollers.TransferQuote(catalogService, logg))
			})
		})
	})

	return r
}
