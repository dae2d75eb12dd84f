package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/pastaprego-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/pastaprego-backend/api/controllers/cart"
	catalogcontrollers "github.com/angelmondragon/pastaprego-backend/api/controllers/catalog"
	ordercontrollers "github.com/angelmondragon/pastaprego-backend/api/controllers/orders"
	"github.com/angelmondragon/pastaprego-backend/api/middleware"
	"github.com/angelmondragon/pastaprego-backend/internal/cart"
	"github.com/angelmondragon/pastaprego-backend/internal/orders"
	"github.com/angelmondragon/pastaprego-backend/pkg/config"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/metrics"
	"github.com/angelmondragon/pastaprego-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storefrontMetrics *metrics.Storefront,
	gatherer prometheus.Gatherer,
	storagePinger controllers.Pinger,
	redisClient *redis.Client,
	catalogReader catalogcontrollers.Reader,
	cartService cart.Service,
	transitions cartcontrollers.Transitions,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, storefrontMetrics),
		middleware.CORS(cfg.Storefront.AllowedOrigins),
	)

	readiness := []controllers.Dependency{{Name: "storage", Pinger: storagePinger}}
	// a nil *redis.Client must not reach the interfaces below
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		readiness = append(readiness, controllers.Dependency{Name: "redis", Pinger: redisClient})
		idempotencyStore = redisClient
	}
	idempotent := middleware.Idempotency(idempotencyStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, readiness...))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", catalogcontrollers.Categories(catalogReader, logg))
			r.Get("/products", catalogcontrollers.Products(catalogReader, logg))
			r.Get("/products/{productId}", catalogcontrollers.Product(catalogReader, logg))
			r.Get("/extras", catalogcontrollers.Extras(catalogReader, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(middleware.SessionOptions{
				CookieName: cfg.Storefront.SessionCookie,
				Secure:     cfg.Storefront.SecureCookie,
			}, logg))

			r.Get("/cart", cartcontrollers.CartFetch(cartService, transitions, logg))
			r.Delete("/cart", cartcontrollers.CartClear(cartService, logg))
			r.With(idempotent).Post("/cart/items", cartcontrollers.CartAddItem(cartService, transitions, logg))
			r.Patch("/cart/items/{lineItemKey}", cartcontrollers.CartUpdateQuantity(cartService, logg))
			r.Delete("/cart/items/{lineItemKey}", cartcontrollers.CartRemoveItem(cartService, logg))

			r.Post("/checkout/validate", ordercontrollers.ValidateCheckout(ordersService, logg))

			r.With(idempotent).Post("/orders", ordercontrollers.PlaceOrder(ordersService, logg))
			r.Get("/orders/last", ordercontrollers.LastOrder(ordersService, logg))
		})
	})

	return r
}
