package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storefrontlabs/storefront-api/api/controllers"
	"github.com/storefrontlabs/storefront-api/api/middleware"
	cartsvc "github.com/storefrontlabs/storefront-api/internal/cart"
	checkoutsvc "github.com/storefrontlabs/storefront-api/internal/checkout"
	userssvc "github.com/storefrontlabs/storefront-api/internal/users"
	"github.com/storefrontlabs/storefront-api/pkg/config"
	"github.com/storefrontlabs/storefront-api/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storePinger controllers.Pinger,
	catalogService controllers.CatalogService,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	userService userssvc.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePinger))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg, cfg.App.IsProd()))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(catalogService, logg))
			r.Get("/categories", controllers.CategoriesList(catalogService, logg))
			r.Get("/category/{category}", controllers.ProductsByCategory(catalogService, logg))
			r.Get("/{productId}", controllers.ProductsGet(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(checkoutService, logg))

		r.Route("/user", func(r chi.Router) {
			r.Get("/", controllers.UserFetch(userService, logg))
			r.Put("/", controllers.UserSave(userService, logg))
			r.Delete("/", controllers.UserRemove(userService, logg))
		})
	})

	return r
}
