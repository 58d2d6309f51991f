package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RedaKaafarani1/ecomwebsite/api/controllers"
	"github.com/RedaKaafarani1/ecomwebsite/api/middleware"
	authsvc "github.com/RedaKaafarani1/ecomwebsite/internal/auth"
	cartsvc "github.com/RedaKaafarani1/ecomwebsite/internal/cart"
	customersvc "github.com/RedaKaafarani1/ecomwebsite/internal/customers"
	ordersvc "github.com/RedaKaafarani1/ecomwebsite/internal/orders"
	productsvc "github.com/RedaKaafarani1/ecomwebsite/internal/products"
	promosvc "github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	reviewsvc "github.com/RedaKaafarani1/ecomwebsite/internal/reviews"
	savedsvc "github.com/RedaKaafarani1/ecomwebsite/internal/saved"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/auth/session"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/config"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	SessionChecker session.AccessSessionChecker

	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	Products  productsvc.Service
	Reviews   reviewsvc.Service
	Cart      cartsvc.Service
	Promo     promosvc.Service
	Saved     savedsvc.Service
	Customers customersvc.Service
	Orders    ordersvc.Service
	Auth      authsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	requireAuth := middleware.Auth(cfg.JWT, deps.SessionChecker, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg)
	cartOwner := middleware.CartOwner(logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/password-reset/request", controllers.PasswordResetRequest(deps.Auth, logg))
		r.Post("/password-reset", controllers.PasswordReset(deps.Auth, logg))
		r.With(requireAuth).Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Products, logg))
		r.Get("/{productId}", controllers.ProductGet(deps.Products, logg))
		r.With(optionalAuth).Get("/{productId}/reviews", controllers.ReviewList(deps.Reviews, logg))
		r.With(requireAuth).Post("/{productId}/reviews", controllers.ReviewCreate(deps.Reviews, logg))
	})

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/{reviewId}/reactions", controllers.ReviewReact(deps.Reviews, logg))
	})

	// The cart group serves guests and signed-in shoppers alike; the owner
	// middleware keys the cart accordingly.
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(optionalAuth, cartOwner)
		r.Get("/", controllers.CartGet(deps.Cart, logg))
		r.Delete("/", controllers.CartClear(deps.Cart, logg))
		r.Get("/count", controllers.CartCount(deps.Cart, logg))
		r.Post("/items", controllers.CartAdd(deps.Cart, logg))
		r.Put("/items/{productId}", controllers.CartUpdateQuantity(deps.Cart, logg))
		r.Delete("/items/{productId}", controllers.CartRemove(deps.Cart, logg))
		r.Route("/promo", func(r chi.Router) {
			r.Get("/", controllers.PromoActive(deps.Promo, logg))
			r.Post("/", controllers.PromoApply(deps.Promo, logg))
			r.Delete("/", controllers.PromoRemove(deps.Promo, logg))
		})
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(optionalAuth, cartOwner)
		r.Post("/", controllers.CheckoutSubmit(deps.Orders, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(optionalAuth, cartOwner)
		r.Get("/", controllers.OrderHistory(deps.Orders, logg))
	})

	r.Route("/api/v1/saved", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.SavedList(deps.Saved, logg))
		r.Get("/ids", controllers.SavedIDs(deps.Saved, logg))
		r.Post("/", controllers.SavedAdd(deps.Saved, logg))
		r.Get("/{productId}", controllers.SavedCheck(deps.Saved, logg))
		r.Delete("/{productId}", controllers.SavedRemove(deps.Saved, logg))
	})

	r.Route("/api/v1/profile", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.ProfileGet(deps.Customers, logg))
		r.Put("/", controllers.ProfileUpdate(deps.Customers, logg))
	})

	return r
}
