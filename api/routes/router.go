package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sellerbridge/sellerbridge-backend/api/controllers"
	"github.com/sellerbridge/sellerbridge-backend/api/middleware"
	"github.com/sellerbridge/sellerbridge-backend/internal/auth"
	"github.com/sellerbridge/sellerbridge-backend/internal/authz"
	product "github.com/sellerbridge/sellerbridge-backend/internal/products"
	"github.com/sellerbridge/sellerbridge-backend/pkg/auth/session"
	"github.com/sellerbridge/sellerbridge-backend/pkg/config"
	"github.com/sellerbridge/sellerbridge-backend/pkg/db"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	"github.com/sellerbridge/sellerbridge-backend/pkg/logger"
	"github.com/sellerbridge/sellerbridge-backend/pkg/redis"
)

// Deps bundles everything the router needs so cmd/api stays a thin wiring layer.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterSvc     auth.RegisterService
	AuthzService    authz.Service
	ProductService  product.Service
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterSvc, deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/authorizations/{authorizationId}", controllers.AuthorizationDetail(deps.AuthzService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.ProductService, logg))

		r.Route("/seller", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, string(enums.UserRoleSeller), string(enums.UserRoleAdmin)))
			r.Use(middleware.SellerContext(logg))

			r.Route("/authorizations", func(r chi.Router) {
				r.Get("/", controllers.SellerAuthorizationList(deps.AuthzService, logg))
				r.Post("/", controllers.SellerAuthorizationCreate(deps.AuthzService, logg))
				r.Get("/limits", controllers.SellerAuthorizationLimits(deps.AuthzService, logg))
				r.Post("/{authorizationId}/cancel", controllers.SellerAuthorizationCancel(deps.AuthzService, logg))
			})
		})

		r.Route("/supplier", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, string(enums.UserRoleSupplier), string(enums.UserRoleAdmin)))
			r.Use(middleware.SupplierContext(logg))

			r.Route("/authorizations", func(r chi.Router) {
				r.Get("/", controllers.SupplierAuthorizationInbox(deps.AuthzService, logg))
				r.Post("/{authorizationId}/approve", controllers.SupplierAuthorizationApprove(deps.AuthzService, logg))
				r.Post("/{authorizationId}/reject", controllers.SupplierAuthorizationReject(deps.AuthzService, logg))
				r.Post("/{authorizationId}/revoke", controllers.SupplierAuthorizationRevoke(deps.AuthzService, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.SupplierProductList(deps.ProductService, logg))
				r.Post("/", controllers.SupplierProductCreate(deps.ProductService, logg))
				r.Patch("/{productId}", controllers.SupplierProductUpdate(deps.ProductService, logg))
				r.Post("/{productId}/status", controllers.SupplierProductSetStatus(deps.ProductService, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Post("/authorizations/{authorizationId}/revoke", controllers.SupplierAuthorizationRevoke(deps.AuthzService, logg))
		})
	})

	return r
}
