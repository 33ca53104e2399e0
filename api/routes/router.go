package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tienditamejorada/tiendita-backend/api/controllers"
	"github.com/tienditamejorada/tiendita-backend/api/middleware"
	"github.com/tienditamejorada/tiendita-backend/api/responses"
	"github.com/tienditamejorada/tiendita-backend/internal/auth"
	"github.com/tienditamejorada/tiendita-backend/internal/dashboard"
	"github.com/tienditamejorada/tiendita-backend/internal/employees"
	"github.com/tienditamejorada/tiendita-backend/internal/products"
	"github.com/tienditamejorada/tiendita-backend/internal/sales"
	"github.com/tienditamejorada/tiendita-backend/internal/suppliers"
	"github.com/tienditamejorada/tiendita-backend/pkg/auth/session"
	"github.com/tienditamejorada/tiendita-backend/pkg/config"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
	"github.com/tienditamejorada/tiendita-backend/pkg/redis"
)

// Reserved surfaces kept addressable for older clients. They respond 501
// until the features ship.
var reservedResources = []string{"reports", "reportes", "inventory", "inventario"}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessions *session.Manager,
	authService auth.Service,
	registerService auth.RegisterService,
	productService products.Service,
	employeeService employees.Service,
	supplierService suppliers.Service,
	saleService sales.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(),
		middleware.CORS(),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w,
			apperrors.New(apperrors.CodeNotFound, "Endpoint no encontrado"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w,
			apperrors.New(apperrors.CodeMethodNotAllowed, "Método no permitido"))
	})

	r.Get("/health", controllers.Health(dbClient, logg))
	r.Handle("/metrics", promhttp.Handler())

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUserLimit,
	)

	loginGuard := middleware.AuthRateLimit(loginPolicy, nil, logg)
	registerGuard := middleware.AuthRateLimit(registerPolicy, nil, logg)
	if redisClient != nil {
		loginGuard = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		registerGuard = middleware.AuthRateLimit(registerPolicy, redisClient, logg)
	}

	registerAPI := func(r chi.Router) {
		for _, p := range []string{"/login", "/auth/login"} {
			r.With(loginGuard).Post(p, controllers.Login(authService, logg))
		}
		for _, p := range []string{"/register", "/auth/register"} {
			r.With(registerGuard).Post(p, controllers.Register(registerService, logg))
		}
		// Logout stays outside the auth gate: revocation is idempotent and a
		// second logout with an already-revoked token must succeed too.
		for _, p := range []string{"/logout", "/auth/logout"} {
			r.Post(p, controllers.Logout(authService, logg))
			r.Delete(p, controllers.Logout(authService, logg))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessions, logg))
			r.Get("/dashboard", controllers.DashboardStats(dashboardService, logg))

			for _, p := range []string{"products", "productos"} {
				r.Route("/"+p, func(r chi.Router) {
					r.Get("/", controllers.ListProducts(productService, logg))
					r.Post("/", controllers.CreateProduct(productService, logg))
					// The legacy client reported a missing id as 400, not 405.
					r.Put("/", missingID(logg, "ID de producto requerido"))
					r.Delete("/", missingID(logg, "ID de producto requerido"))
					r.Get("/{id}", controllers.GetProduct(productService, logg))
					r.Put("/{id}", controllers.UpdateProduct(productService, logg))
					r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
				})
			}

			for _, p := range []string{"employees", "empleados"} {
				r.Route("/"+p, func(r chi.Router) {
					r.Get("/", controllers.ListEmployees(employeeService, logg))
					r.Post("/", controllers.CreateEmployee(employeeService, logg))
					r.Put("/{id}", controllers.UpdateEmployee(employeeService, logg))
				})
			}

			for _, p := range []string{"suppliers", "proveedores"} {
				r.Route("/"+p, func(r chi.Router) {
					r.Get("/", controllers.ListSuppliers(supplierService, logg))
					r.Post("/", controllers.CreateSupplier(supplierService, logg))
					r.Put("/{id}", controllers.UpdateSupplier(supplierService, logg))
					r.Delete("/{id}", controllers.DeleteSupplier(supplierService, logg))
				})
			}

			for _, p := range []string{"sales", "ventas"} {
				r.Route("/"+p, func(r chi.Router) {
					r.Get("/", controllers.ListSales(saleService, logg))
					r.Post("/", controllers.CreateSale(saleService, logg))
				})
			}

			for _, p := range reservedResources {
				r.HandleFunc("/"+p, notImplemented(logg))
			}
		})
	}

	// Resources answer both at the root and under /api, matching how
	// existing clients address the backend.
	r.Group(registerAPI)
	r.Route("/api", registerAPI)

	return r
}

func missingID(logg *logger.Logger, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w,
			apperrors.New(apperrors.CodeValidation, message))
	}
}

func notImplemented(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w,
			apperrors.New(apperrors.CodeNotImplemented, "No implementado"))
	}
}
