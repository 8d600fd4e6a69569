package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TariqTawalbeh/employees-board/api/controllers"
	"github.com/TariqTawalbeh/employees-board/api/middleware"
	"github.com/TariqTawalbeh/employees-board/internal/access"
	"github.com/TariqTawalbeh/employees-board/internal/auth"
	"github.com/TariqTawalbeh/employees-board/internal/users"
	"github.com/TariqTawalbeh/employees-board/pkg/config"
	"github.com/TariqTawalbeh/employees-board/pkg/db"
	"github.com/TariqTawalbeh/employees-board/pkg/logger"
	"github.com/TariqTawalbeh/employees-board/pkg/metrics"
	pkgredis "github.com/TariqTawalbeh/employees-board/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	actorResolver middleware.ActorResolver,
	authService auth.Service,
	usersService users.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	var idemStore pkgredis.IdempotencyStore
	var redisP pkgredis.Pinger
	if redisClient != nil {
		idemStore = redisClient
		redisP = redisClient
	}
	idempotency := middleware.Idempotency(idemStore, cfg.Idempotency.TTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(idempotency).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, actorResolver, logg))

		r.With(middleware.RequireAdmin(access.OpListUsers, logg)).
			Get("/", controllers.UsersList(usersService, logg))
		r.With(middleware.RequireAdmin(access.OpGetUser, logg)).
			Get("/{userId}", controllers.UsersGet(usersService, logg))
		r.With(middleware.RequireAdmin(access.OpCreateUser, logg), idempotency).
			Post("/", controllers.UsersCreate(usersService, logg))
		// Update is self-service; the ownership check lives in the service.
		r.Put("/{userId}", controllers.UsersUpdate(usersService, logg))
		r.With(middleware.RequireAdmin(access.OpDeleteUser, logg)).
			Delete("/{userId}", controllers.UsersDelete(usersService, logg))
	})

	return r
}
