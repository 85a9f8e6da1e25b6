package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/turkhealth/clinichub/internal/auth"
	"github.com/turkhealth/clinichub/internal/cache"
	"github.com/turkhealth/clinichub/internal/config"
	"github.com/turkhealth/clinichub/internal/http/handlers"
	"github.com/turkhealth/clinichub/internal/http/middlewares"
	"github.com/turkhealth/clinichub/internal/observability"
	"github.com/turkhealth/clinichub/internal/repo/postgres"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, statsCache cache.StatsCache, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// own registry so tests can build routers without fighting the global one
	promReg := prometheus.NewRegistry()
	prom := observability.NewProm(promReg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("clinichub"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/health", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool)
	clinicsRepo := postgres.NewClinicsRepo(pool, prom)
	applicationsRepo := postgres.NewApplicationsRepo(pool, prom)
	statsRepo := postgres.NewStatsRepo(pool)

	// auth plumbing
	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryDays)*24*time.Hour)
	authMW := middlewares.NewAuthMiddleware(jwtManager)
	requireAuth := authMW.RequireAuth()
	requireAdmin := authMW.RequireAdmin()

	// the two public write endpoints get a per-IP throttle
	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	throttle := limiter.Middleware(middlewares.ByClientIP)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, log)
	clinicsHandler := handlers.NewClinicsHandler(clinicsRepo, applicationsRepo)
	applicationsHandler := handlers.NewApplicationsHandler(applicationsRepo, log)
	statsHandler := handlers.NewStatsHandler(statsRepo, statsCache, log)

	api := r.Group("/api")

	api.POST("/auth/login", throttle, authHandler.Login)
	api.GET("/auth/me", requireAuth, authHandler.Me)

	// clinics: public reads, admin writes
	api.GET("/clinics", clinicsHandler.List)
	api.GET("/clinics/:id", clinicsHandler.Get)
	api.POST("/clinics", requireAuth, requireAdmin, clinicsHandler.Create)
	api.PUT("/clinics/:id", requireAuth, requireAdmin, clinicsHandler.Update)
	api.DELETE("/clinics/:id", requireAuth, requireAdmin, clinicsHandler.Delete)

	// applications: public create, admin-only read
	api.POST("/applications", throttle, applicationsHandler.Create)
	api.GET("/applications", requireAuth, requireAdmin, applicationsHandler.List)

	api.GET("/stats", statsHandler.Get)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
		})
	})

	return r
}
