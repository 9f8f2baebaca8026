package main

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mentiq/mentiq/internal/config"
	"github.com/mentiq/mentiq/internal/domain/assessment"
	"github.com/mentiq/mentiq/internal/domain/chatbot"
	"github.com/mentiq/mentiq/internal/domain/directory"
	"github.com/mentiq/mentiq/internal/domain/identity"
	"github.com/mentiq/mentiq/internal/domain/scheduling"
	"github.com/mentiq/mentiq/internal/domain/wellbeing"
	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/cache"
	"github.com/mentiq/mentiq/internal/platform/db"
	"github.com/mentiq/mentiq/internal/platform/httpx"
	"github.com/mentiq/mentiq/internal/platform/metrics"
	"github.com/mentiq/mentiq/internal/platform/middleware"
	"github.com/mentiq/mentiq/internal/platform/validate"
	"github.com/mentiq/mentiq/internal/platform/websocket"
)

const requestTimeout = 30 * time.Second

type serverDeps struct {
	pool   *pgxpool.Pool
	cache  *cache.Cache
	issuer *auth.Issuer
}

// newServer builds the echo instance with every route mounted. Nothing
// touches the pool until a request needs it.
func newServer(cfg *config.Config, logger zerolog.Logger, d serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpx.ErrorHandler(logger)
	e.Validator = validate.EchoValidator{}

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(requestTimeout))
	e.Use(auth.Authenticate(d.issuer))

	e.GET("/health", db.LivenessHandler(serviceName, version))
	e.GET("/health/db", db.HealthHandler(d.pool))
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api", middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	chatLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.ChatbotRPS,
		BurstSize:         cfg.ChatbotBurst,
	}

	dirSvc := directory.NewService(
		directory.NewDoctorRepoPG(d.pool),
		directory.NewArticleRepoPG(d.pool),
		d.cache,
		logger,
	)
	directory.NewHandler(dirSvc).RegisterRoutes(api)

	identitySvc := identity.NewService(identity.NewUserRepoPG(d.pool), d.issuer, dirSvc, d.pool, logger)
	identity.NewHandler(identitySvc).RegisterRoutes(api)

	assessSvc := assessment.NewService(assessment.NewRepoPG(d.pool), logger)
	assessment.NewHandler(assessSvc).RegisterRoutes(api)

	rules, err := chatbot.DefaultRules()
	if err != nil {
		logger.Fatal().Err(err).Msg("load chatbot rules")
	}
	chatSvc := chatbot.NewService(chatbot.NewResponder(rules), chatbot.NewConversationRepoPG(d.pool), logger)
	chatbot.NewHandler(chatSvc, websocket.NewHub(), cfg.CORSOrigins, chatLimitCfg, logger).
		RegisterRoutes(api, middleware.RateLimit(chatLimitCfg))

	schedSvc := scheduling.NewService(
		scheduling.NewAppointmentRepoPG(d.pool),
		scheduling.NewConsultationRepoPG(d.pool),
		dirSvc,
		d.pool,
	)
	scheduling.NewHandler(schedSvc).RegisterRoutes(api)

	wellSvc := wellbeing.NewService(
		wellbeing.NewSavedItemRepoPG(d.pool),
		wellbeing.NewStreakRepoPG(d.pool),
		dirSvc,
		assessSvc,
		d.pool,
	)
	wellbeing.NewHandler(wellSvc).RegisterRoutes(api)

	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
	}
	return e
}
