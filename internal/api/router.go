package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/muller/cepapp/docs"
	"github.com/muller/cepapp/internal/api/handler"
	"github.com/muller/cepapp/internal/api/middleware"
	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
	"github.com/muller/cepapp/internal/infrastructure/http/handlers"
)

// Deps carries everything the HTTP layer needs. Revocations may be nil.
// Registerer and Gatherer default to the global Prometheus registry.
type Deps struct {
	Logger         zerolog.Logger
	Tokens         ports.TokenIssuer
	Users          middleware.UserLookup
	Revocations    ports.TokenRevocations
	AuthService    ports.AuthService
	UserService    ports.UserService
	AddressService ports.AddressService
	Readiness      *handlers.HealthDependenciesHandler
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "cepapp",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API routes ---
	authenticate := middleware.Authenticate(d.Tokens, d.Users, d.Revocations, d.Logger)
	table := routeTable(
		handler.NewAuthHandler(d.AuthService),
		handler.NewUserHandler(d.UserService),
		handler.NewAddressHandler(d.AddressService),
	)
	for _, r := range table {
		mws := []echo.MiddlewareFunc{middleware.Authorize(r.Policy)}
		if r.Policy.Kind != domain.PolicyPublic {
			mws = append([]echo.MiddlewareFunc{authenticate}, mws...)
		}
		e.Add(r.Method, r.Path, r.Handler, mws...)
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
