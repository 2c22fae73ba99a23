package adminapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/app"
	"github.com/coopstore/coopstore/internal/grocery"
)

const (
	apiPrefix  = "/api/v1"
	backendKey = "coopstore.backend"
	sessionKey = "coopstore.sessions"
)

// Backend is what the handlers need from the application
type Backend interface {
	app.StoreProvider
	app.SnapshotProvider
}

// Server is the admin HTTP API
type Server struct {
	echo     *echo.Echo
	backend  Backend
	sessions *checkoutSessions
}

func NewServer(backend Backend) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("api request",
				zap.String("namespace", "adminapi"),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	s := &Server{echo: e, backend: backend, sessions: newCheckoutSessions()}
	api := e.Group(apiPrefix, s.bindContext)
	registerMemberRoutes(api)
	registerProductRoutes(api)
	registerOrderRoutes(api)
	registerCheckoutRoutes(api)
	registerAdminRoutes(api)
	registerReportRoutes(api)
	return s
}

// bindContext makes the backend reachable from handlers
func (s *Server) bindContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(backendKey, s.backend)
		c.Set(sessionKey, s.sessions)
		return next(c)
	}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving addr until Shutdown
func (s *Server) Start(addr string) error {
	zap.L().Info("admin api listening", zap.String("namespace", "adminapi"), zap.String("addr", addr))
	err := s.echo.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the listener and cancels every open checkout session
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err := s.echo.Shutdown(ctx)
	s.sessions.cancelAll()
	return err
}

func GetBackend(c echo.Context) Backend {
	return c.Get(backendKey).(Backend)
}

func GetStore(c echo.Context) *grocery.Store {
	return GetBackend(c).Store()
}

func getSessions(c echo.Context) *checkoutSessions {
	return c.Get(sessionKey).(*checkoutSessions)
}
