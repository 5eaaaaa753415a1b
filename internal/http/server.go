package httpapp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/vaultboard/vaultboard/internal/config"
	"github.com/vaultboard/vaultboard/internal/http/handlers"
)

const (
	sessionCookieName  = "vaultboard_session"
	maxRequestIDLength = 128
	apiPathPrefix      = "/api/"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(h *handlers.Handlers) *EchoServer {
	e := echo.New()
	if h.Logger != nil {
		e.Logger = h.Logger
	}
	es := &EchoServer{h: h, e: e}
	e.HTTPErrorHandler = es.httpErrorHandler
	e.Use(requestIDMiddleware)
	e.Use(middleware.Recover())
	es.registerRoutes()
	return es
}

func (es *EchoServer) registerRoutes() {
	es.e.GET("/healthz", es.h.HandleHealthz)
	es.e.GET("/", es.h.HandleIndex)
	es.e.GET("/vaults", es.h.HandleVaults)
	es.e.GET("/vaults/:chainID/:address", es.h.HandleVaultStrategies)
	es.e.GET("/vaults/:chainID/:address/strategies/:strategy/apr", es.h.HandleStrategyAPR)

	api := es.e.Group("/api/v1")
	api.GET("/chains", es.h.HandleAPIChains)
	api.GET("/vaults/:chainID", es.h.HandleAPIVaults)
	api.GET("/vaults/:chainID/:address/strategies", es.h.HandleAPIVaultStrategies)
	api.GET("/reports/:chainID/:strategy", es.h.HandleAPIReports)
	api.POST("/vaults/:chainID/refresh", es.h.HandleAPIRefresh)
}

// Handler returns the root handler, wrapped with session loading when a
// session manager is configured.
func (es *EchoServer) Handler() http.Handler {
	if es.h.Sessions != nil {
		return es.h.Sessions.LoadAndSave(es.e)
	}
	return es.e
}

// NewSessionManager builds the session manager for list view state. Sessions
// live in Postgres when pool is set and in memory otherwise.
func NewSessionManager(cfg config.Config, pool *pgxpool.Pool) *scs.SessionManager {
	sessions := scs.New()
	if cfg.SessionLifetime > 0 {
		sessions.Lifetime = cfg.SessionLifetime
	}
	sessions.Cookie.Name = sessionCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.SessionCookieSecure
	if pool != nil {
		sessions.Store = pgxstore.New(pool)
	}
	return sessions
}

func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(handlers.ContextKeyRequestID, id)
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		return next(c)
	}
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if err == nil {
		return
	}
	status := httpStatusFromError(err)
	if strings.HasPrefix(c.Request().URL.Path, apiPathPrefix) {
		if status >= http.StatusInternalServerError {
			_ = es.h.RenderAPIError(c, status, err)
			return
		}
		_ = handlers.RenderAPIStatus(c, status)
		return
	}
	switch {
	case status == http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	case status >= http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

func httpStatusFromError(err error) int {
	var coder echo.HTTPStatusCoder
	if errors.As(err, &coder) {
		if status := coder.StatusCode(); status >= 400 && status <= 599 {
			return status
		}
	}
	return http.StatusInternalServerError
}
