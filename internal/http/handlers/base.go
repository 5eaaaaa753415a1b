// Package handlers contains HTTP handler logic split by page and API.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/vaultboard/vaultboard/internal/catalog"
	"github.com/vaultboard/vaultboard/internal/chains"
	"github.com/vaultboard/vaultboard/internal/config"
	"github.com/vaultboard/vaultboard/internal/http/viewmodels"
	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

// VaultCatalog is the vault data layer the handlers read from.
type VaultCatalog interface {
	ChainIDs() []int
	Snapshot(chainID int) catalog.Snapshot
	Vault(chainID int, address string) (vaults.Vault, error)
	Refresh(ctx context.Context, chainID int) error
}

// ReportSource resolves strategy reports through the shared cache.
type ReportSource interface {
	Peek(key reports.Key) ([]reports.Report, bool)
	Get(ctx context.Context, key reports.Key) ([]reports.Report, error)
	Resolve(ctx context.Context, key reports.Key) []reports.Report
}

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg      config.Config
	Catalog  VaultCatalog
	Reports  ReportSource
	Chains   *chains.Registry
	Sessions *scs.SessionManager
	Logger   *slog.Logger
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *Handlers) primaryChainID() int {
	if h.Cfg.PrimaryChainID > 0 {
		return h.Cfg.PrimaryChainID
	}
	return 1
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c *echo.Context, title string, chainID int) viewmodels.LayoutData {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	options := make([]viewmodels.ChainOption, 0, len(h.Catalog.ChainIDs()))
	for _, id := range h.Catalog.ChainIDs() {
		options = append(options, viewmodels.ChainOption{
			ID:       id,
			Name:     h.Chains.DisplayName(id),
			Selected: id == chainID,
		})
	}
	return viewmodels.LayoutData{
		Title:      title,
		ActivePath: c.Request().URL.Path,
		ChainID:    chainID,
		Chains:     options,
		RequestID:  requestID,
	}
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c *echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID := h.logHTTPError(c, err)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderAPIError returns a JSON error body with the given status. The error
// itself is only logged.
func (h *Handlers) RenderAPIError(c *echo.Context, status int, err error) error {
	requestID := h.logHTTPError(c, err)
	return c.JSON(status, apiError{
		Error:     strings.ToLower(http.StatusText(status)),
		Code:      InternalErrorCode,
		Reference: requestID,
	})
}

func (h *Handlers) logHTTPError(c *echo.Context, err error) string {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
		if req.URL != nil {
			path = req.URL.Path
		}
	}
	h.logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)
	return requestID
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c *echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}

// ParseBoolForm parses a form value as a boolean.
func ParseBoolForm(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// parseChainID returns the chain id in raw, or 0 when raw is not a
// positive integer.
func parseChainID(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// vaultParams reads the :chainID and :address path parameters.
func vaultParams(c *echo.Context) (int, string, bool) {
	chainID := parseChainID(c.Param("chainID"))
	address := strings.TrimSpace(c.Param("address"))
	if chainID == 0 || address == "" {
		return 0, "", false
	}
	return chainID, address, true
}
