// routes.go - Route registration helpers
// This file provides a clean way to register all routes
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Sameer280406/Projects/internal/config"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Sessions   SessionStore
	History    HistorySource
	BackendURL string
	Version    string
	Config     *config.AppConfig
	Logger     echo.Logger
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Dashboard DashboardHandler
	Export    ExportHandler
	Backend   BackendHandler
	Socket    StateSocketHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	wsLimit := 0
	if deps.Config != nil {
		wsLimit = deps.Config.Advanced.WebSocketMaxMessageSize
	}
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.BackendURL),
		Dashboard: NewDashboardHandler(deps.Sessions),
		Export:    NewExportHandler(deps.Sessions),
		Backend:   NewBackendHandler(deps.History),
		Socket:    NewStateSocket(deps.Sessions, wsLimit, deps.Logger),
	}
}

// RegisterRoutes registers all page and API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Page
	e.GET("/", handlers.Dashboard.HandlePage)
	e.GET("/dashboard/fragment", handlers.Dashboard.HandleFragment)

	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// State push
	apiGroup.GET("/ws/state", handlers.Socket.HandleWebSocket)

	// Dashboard
	dashGroup := apiGroup.Group("/dashboard")
	dashGroup.POST("/upload", handlers.Dashboard.HandleUpload)
	dashGroup.GET("/state", handlers.Dashboard.HandleState)
	dashGroup.GET("/state/msgpack", handlers.Dashboard.HandleStateMsgpack)
	dashGroup.GET("/charts/bar.png", handlers.Export.HandleBarChartPNG)
	dashGroup.GET("/charts/doughnut.png", handlers.Export.HandleDoughnutChartPNG)
	dashGroup.GET("/export.xlsx", handlers.Export.HandleExportXLSX)

	// Stored summaries on the backend
	backendGroup := apiGroup.Group("/backend")
	backendGroup.GET("/latest", handlers.Backend.HandleLatest)
	backendGroup.GET("/history", handlers.Backend.HandleHistory)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, cfg *config.AppConfig) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" ||
				path == "/api/ws/state" ||
				strings.HasPrefix(path, "/static/")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
	}))

	// Uploads wait on the backend with no deadline of their own
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/upload") ||
				strings.HasPrefix(path, "/api/ws/") ||
				strings.HasPrefix(path, "/api/backend/")
		},
		ErrorMessage: "Request timeout",
	}))

	if cfg.Server.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.Server.CompressionLevel,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/ws/")
			},
		}))
	}

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.GetAllowOrigins(),
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}
