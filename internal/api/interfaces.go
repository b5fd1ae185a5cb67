// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Sameer280406/Projects/internal/models"
	"github.com/Sameer280406/Projects/internal/session"
)

// DashboardHandler serves the page and drives uploads
type DashboardHandler interface {
	HandlePage(c echo.Context) error
	HandleFragment(c echo.Context) error
	HandleUpload(c echo.Context) error
	HandleState(c echo.Context) error
	HandleStateMsgpack(c echo.Context) error
}

// ExportHandler renders the current summary as files
type ExportHandler interface {
	HandleBarChartPNG(c echo.Context) error
	HandleDoughnutChartPNG(c echo.Context) error
	HandleExportXLSX(c echo.Context) error
}

// BackendHandler proxies the backend's stored summaries
type BackendHandler interface {
	HandleLatest(c echo.Context) error
	HandleHistory(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// StateSocketHandler pushes state changes to browsers
type StateSocketHandler interface {
	HandleWebSocket(c echo.Context) error
}

// SessionStore hands out one dashboard per open page.
// This allows mocking in tests
type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, bool)
	Attach(s *session.Session) func()
}

// HistorySource reads stored summaries from the backend
type HistorySource interface {
	Latest(ctx context.Context) (*models.Dataset, error)
	History(ctx context.Context) ([]models.Dataset, error)
}
