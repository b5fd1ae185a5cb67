// handlers_backend.go - Stored summary lookups on the processing backend
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sameer280406/Projects/internal/backend"
)

// BackendHandlerImpl implements the BackendHandler interface
type BackendHandlerImpl struct {
	source HistorySource
}

// NewBackendHandler creates a new backend proxy handler
func NewBackendHandler(source HistorySource) BackendHandler {
	return &BackendHandlerImpl{source: source}
}

// HandleLatest returns the most recent dataset stored by the backend
func (h *BackendHandlerImpl) HandleLatest(c echo.Context) error {
	ds, err := h.source.Latest(c.Request().Context())
	if err != nil {
		var upErr *backend.UploadError
		if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound {
			return NewNotFoundError("latest summary")
		}
		return NewBadGatewayError("failed to fetch latest summary", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"dataset": ds,
		"summary": ds.ToSummary(),
	})
}

// HandleHistory returns the datasets the backend keeps
func (h *BackendHandlerImpl) HandleHistory(c echo.Context) error {
	list, err := h.source.History(c.Request().Context())
	if err != nil {
		return NewBadGatewayError("failed to fetch history", err)
	}
	if list == nil {
		return c.JSON(http.StatusOK, []interface{}{})
	}
	return c.JSON(http.StatusOK, list)
}
