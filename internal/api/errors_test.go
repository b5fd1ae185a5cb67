package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "api error",
			method:     http.MethodGet,
			err:        NewNotFoundError("summary"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "wrapped api error",
			method:     http.MethodGet,
			err:        fmt.Errorf("export: %w", NewBadGatewayError("backend down", errors.New("refused"))),
			wantStatus: http.StatusBadGateway,
			wantCode:   "BACKEND_ERROR",
		},
		{
			name:       "echo http error",
			method:     http.MethodGet,
			err:        echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "plain error",
			method:     http.MethodPost,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "UNKNOWN_ERROR",
		},
		{
			name:       "head request",
			method:     http.MethodHead,
			err:        NewNotFoundError("summary"),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/", nil)
			rec := httptest.NewRecorder()

			ErrorHandler(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				assert.Empty(t, rec.Body.String())
				return
			}

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestNewBadGatewayError_Details(t *testing.T) {
	err := NewBadGatewayError("failed to fetch history", errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Equal(t, "connection refused", err.Details)
	assert.Equal(t, "BACKEND_ERROR: failed to fetch history", err.Error())
}
