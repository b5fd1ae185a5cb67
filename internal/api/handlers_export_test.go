// handlers_export_test.go - Tests for chart image and workbook downloads
package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Sameer280406/Projects/internal/testutil"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestExportHandler_NoSummary(t *testing.T) {
	fb := testutil.NewFakeBackend(testutil.Response{})
	defer fb.Close()
	sessions := newTestSessions(t, fb)
	sess := sessions.Create()
	handler := NewExportHandler(sessions)

	tests := []struct {
		name string
		call func(c echo.Context) error
	}{
		{"bar chart", handler.HandleBarChartPNG},
		{"doughnut chart", handler.HandleDoughnutChartPNG},
		{"workbook", handler.HandleExportXLSX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, withSession("/", sess), nil)
			rec := httptest.NewRecorder()

			err := tt.call(e.NewContext(req, rec))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusNotFound, apiErr.Status)
			assert.Equal(t, "NOT_FOUND", apiErr.Code)
		})
	}
}

func TestExportHandler_ChartPNG(t *testing.T) {
	sessions, sess := loadedSession(t)
	handler := NewExportHandler(sessions)

	tests := []struct {
		name string
		call func(c echo.Context) error
	}{
		{"bar chart", handler.HandleBarChartPNG},
		{"doughnut chart", handler.HandleDoughnutChartPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, withSession("/", sess), nil)
			rec := httptest.NewRecorder()

			require.NoError(t, tt.call(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngMagic))
		})
	}
}

func TestExportHandler_HandleExportXLSX(t *testing.T) {
	sessions, sess := loadedSession(t)
	handler := NewExportHandler(sessions)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, withSession("/api/dashboard/export.xlsx", sess), nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.HandleExportXLSX(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="equipment-summary.xlsx"`, rec.Header().Get(echo.HeaderContentDisposition))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Types")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Pump", "5"}, rows[1])
	assert.Equal(t, []string{"Valve", "7"}, rows[2])
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"equipment.csv", "equipment-summary.xlsx"},
		{"plant.data.csv", "plant.data-summary.xlsx"},
		{"noext", "noext-summary.xlsx"},
		{"", "equipment-summary.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, exportFileName(tt.source))
		})
	}
}
