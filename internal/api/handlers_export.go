// handlers_export.go - Chart image and workbook downloads
package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sameer280406/Projects/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandlerImpl implements the ExportHandler interface
type ExportHandlerImpl struct {
	sessions SessionStore
}

// NewExportHandler creates a new export handler
func NewExportHandler(sessions SessionStore) ExportHandler {
	return &ExportHandlerImpl{sessions: sessions}
}

// HandleBarChartPNG renders the averages chart as PNG
func (h *ExportHandlerImpl) HandleBarChartPNG(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}
	v := sess.Dashboard.View()
	if !v.HasSummary() {
		return NewNotFoundError("summary")
	}

	var buf bytes.Buffer
	if err := export.RenderBarPNG(&buf, v.Bar); err != nil {
		return chartError(err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// HandleDoughnutChartPNG renders the type distribution as PNG
func (h *ExportHandlerImpl) HandleDoughnutChartPNG(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}
	v := sess.Dashboard.View()
	if !v.HasSummary() {
		return NewNotFoundError("summary")
	}

	var buf bytes.Buffer
	if err := export.RenderDoughnutPNG(&buf, v.Doughnut); err != nil {
		return chartError(err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// HandleExportXLSX downloads the current summary as a workbook
func (h *ExportHandlerImpl) HandleExportXLSX(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}
	v := sess.Dashboard.View()
	if !v.HasSummary() {
		return NewNotFoundError("summary")
	}

	var buf bytes.Buffer
	if err := export.WriteSummaryXLSX(&buf, v.Summary); err != nil {
		return NewInternalError("failed to build workbook", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, exportFileName(v.FileName)))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func chartError(err error) error {
	if errors.Is(err, export.ErrEmptyChart) {
		return NewNotFoundError("chart data")
	}
	return NewInternalError("failed to render chart", err)
}

// exportFileName turns "equipment.csv" into "equipment-summary.xlsx"
func exportFileName(source string) string {
	base := strings.TrimSuffix(path.Base(source), path.Ext(source))
	if base == "" || base == "." || base == "/" {
		base = "equipment"
	}
	return base + "-summary.xlsx"
}
