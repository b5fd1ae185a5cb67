// handlers_dashboard.go - Dashboard page and upload handlers
package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Sameer280406/Projects/internal/dashboard"
	"github.com/Sameer280406/Projects/internal/session"
)

// DashboardHandlerImpl implements the DashboardHandler interface
type DashboardHandlerImpl struct {
	sessions SessionStore
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(sessions SessionStore) DashboardHandler {
	return &DashboardHandlerImpl{sessions: sessions}
}

// HandlePage renders the full dashboard page. Every render starts a new
// session, so a reload begins from an empty dashboard.
func (h *DashboardHandlerImpl) HandlePage(c echo.Context) error {
	sess := h.sessions.Create()

	var buf bytes.Buffer
	if err := dashboard.Render(&buf, sessionView(sess)); err != nil {
		return NewInternalError("failed to render dashboard", err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// HeaderAttempt carries the upload attempt a rendered fragment belongs to.
const HeaderAttempt = "X-Dashboard-Attempt"

// HandleFragment renders the dashboard body for in-place refreshes
func (h *DashboardHandlerImpl) HandleFragment(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}

	v := sessionView(sess)
	var buf bytes.Buffer
	if err := dashboard.RenderFragment(&buf, v); err != nil {
		return NewInternalError("failed to render dashboard", err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().Header().Set(HeaderAttempt, strconv.FormatUint(v.Attempt, 10))
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// HandleUpload accepts a multipart file and starts an upload attempt.
// The response carries the state right after the attempt started; pass
// wait=true to get the state after the backend answered instead.
func (h *DashboardHandlerImpl) HandleUpload(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return NewInternalError("failed to read uploaded file", err)
	}

	done := sess.Dashboard.HandleFileSelected(file.Filename, data)

	if wait, _ := strconv.ParseBool(c.QueryParam("wait")); wait {
		select {
		case <-done:
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
		return c.JSON(http.StatusOK, sessionView(sess))
	}

	return c.JSON(http.StatusAccepted, sessionView(sess))
}

// HandleState returns the current state and derived chart data as JSON
func (h *DashboardHandlerImpl) HandleState(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(sess))
}

// HandleStateMsgpack returns the current state encoded as msgpack
func (h *DashboardHandlerImpl) HandleStateMsgpack(c echo.Context) error {
	sess, err := lookupSession(h.sessions, c)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(sessionView(sess))
	if err != nil {
		return NewInternalError("failed to encode state", err)
	}
	return c.Blob(http.StatusOK, "application/x-msgpack", data)
}

func sessionView(sess *session.Session) dashboard.View {
	v := sess.Dashboard.View()
	v.Session = sess.ID
	return v
}
