package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Sameer280406/Projects/internal/session"
)

// SessionParam is the query parameter carrying the page's session id.
const SessionParam = "session"

// lookupSession resolves the session named by the request.
func lookupSession(store SessionStore, c echo.Context) (*session.Session, error) {
	id := c.QueryParam(SessionParam)
	if id == "" {
		return nil, NewBadRequestError("missing session", nil)
	}
	sess, ok := store.Get(id)
	if !ok {
		return nil, NewNotFoundError("session")
	}
	return sess, nil
}
