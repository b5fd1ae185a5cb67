package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Sameer280406/Projects/internal/dashboard"
	"github.com/Sameer280406/Projects/internal/session"
)

// WebSocket message types for the state channel
const (
	// Client -> Server messages
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeState = "state"
	MsgTypePong  = "pong"
)

const writeWait = 10 * time.Second

// WSMessage is the envelope for every message on the state socket
type WSMessage struct {
	Type      string          `json:"type"`
	State     *dashboard.View `json:"state,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// StateSocket pushes a fresh dashboard view to each browser whenever the
// upload state changes
type StateSocket struct {
	sessions       SessionStore
	upgrader       websocket.Upgrader
	maxMessageSize int64
	logger         echo.Logger
}

// NewStateSocket creates the websocket handler. maxMessageKB caps what a
// client may send.
func NewStateSocket(sessions SessionStore, maxMessageKB int, logger echo.Logger) *StateSocket {
	if maxMessageKB <= 0 {
		maxMessageKB = 64
	}
	return &StateSocket{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
		maxMessageSize: int64(maxMessageKB) * 1024,
		logger:         logger,
	}
}

// HandleWebSocket upgrades the connection, sends the session's current view
// and then one view per state change until the client goes away
func (s *StateSocket) HandleWebSocket(c echo.Context) error {
	sess, err := lookupSession(s.sessions, c)
	if err != nil {
		return err
	}
	defer s.sessions.Attach(sess)()

	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()
	ws.SetReadLimit(s.maxMessageSize)

	clientID := uuid.New().String()[:8]
	s.logger.Infof("[WebSocket %s] Client connected to session %s", clientID, sess.ID[:8])

	updates, cancel := sess.Dashboard.Subscribe()
	defer cancel()

	if err := s.sendView(ws, sess, sess.Dashboard.View()); err != nil {
		return nil
	}

	// Reader: answers pings and notices when the client leaves.
	incoming := make(chan WSMessage)
	closed := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(closed)
		for {
			var msg WSMessage
			if err := ws.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Warnf("[WebSocket %s] Connection error: %v", clientID, err)
				}
				return
			}
			select {
			case incoming <- msg:
			case <-stop:
				return
			}
		}
	}()

	style := sess.Dashboard.ChartStyle()
	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			if err := s.sendView(ws, sess, style.NewView(st)); err != nil {
				s.logger.Warnf("[WebSocket %s] Send failed: %v", clientID, err)
				return nil
			}
		case msg := <-incoming:
			if msg.Type == MsgTypePing {
				if err := s.send(ws, WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()}); err != nil {
					return nil
				}
			}
		case <-closed:
			s.logger.Infof("[WebSocket %s] Client disconnected", clientID)
			return nil
		}
	}
}

func (s *StateSocket) sendView(ws *websocket.Conn, sess *session.Session, v dashboard.View) error {
	v.Session = sess.ID
	return s.send(ws, WSMessage{Type: MsgTypeState, State: &v, Timestamp: time.Now().UnixMilli()})
}

func (s *StateSocket) send(ws *websocket.Conn, msg WSMessage) error {
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(msg)
}
