package httpserver

import (
	"net/http"
	"time"

	"github.com/OliveiraNt/netbind/internal/binding"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsSession upgrades to WebSocket and bridges it to a binding session:
// requests read from the socket go to the engine loop and session
// messages are written back as JSON.
func (s *Server) wsSession(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	sess := binding.NewSession(s.engine, sessionBacklog)
	defer sess.Close()

	if err := sess.Start(r.Context()); err != nil {
		utils.Logger.Error("view session start failed", "session", id, "err", err)
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return
	}
	utils.Logger.Info("view session opened", "session", id, "remote", r.RemoteAddr)

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			var req binding.Request
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					utils.Logger.Warn("view session read failed", "session", id, "err", err)
				}
				return
			}
			if !sess.Handle(req) {
				return
			}
		}
	}()

	for {
		select {
		case <-readDone:
			utils.Logger.Info("view session closed", "session", id)
			return
		case <-s.engine.Done():
			utils.Logger.Info("engine stopped, closing view session", "session", id)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "engine stopped"),
				time.Now().Add(time.Second))
			return
		case msg, ok := <-sess.Out():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				utils.Logger.Info("view session write failed", "session", id, "err", err)
				return
			}
		}
	}
}
