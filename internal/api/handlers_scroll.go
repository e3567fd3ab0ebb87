package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dgallion1/docnav/internal/scroll"
	"github.com/gorilla/websocket"
)

// scrollMessage is the outgoing websocket message format.
type scrollMessage struct {
	Type     string `json:"type"` // "active" or "error"
	ActiveID string `json:"active_id"`
	Error    string `json:"error,omitempty"`
}

// handleScrollSocket streams scroll measurements from one viewer. Each
// connection owns a debounced scroll session that is torn down with it.
func (s *Server) handleScrollSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMeasurementBytes)

	var writeMu sync.Mutex
	send := func(msg scrollMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Debug("websocket write failed", "error", err)
		}
	}

	sess := scroll.NewSession(s.cfg.ScrollLookahead, s.cfg.ScrollDebounce, s.coord.Outline, func(id string) {
		send(scrollMessage{Type: "active", ActiveID: id})
	})
	defer sess.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		var in scroll.Input
		if err := json.Unmarshal(msg, &in); err != nil {
			send(scrollMessage{Type: "error", Error: "invalid message format"})
			continue
		}
		sess.OnScroll(in)
	}
}

// checkOrigin accepts same-host requests and configured origins. A
// trailing "*" in a configured origin matches any suffix, e.g. a port.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok && strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
