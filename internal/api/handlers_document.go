package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docnav/internal/page"
	"github.com/dgallion1/docnav/internal/scroll"
)

// maxMeasurementBytes caps one scroll measurement, over HTTP or websocket.
const maxMeasurementBytes = 1 << 20

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	snap := s.coord.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       snap.Status,
		"error":        snap.Error,
		"version":      snap.Version,
		"content_hash": snap.ContentHash,
		"sections":     snap.Sections,
	})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	snap := s.coord.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   snap.Status,
		"version":  snap.Version,
		"headings": snap.Headings,
	})
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	active := r.URL.Query().Get("active")
	writeJSON(w, http.StatusOK, map[string]any{
		"active_id": active,
		"nav":       s.coord.Nav(active),
	})
}

// handleReload reloads the document synchronously. A client that goes
// away cancels the load along with its request context.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.coord.Load(r.Context())
	switch {
	case errors.Is(err, page.ErrSuperseded):
		jsonError(w, "reload superseded by a newer request", http.StatusConflict)
		return
	case errors.Is(err, page.ErrClosed):
		jsonError(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"status": snap.Status,
			"error":  snap.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   snap.Status,
		"version":  snap.Version,
		"sections": len(snap.Sections),
		"headings": len(snap.Headings),
	})
}

// handleActive evaluates one scroll measurement without debouncing.
func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	var in scroll.Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMeasurementBytes)).Decode(&in); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	active := scroll.ActiveHeading(in.ScrollY, s.cfg.ScrollLookahead, s.coord.Outline(), in.Anchors)
	writeJSON(w, http.StatusOK, map[string]string{"active_id": active})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
