package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/journal"
	"github.com/MonaAghili/public-notes/internal/logfields"
)

const statusJournalTail = 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.index.Tree())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "*")
	rec, err := s.index.Page(slugParam)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := s.index.Search(query)
	if err != nil {
		slog.Warn("search rejected", logfields.Query(query), logfields.Error(err))
		errors.WriteHTTP(w, err)
		return
	}
	slog.Debug("search evaluated", logfields.Query(query), logfields.Count(len(results)))
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.index.Reload(r.Context()); err != nil {
		errors.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": s.index.Len(),
		"revision":  s.index.Revision(),
	})
}

// statusResponse is the /api/status body.
type statusResponse struct {
	Status    string          `json:"status"`
	UptimeSec int64           `json:"uptime_seconds"`
	Documents int             `json:"documents"`
	Revision  uint64          `json:"revision"`
	LastSync  *time.Time      `json:"last_sync,omitempty"`
	Recent    []journal.Entry `json:"recent_events,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:    "ok",
		UptimeSec: int64(time.Since(s.started).Seconds()),
		Documents: s.index.Len(),
		Revision:  s.index.Revision(),
	}
	if last := s.index.LastSync(); !last.IsZero() {
		resp.LastSync = &last
	}
	if entries, err := s.journal.Recent(r.Context(), statusJournalTail); err == nil {
		resp.Recent = entries
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
