package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
)

// Public church-information endpoints. These are unauthenticated and
// read-only; content is published out-of-band.

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r)
	anns, err := s.Content.ListAnnouncements(r.Context(), limit)
	if err != nil {
		s.Log.Error("list announcements failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "content fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"announcements": anns})
}

func (s *Server) handleGetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := contentrepo.AnnouncementID(chi.URLParam(r, "announcementID"))
	a, err := s.Content.GetAnnouncement(r.Context(), id)
	if err != nil {
		if errors.Is(err, contentrepo.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "NOT_FOUND", "announcement not found")
			return
		}
		s.Log.Error("get announcement failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "content fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListSermons(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r)
	sermons, err := s.Content.ListSermons(r.Context(), limit)
	if err != nil {
		s.Log.Error("list sermons failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "content fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sermons": sermons})
}

func (s *Server) handleGetSermon(w http.ResponseWriter, r *http.Request) {
	id := contentrepo.SermonID(chi.URLParam(r, "sermonID"))
	sermon, err := s.Content.GetSermon(r.Context(), id)
	if err != nil {
		if errors.Is(err, contentrepo.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "NOT_FOUND", "sermon not found")
			return
		}
		s.Log.Error("get sermon failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "content fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, sermon)
}

func queryLimit(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
