package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// Prayer requests and pastoral visits are sub-records of a member; every
// mutation returns the full updated member so the UI can re-render the card.

type prayerBody struct {
	Content string `json:"content"`
}

type visitBody struct {
	VisitedAt string `json:"visitedAt"`
	Content   string `json:"content"`
}

func (s *Server) handleAddPrayerRequest(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	var body prayerBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.Roster.AddPrayerRequest(id, body.Content)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdatePrayerRequest(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	reqID := domain.PrayerRequestID(chi.URLParam(r, "requestID"))
	var body prayerBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.Roster.UpdatePrayerRequest(id, reqID, body.Content)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeletePrayerRequest(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	reqID := domain.PrayerRequestID(chi.URLParam(r, "requestID"))
	m, err := s.Roster.DeletePrayerRequest(id, reqID)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleAddPastoralVisit(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	var body visitBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.Roster.AddPastoralVisit(id, body.VisitedAt, body.Content)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdatePastoralVisit(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	visitID := domain.PastoralVisitID(chi.URLParam(r, "visitID"))
	var body visitBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.Roster.UpdatePastoralVisit(id, visitID, body.VisitedAt, body.Content)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeletePastoralVisit(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	visitID := domain.PastoralVisitID(chi.URLParam(r, "visitID"))
	m, err := s.Roster.DeletePastoralVisit(id, visitID)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
