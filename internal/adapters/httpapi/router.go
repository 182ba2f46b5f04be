package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// Route groups:
// - unauthenticated: health, login, public content
// - token-protected: the records area (members, transfer, backup)
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/api/auth", s.handleLogin)

	r.Get("/api/announcements", s.handleListAnnouncements)
	r.Get("/api/announcements/{announcementID}", s.handleGetAnnouncement)
	r.Get("/api/sermons", s.handleListSermons)
	r.Get("/api/sermons/{sermonID}", s.handleGetSermon)

	r.Group(func(r chi.Router) {
		r.Use(NewAuthMiddleware(s.Tokens))

		r.Route("/api/members", func(r chi.Router) {
			r.Get("/", s.handleListMembers)
			r.Post("/", s.handleCreateMember)

			r.Get("/stats", s.handleStats)
			r.Get("/birthdays", s.handleBirthdays)
			r.Get("/households", s.handleHouseholds)

			r.Post("/import/csv", s.handleImportCSV)
			r.Get("/export/csv", s.handleExportCSV)
			r.Post("/import/prayers", s.handleImportPrayers)
			r.Post("/replace", s.handleReplaceAll)
			r.Post("/reset", s.handleReset)

			r.Route("/{memberID}", func(r chi.Router) {
				r.Get("/", s.handleGetMember)
				r.Patch("/", s.handleUpdateMember)
				r.Delete("/", s.handleDeleteMember)
				r.Post("/toggle-status", s.handleToggleStatus)

				r.Post("/prayer-requests", s.handleAddPrayerRequest)
				r.Patch("/prayer-requests/{requestID}", s.handleUpdatePrayerRequest)
				r.Delete("/prayer-requests/{requestID}", s.handleDeletePrayerRequest)

				r.Post("/pastoral-visits", s.handleAddPastoralVisit)
				r.Patch("/pastoral-visits/{visitID}", s.handleUpdatePastoralVisit)
				r.Delete("/pastoral-visits/{visitID}", s.handleDeletePastoralVisit)
			})
		})

		r.Get("/api/backup", s.handleGetBackup)
		r.Post("/api/backup", s.handleSaveBackup)
	})

	return r
}
