package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/app/stats"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Summarize(s.Roster.GetAll(), s.Clock.Now()))
}

// handleBirthdays lists members with a birthday in the requested month,
// defaulting to the current month.
func (s *Server) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	month := int(s.Clock.Now().Month())
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "month must be 1-12")
			return
		}
		month = n
	}
	members := stats.BirthdaysInMonth(s.Roster.GetAll(), time.Month(month))
	writeJSON(w, http.StatusOK, map[string]any{
		"month":   month,
		"members": members,
	})
}

func (s *Server) handleHouseholds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"households": stats.Households(s.Roster.GetAll()),
	})
}
