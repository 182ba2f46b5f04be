package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/browncherrycoffee/gwanak-church/internal/app/transfer"
	"github.com/browncherrycoffee/gwanak-church/internal/domain"
	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/backuprepo"
)

// handleImportCSV accepts the raw CSV document as the request body and adds
// every parseable row. Row errors don't abort the import; they are reported
// alongside the success count, matching how the import screen presents them.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "unreadable request body")
		return
	}

	forms, rowErrors := transfer.ParseCSV(string(raw), s.Clock.Now())
	imported := 0
	for _, f := range forms {
		if _, err := s.Roster.Add(f); err != nil {
			rowErrors = append(rowErrors, err.Error())
			continue
		}
		imported++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": imported,
		"errors":   rowErrors,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	out, err := transfer.ExportCSV(s.Roster.GetAll())
	if err != nil {
		s.Log.Error("csv export failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "csv export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="members.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}

// handleImportPrayers matches a prayer-import document against the roster by
// exact name and bulk-appends the matched prayers.
func (s *Server) handleImportPrayers(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "unreadable request body")
		return
	}
	entries, err := transfer.ParsePrayerImport(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid prayer import document")
		return
	}

	matched := transfer.MatchPrayerImport(s.Roster.GetAll(), entries)
	result := s.Roster.BulkAddPrayerRequests(matched.Entries)

	writeJSON(w, http.StatusOK, map[string]any{
		"totalAdded": result.TotalAdded,
		"matched":    len(matched.Entries),
		"unmatched":  matched.Unmatched,
	})
}

func (s *Server) handleReplaceAll(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Members []domain.Member `json:"members"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	s.Roster.ReplaceAll(body.Members)
	writeJSON(w, http.StatusOK, membersResponse{Members: s.Roster.GetAll()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Roster.ResetToSeed()
	writeJSON(w, http.StatusOK, membersResponse{Members: s.Roster.GetAll()})
}

func (s *Server) handleGetBackup(w http.ResponseWriter, r *http.Request) {
	p, err := s.Backups.Latest(r.Context())
	if err != nil {
		if errors.Is(err, backuprepo.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no backup stored")
			return
		}
		s.Log.Error("backup fetch failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "backup fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleSaveBackup stores the uploaded roster as the latest backup.
// ExportedAt and Count are stamped server-side so the stored summary is
// always consistent with the payload.
func (s *Server) handleSaveBackup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Version int             `json:"version"`
		Members []domain.Member `json:"members"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	if body.Version == 0 {
		body.Version = 1
	}
	if body.Members == nil {
		body.Members = []domain.Member{}
	}

	p := backuprepo.Payload{
		Version:    body.Version,
		ExportedAt: s.Clock.Now(),
		Count:      len(body.Members),
		Members:    body.Members,
	}
	if err := s.Backups.Save(r.Context(), p); err != nil {
		s.Log.Error("backup save failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "backup save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exportedAt": p.ExportedAt,
		"count":      p.Count,
	})
}
