// Package httpapi is the HTTP adapter: a chi router plus hand-written
// handlers over the roster store, search, transfer, backup channel, and
// public content. Handlers decode, delegate, and map errors; all domain
// rules live in the app packages.
package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	clockport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/clock"
	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/backuprepo"
	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"

	"github.com/browncherrycoffee/gwanak-church/internal/app/roster"
	"github.com/browncherrycoffee/gwanak-church/internal/app/search"
	"github.com/browncherrycoffee/gwanak-church/internal/platform/auth/hmactoken"
)

// maxBodyBytes bounds request bodies. CSV imports of a full congregation and
// backup payloads both fit comfortably.
const maxBodyBytes = 8 << 20

type Server struct {
	Roster   *roster.Store
	Searcher *search.Searcher
	Backups  backuprepo.Repository
	Content  contentrepo.Repository

	Tokens        *hmactoken.Signer
	AdminPassword string

	Clock clockport.Clock
	Log   *slog.Logger
}

func NewServer(
	store *roster.Store,
	searcher *search.Searcher,
	backups backuprepo.Repository,
	content contentrepo.Repository,
	tokens *hmactoken.Signer,
	adminPassword string,
	clk clockport.Clock,
	log *slog.Logger,
) *Server {
	return &Server{
		Roster:        store,
		Searcher:      searcher,
		Backups:       backups,
		Content:       content,
		Tokens:        tokens,
		AdminPassword: adminPassword,
		Clock:         clk,
		Log:           log,
	}
}

// handleLogin mints a session token in exchange for the admin password and
// also sets it as a cookie for the browser UI.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	if s.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(body.Password), []byte(s.AdminPassword)) != 1 {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "wrong password")
		return
	}

	token := s.Tokens.Mint()
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func decodeJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Trailing garbage after the document is a malformed request.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected trailing data")
	}
	return nil
}
