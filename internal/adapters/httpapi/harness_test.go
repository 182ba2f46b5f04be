package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	memclock "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/clock"
	membackuprepo "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/backuprepo"
	memcontentrepo "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/contentrepo"
	memsnapshotstore "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/snapshotstore"
	"github.com/browncherrycoffee/gwanak-church/internal/app/roster"
	"github.com/browncherrycoffee/gwanak-church/internal/app/search"
	"github.com/browncherrycoffee/gwanak-church/internal/platform/auth/hmactoken"
	contentrepoport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
)

const testAdminPassword = "test-password"

type testHarness struct {
	handler http.Handler
	store   *roster.Store
	clk     *memclock.ManualClock
	tokens  *hmactoken.Signer
}

func newTestHarness(t *testing.T, anns []contentrepoport.Announcement, sermons []contentrepoport.Sermon) *testHarness {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := roster.New(memsnapshotstore.NewStore(), clk, log)
	store.ReplaceAll(nil) // start empty; tests add what they need

	tokens := hmactoken.New("test-secret", 7*24*time.Hour, clk)
	srv := NewServer(
		store,
		search.NewSearcher(),
		membackuprepo.NewRepo(),
		memcontentrepo.NewRepo(anns, sermons),
		tokens,
		testAdminPassword,
		clk,
		log,
	)

	return &testHarness{
		handler: NewRouter(srv),
		store:   store,
		clk:     clk,
		tokens:  tokens,
	}
}

// do runs an authenticated request against the harness router.
func (h *testHarness) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+h.tokens.Mint())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}
