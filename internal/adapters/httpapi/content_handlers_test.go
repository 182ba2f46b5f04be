package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	contentrepoport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
)

func TestContent_PublicEndpoints(t *testing.T) {
	t.Parallel()

	anns := []contentrepoport.Announcement{
		{ID: "a1", Title: "주일 예배 안내", Content: "본문", Category: "예배",
			CreatedAt: time.Unix(1000, 0).UTC(), UpdatedAt: time.Unix(1000, 0).UTC()},
		{ID: "a2", Title: "교회 청소", Content: "본문", Category: "일반", IsPinned: true,
			CreatedAt: time.Unix(500, 0).UTC(), UpdatedAt: time.Unix(500, 0).UTC()},
	}
	sermons := []contentrepoport.Sermon{
		{ID: "s1", Title: "빛과 소금", Preacher: "김목사", SermonDate: "2026-02-08", Category: "주일설교",
			CreatedAt: time.Unix(1000, 0).UTC(), UpdatedAt: time.Unix(1000, 0).UTC()},
	}
	h := newTestHarness(t, anns, sermons)

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/announcements", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status=%d", rec.Code)
	}
	var listResp struct {
		Announcements []contentrepoport.Announcement `json:"announcements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listResp.Announcements) != 2 || listResp.Announcements[0].ID != "a2" {
		t.Fatalf("announcements: %+v", listResp.Announcements)
	}

	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sermons/s1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("sermon status=%d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sermons/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing sermon status=%d, want 404", rec.Code)
	}
}
