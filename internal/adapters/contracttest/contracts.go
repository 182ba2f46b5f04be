// Package contracttest holds behavior contracts shared by every adapter that
// implements the same port. Each adapter package runs these from its own
// contract_test.go so memory and postgres stay interchangeable.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
	backuprepoport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/backuprepo"
	contentrepoport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
	snapshotstoreport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/snapshotstore"
)

type CleanupFunc = func()

type SnapshotStoreFactory func(t *testing.T) (snapshotstoreport.Store, CleanupFunc)
type BackupRepoFactory func(t *testing.T) (backuprepoport.Repository, CleanupFunc)

// ContentRepoFactory builds a repository pre-seeded with the given published
// content. The port is read-only, so seeding is the factory's job (in-memory
// constructor args, SQL inserts).
type ContentRepoFactory func(t *testing.T, anns []contentrepoport.Announcement, sermons []contentrepoport.Sermon) (contentrepoport.Repository, CleanupFunc)

func RunSnapshotStore(t *testing.T, newStore SnapshotStoreFactory) {
	t.Helper()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if _, err := store.Read(); !errors.Is(err, snapshotstoreport.ErrNotFound) {
		t.Fatalf("Read on empty store: err=%v, want ErrNotFound", err)
	}

	if err := store.Write([]byte(`{"v":1}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Fatalf("Read=%q", got)
	}

	// Full-document overwrite, no appending.
	if err := store.Write([]byte(`{"v":2}`)); err != nil {
		t.Fatalf("Write overwrite: %v", err)
	}
	got, err = store.Read()
	if err != nil || string(got) != `{"v":2}` {
		t.Fatalf("Read after overwrite: %q err=%v", got, err)
	}
}

func RunBackupRepo(t *testing.T, newRepo BackupRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if _, err := repo.Latest(ctx); !errors.Is(err, backuprepoport.ErrNotFound) {
		t.Fatalf("Latest on empty repo: err=%v, want ErrNotFound", err)
	}

	phone := "010-1234-5678"
	first := backuprepoport.Payload{
		Version:    1,
		ExportedAt: time.Unix(1000, 0).UTC(),
		Count:      1,
		Members: []domain.Member{{
			ID:     "m1",
			Name:   "김영수",
			Phone:  &phone,
			Status: domain.StatusActive,
			PrayerRequests: []domain.PrayerRequest{
				{ID: "p1", Content: "건강", CreatedAt: time.Unix(900, 0).UTC()},
			},
			PastoralVisits: []domain.PastoralVisit{},
			CreatedAt:      time.Unix(800, 0).UTC(),
			UpdatedAt:      time.Unix(900, 0).UTC(),
		}},
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.Count != 1 || len(got.Members) != 1 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	m := got.Members[0]
	if m.ID != "m1" || m.Name != "김영수" || m.Phone == nil || *m.Phone != phone {
		t.Fatalf("unexpected member: %+v", m)
	}
	if len(m.PrayerRequests) != 1 || m.PrayerRequests[0].Content != "건강" {
		t.Fatalf("prayer requests not preserved: %+v", m.PrayerRequests)
	}
	if !got.ExportedAt.Equal(first.ExportedAt) {
		t.Fatalf("ExportedAt=%v, want %v", got.ExportedAt, first.ExportedAt)
	}

	// Last writer wins: only the most recent payload is kept.
	second := backuprepoport.Payload{
		Version:    1,
		ExportedAt: time.Unix(2000, 0).UTC(),
		Count:      0,
		Members:    []domain.Member{},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}
	got, err = repo.Latest(ctx)
	if err != nil || got.Count != 0 || len(got.Members) != 0 {
		t.Fatalf("expected second payload, got %+v err=%v", got, err)
	}
}

func RunContentRepo(t *testing.T, newRepo ContentRepoFactory) {
	t.Helper()
	ctx := context.Background()

	summary := "요약"
	scripture := "요한복음 3:16"
	anns := []contentrepoport.Announcement{
		{ID: "a-old", Title: "구역 모임 안내", Content: "본문", Category: "일반",
			CreatedAt: time.Unix(1000, 0).UTC(), UpdatedAt: time.Unix(1000, 0).UTC()},
		{ID: "a-new", Title: "성탄절 예배", Content: "본문", Summary: &summary, Category: "예배",
			CreatedAt: time.Unix(3000, 0).UTC(), UpdatedAt: time.Unix(3000, 0).UTC()},
		{ID: "a-pinned", Title: "헌금 계좌 변경", Content: "본문", Category: "중요", IsPinned: true,
			CreatedAt: time.Unix(2000, 0).UTC(), UpdatedAt: time.Unix(2000, 0).UTC()},
	}
	sermons := []contentrepoport.Sermon{
		{ID: "s-feb", Title: "빛과 소금", Preacher: "김목사", Scripture: &scripture,
			SermonDate: "2026-02-15", Category: "주일설교",
			CreatedAt: time.Unix(1000, 0).UTC(), UpdatedAt: time.Unix(1000, 0).UTC()},
		{ID: "s-mar", Title: "부활의 소망", Preacher: "김목사",
			SermonDate: "2026-03-01", Category: "주일설교",
			CreatedAt: time.Unix(2000, 0).UTC(), UpdatedAt: time.Unix(2000, 0).UTC()},
	}

	repo, cleanup := newRepo(t, anns, sermons)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	gotAnns, err := repo.ListAnnouncements(ctx, 10)
	if err != nil {
		t.Fatalf("ListAnnouncements: %v", err)
	}
	if len(gotAnns) != 3 {
		t.Fatalf("len(anns)=%d: %+v", len(gotAnns), gotAnns)
	}
	if gotAnns[0].ID != "a-pinned" || gotAnns[1].ID != "a-new" || gotAnns[2].ID != "a-old" {
		t.Fatalf("announcement order: %s, %s, %s", gotAnns[0].ID, gotAnns[1].ID, gotAnns[2].ID)
	}

	limited, err := repo.ListAnnouncements(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].ID != "a-pinned" {
		t.Fatalf("limited announcements: %+v err=%v", limited, err)
	}

	ann, err := repo.GetAnnouncement(ctx, "a-new")
	if err != nil {
		t.Fatalf("GetAnnouncement: %v", err)
	}
	if ann.Summary == nil || *ann.Summary != summary {
		t.Fatalf("summary not preserved: %+v", ann)
	}
	if _, err := repo.GetAnnouncement(ctx, "nope"); !errors.Is(err, contentrepoport.ErrNotFound) {
		t.Fatalf("GetAnnouncement(nope): err=%v, want ErrNotFound", err)
	}

	gotSermons, err := repo.ListSermons(ctx, 10)
	if err != nil {
		t.Fatalf("ListSermons: %v", err)
	}
	if len(gotSermons) != 2 || gotSermons[0].ID != "s-mar" || gotSermons[1].ID != "s-feb" {
		t.Fatalf("sermon order: %+v", gotSermons)
	}

	sermon, err := repo.GetSermon(ctx, "s-feb")
	if err != nil {
		t.Fatalf("GetSermon: %v", err)
	}
	if sermon.Scripture == nil || *sermon.Scripture != scripture {
		t.Fatalf("scripture not preserved: %+v", sermon)
	}
	if _, err := repo.GetSermon(ctx, "nope"); !errors.Is(err, contentrepoport.ErrNotFound) {
		t.Fatalf("GetSermon(nope): err=%v, want ErrNotFound", err)
	}
}
