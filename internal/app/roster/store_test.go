package roster

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	memclock "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/clock"
	memsnapshot "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/snapshotstore"
	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *memsnapshot.Store, *memclock.ManualClock) {
	t.Helper()
	snaps := memsnapshot.NewStore()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	s := New(snaps, clk, slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	// Tests start from an empty collection unless they opt into the seed.
	s.ReplaceAll(nil)
	return s, snaps, clk
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestStore_LoadsSeedWhenSnapshotMissing(t *testing.T) {
	t.Parallel()

	snaps := memsnapshot.NewStore()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	s := New(snaps, clk, slog.Default())

	if got, want := len(s.GetAll()), len(SeedMembers()); got != want {
		t.Fatalf("len(GetAll())=%d, want %d", got, want)
	}
}

func TestStore_LoadsSeedWhenSnapshotCorrupt(t *testing.T) {
	t.Parallel()

	snaps := memsnapshot.NewSeeded([]byte(`{"schemaVersion": `))
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	s := New(snaps, clk, slog.Default())

	if got, want := len(s.GetAll()), len(SeedMembers()); got != want {
		t.Fatalf("len(GetAll())=%d, want %d", got, want)
	}
}

func TestStore_AddAssignsUniqueIDsAndPrepends(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)

	seen := map[domain.MemberID]bool{}
	for _, name := range []string{"김영수", "이민지", "박철수"} {
		m, err := s.Add(MemberFormData{Name: name})
		if err != nil {
			t.Fatalf("Add(%q) err=%v", name, err)
		}
		if m.ID == "" {
			t.Fatalf("Add(%q) assigned empty id", name)
		}
		if seen[m.ID] {
			t.Fatalf("Add(%q) reused id %q", name, m.ID)
		}
		seen[m.ID] = true
	}

	all := s.GetAll()
	if len(all) != 3 {
		t.Fatalf("len(GetAll())=%d, want 3", len(all))
	}
	// Newest first.
	if all[0].Name != "박철수" || all[2].Name != "김영수" {
		t.Fatalf("order=%q,%q,%q; want newest first", all[0].Name, all[1].Name, all[2].Name)
	}
}

func TestStore_AddDefaultsAndStamps(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	now := clk.Now()

	m, err := s.Add(MemberFormData{Name: "  김   영수 ", Phone: "010-1234-5678"})
	if err != nil {
		t.Fatalf("Add() err=%v", err)
	}
	if m.Name != "김 영수" {
		t.Fatalf("Name=%q, want normalized", m.Name)
	}
	if m.Status != domain.StatusActive {
		t.Fatalf("Status=%q, want active", m.Status)
	}
	if m.PrayerRequests == nil || m.PastoralVisits == nil {
		t.Fatalf("sub-record lists not initialized")
	}
	if !m.CreatedAt.Equal(now) || !m.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps=%v/%v, want %v", m.CreatedAt, m.UpdatedAt, now)
	}
	if m.Address != nil {
		t.Fatalf("Address=%v, want nil for empty form field", *m.Address)
	}
}

func TestStore_AddRejectsEmptyName(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	if _, err := s.Add(MemberFormData{Name: "   "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Add() err=%v, want %v", err, ErrNameRequired)
	}
	if len(s.GetAll()) != 0 {
		t.Fatalf("collection changed on rejected Add")
	}
}

func TestStore_UpdateMergesPatch(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수", Phone: "010-1234-5678", District: "1구역"})

	clk.Advance(time.Minute)
	got, err := s.Update(m.ID, MemberPatch{
		Phone:    Some("010-9999-0000"), // overwrite
		District: Null[string](),        // clear
		// Address unspecified: preserved (nil)
	})
	if err != nil {
		t.Fatalf("Update() err=%v", err)
	}
	if got.Phone == nil || *got.Phone != "010-9999-0000" {
		t.Fatalf("Phone=%v, want overwritten", got.Phone)
	}
	if got.District != nil {
		t.Fatalf("District=%v, want cleared", *got.District)
	}
	if got.Name != "김영수" {
		t.Fatalf("Name=%q, want preserved", got.Name)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("UpdatedAt not advanced: %v <= %v", got.UpdatedAt, got.CreatedAt)
	}

	// Empty string clears like null.
	got, err = s.Update(m.ID, MemberPatch{Phone: Some("")})
	if err != nil {
		t.Fatalf("Update() err=%v", err)
	}
	if got.Phone != nil {
		t.Fatalf("Phone=%v, want cleared by empty value", *got.Phone)
	}
}

func TestStore_UpdateRejectsEmptyNameAndBadStatus(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})

	if _, err := s.Update(m.ID, MemberPatch{Name: Some("  ")}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Update(empty name) err=%v, want %v", err, ErrNameRequired)
	}
	if _, err := s.Update(m.ID, MemberPatch{Name: Null[string]()}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Update(null name) err=%v, want %v", err, ErrNameRequired)
	}
	if _, err := s.Update(m.ID, MemberPatch{Status: Some(domain.MemberStatus("retired"))}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("Update(bad status) err=%v, want %v", err, ErrInvalidStatus)
	}
}

func TestStore_UnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	s, snaps, _ := newTestStore(t)
	s.Add(MemberFormData{Name: "김영수"})
	before, err := snaps.Read()
	if err != nil {
		t.Fatalf("Read() err=%v", err)
	}

	if _, err := s.Update("nope", MemberPatch{Phone: Some("1")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(unknown) err=%v, want %v", err, ErrNotFound)
	}
	if s.Delete("nope") {
		t.Fatalf("Delete(unknown)=true, want false")
	}
	if _, err := s.ToggleStatus("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ToggleStatus(unknown) err=%v, want %v", err, ErrNotFound)
	}
	if _, err := s.AddPrayerRequest("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddPrayerRequest(unknown) err=%v, want %v", err, ErrNotFound)
	}

	after, err := snaps.Read()
	if err != nil {
		t.Fatalf("Read() err=%v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("snapshot changed by no-op mutations")
	}
}

func TestStore_ToggleStatusCycle(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})

	for i, want := range []domain.MemberStatus{
		domain.StatusInactive, domain.StatusActive, domain.StatusInactive, domain.StatusActive,
	} {
		got, err := s.ToggleStatus(m.ID)
		if err != nil {
			t.Fatalf("ToggleStatus() #%d err=%v", i, err)
		}
		if got.Status != want {
			t.Fatalf("ToggleStatus() #%d status=%q, want %q", i, got.Status, want)
		}
	}
}

func TestStore_ToggleStatusIgnoresRemoved(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})
	if _, err := s.Update(m.ID, MemberPatch{Status: Some(domain.StatusRemoved)}); err != nil {
		t.Fatalf("Update() err=%v", err)
	}

	notified := 0
	defer s.Subscribe(func() { notified++ })()

	got, err := s.ToggleStatus(m.ID)
	if err != nil {
		t.Fatalf("ToggleStatus() err=%v", err)
	}
	if got.Status != domain.StatusRemoved {
		t.Fatalf("status=%q, want removed unchanged", got.Status)
	}
	if notified != 0 {
		t.Fatalf("removed-member toggle notified %d times, want 0", notified)
	}

	// Reactivating requires an explicit update.
	got, err = s.Update(m.ID, MemberPatch{Status: Some(domain.StatusActive)})
	if err != nil || got.Status != domain.StatusActive {
		t.Fatalf("Update(active) got %q err=%v", got.Status, err)
	}
}

func TestStore_DeleteCascades(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})
	s.AddPrayerRequest(m.ID, "건강을 위해")
	s.AddPrayerRequest(m.ID, "자녀를 위해")
	s.AddPastoralVisit(m.ID, "2025-03-01", "심방")

	if !s.Delete(m.ID) {
		t.Fatalf("Delete()=false, want true")
	}
	if _, ok := s.GetByID(m.ID); ok {
		t.Fatalf("GetByID() found deleted member")
	}
	for _, other := range s.GetAll() {
		if other.ID == m.ID {
			t.Fatalf("deleted member still in collection")
		}
	}
}

func TestStore_PrayerRequestCRUD(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})

	clk.Advance(time.Minute)
	got, err := s.AddPrayerRequest(m.ID, "건강을 위해")
	if err != nil {
		t.Fatalf("AddPrayerRequest() err=%v", err)
	}
	clk.Advance(time.Minute)
	got, err = s.AddPrayerRequest(m.ID, "자녀를 위해")
	if err != nil {
		t.Fatalf("AddPrayerRequest() err=%v", err)
	}
	if len(got.PrayerRequests) != 2 || got.PrayerRequests[0].Content != "자녀를 위해" {
		t.Fatalf("requests=%+v, want newest first", got.PrayerRequests)
	}
	if !got.UpdatedAt.Equal(clk.Now()) {
		t.Fatalf("UpdatedAt=%v, want stamped %v", got.UpdatedAt, clk.Now())
	}

	reqID := got.PrayerRequests[1].ID
	got, err = s.UpdatePrayerRequest(m.ID, reqID, "부모님 건강을 위해")
	if err != nil {
		t.Fatalf("UpdatePrayerRequest() err=%v", err)
	}
	if got.PrayerRequests[1].Content != "부모님 건강을 위해" {
		t.Fatalf("content=%q, want updated", got.PrayerRequests[1].Content)
	}

	if _, err := s.UpdatePrayerRequest(m.ID, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePrayerRequest(missing) err=%v, want %v", err, ErrNotFound)
	}

	got, err = s.DeletePrayerRequest(m.ID, reqID)
	if err != nil {
		t.Fatalf("DeletePrayerRequest() err=%v", err)
	}
	if len(got.PrayerRequests) != 1 {
		t.Fatalf("len(requests)=%d, want 1", len(got.PrayerRequests))
	}
}

func TestStore_PastoralVisitCRUD(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})

	got, err := s.AddPastoralVisit(m.ID, "2025-03-01", "가정 심방")
	if err != nil {
		t.Fatalf("AddPastoralVisit() err=%v", err)
	}
	v := got.PastoralVisits[0]
	if v.VisitedAt != "2025-03-01" || !v.CreatedAt.Equal(clk.Now()) {
		t.Fatalf("visit=%+v; VisitedAt and CreatedAt must be distinct fields", v)
	}

	got, err = s.UpdatePastoralVisit(m.ID, v.ID, "2025-03-02", "병원 심방")
	if err != nil {
		t.Fatalf("UpdatePastoralVisit() err=%v", err)
	}
	if got.PastoralVisits[0].VisitedAt != "2025-03-02" || got.PastoralVisits[0].Content != "병원 심방" {
		t.Fatalf("visit=%+v, want updated", got.PastoralVisits[0])
	}

	got, err = s.DeletePastoralVisit(m.ID, v.ID)
	if err != nil {
		t.Fatalf("DeletePastoralVisit() err=%v", err)
	}
	if len(got.PastoralVisits) != 0 {
		t.Fatalf("len(visits)=%d, want 0", len(got.PastoralVisits))
	}
}

func TestStore_BulkAddPrayerRequestsDedup(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	kim, _ := s.Add(MemberFormData{Name: "김영수"})
	lee, _ := s.Add(MemberFormData{Name: "이민지"})

	entries := []BulkPrayerEntry{{
		MemberID: kim.ID,
		Prayers: []NewPrayer{
			{Content: "건강", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Content: "감사", CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}

	notified := 0
	defer s.Subscribe(func() { notified++ })()

	res := s.BulkAddPrayerRequests(entries)
	if res.TotalAdded != 2 {
		t.Fatalf("TotalAdded=%d, want 2", res.TotalAdded)
	}
	if notified != 1 {
		t.Fatalf("notified %d times, want exactly 1", notified)
	}

	got, _ := s.GetByID(kim.ID)
	if len(got.PrayerRequests) != 2 {
		t.Fatalf("len(kim.PrayerRequests)=%d, want 2", len(got.PrayerRequests))
	}
	// Sorted newest first.
	if got.PrayerRequests[0].Content != "감사" {
		t.Fatalf("requests=%+v, want sorted by createdAt descending", got.PrayerRequests)
	}
	if other, _ := s.GetByID(lee.ID); len(other.PrayerRequests) != 0 {
		t.Fatalf("untargeted member gained %d requests", len(other.PrayerRequests))
	}

	// The repeat adds nothing and does not notify.
	res = s.BulkAddPrayerRequests(entries)
	if res.TotalAdded != 0 {
		t.Fatalf("repeat TotalAdded=%d, want 0", res.TotalAdded)
	}
	if notified != 1 {
		t.Fatalf("repeat notified (total %d), want no second notification", notified)
	}
}

func TestStore_BulkAddStampsUndatedPrayers(t *testing.T) {
	t.Parallel()

	s, _, clk := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})

	res := s.BulkAddPrayerRequests([]BulkPrayerEntry{{
		MemberID: m.ID,
		Prayers:  []NewPrayer{{Content: "중보"}}, // zero CreatedAt = date unknown
	}})
	if res.TotalAdded != 1 {
		t.Fatalf("TotalAdded=%d, want 1", res.TotalAdded)
	}
	got, _ := s.GetByID(m.ID)
	if !got.PrayerRequests[0].CreatedAt.Equal(clk.Now()) {
		t.Fatalf("CreatedAt=%v, want stamped with now", got.PrayerRequests[0].CreatedAt)
	}
}

func TestStore_BulkAddDedupTrimsWhitespace(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	m, _ := s.Add(MemberFormData{Name: "김영수"})
	s.AddPrayerRequest(m.ID, "건강을 위해")

	res := s.BulkAddPrayerRequests([]BulkPrayerEntry{{
		MemberID: m.ID,
		Prayers:  []NewPrayer{{Content: "  건강을 위해  "}, {Content: "새 기도"}},
	}})
	if res.TotalAdded != 1 {
		t.Fatalf("TotalAdded=%d, want 1 (trimmed duplicate skipped)", res.TotalAdded)
	}
}

func TestStore_ReplaceAllAndReset(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	s.Add(MemberFormData{Name: "김영수"})

	notified := 0
	defer s.Subscribe(func() { notified++ })()

	restored := []domain.Member{{ID: "r1", Name: "복원"}, {ID: "r2", Name: "백업"}}
	s.ReplaceAll(restored)
	if notified != 1 {
		t.Fatalf("ReplaceAll notified %d times, want 1", notified)
	}
	all := s.GetAll()
	if len(all) != 2 || all[0].PrayerRequests == nil {
		t.Fatalf("GetAll()=%+v, want restored members with non-nil sub-lists", all)
	}

	s.ResetToSeed()
	if got, want := len(s.GetAll()), len(SeedMembers()); got != want {
		t.Fatalf("after reset len=%d, want %d", got, want)
	}
	if notified != 2 {
		t.Fatalf("ResetToSeed did not notify")
	}
}

func TestStore_SubscribeOrderAndUnsubscribe(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)

	var order []string
	unsubA := s.Subscribe(func() { order = append(order, "a") })
	s.Subscribe(func() { order = append(order, "b") })

	s.Add(MemberFormData{Name: "김영수"})
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order=%v, want registration order", order)
	}

	unsubA()
	unsubA() // idempotent
	order = nil
	s.Add(MemberFormData{Name: "이민지"})
	if len(order) != 1 || order[0] != "b" {
		t.Fatalf("order=%v after unsubscribe, want [b]", order)
	}
}

func TestStore_PanickingListenerDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	called := false
	s.Subscribe(func() { panic("boom") })
	s.Subscribe(func() { called = true })

	if _, err := s.Add(MemberFormData{Name: "김영수"}); err != nil {
		t.Fatalf("Add() err=%v", err)
	}
	if !called {
		t.Fatalf("second listener not invoked after first panicked")
	}
}

func TestStore_SnapshotWriteFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	s, snaps, _ := newTestStore(t)
	snaps.FailWrites = errors.New("quota exceeded")

	m, err := s.Add(MemberFormData{Name: "김영수"})
	if err != nil {
		t.Fatalf("Add() err=%v, want persistence failure swallowed", err)
	}
	if _, ok := s.GetByID(m.ID); !ok {
		t.Fatalf("in-memory state lost after failed write")
	}
}

func TestStore_MutationProducesNewSliceIdentity(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t)
	s.Add(MemberFormData{Name: "김영수"})

	before := s.GetAll()
	s.Add(MemberFormData{Name: "이민지"})
	after := s.GetAll()

	if len(before) != 1 || len(after) != 2 {
		t.Fatalf("len before/after=%d/%d", len(before), len(after))
	}
	// The old reference still sees the old state.
	if before[0].Name != "김영수" {
		t.Fatalf("captured snapshot mutated: %+v", before)
	}
}

func TestStore_RoundTripPersistence(t *testing.T) {
	t.Parallel()

	snaps := memsnapshot.NewStore()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	s := New(snaps, clk, slog.Default())
	s.ReplaceAll(nil)

	m, _ := s.Add(MemberFormData{Name: "김영수", Phone: "010-1234-5678", District: "1구역"})
	s.AddPrayerRequest(m.ID, "건강을 위해")
	s.AddPastoralVisit(m.ID, "2025-03-01", "심방")
	s.Add(MemberFormData{Name: "이민지"})

	// A second store over the same snapshot store sees an equivalent collection.
	s2 := New(snaps, clk, slog.Default())
	got, err := json.Marshal(s2.GetAll())
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	want, err := json.Marshal(s.GetAll())
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round-trip mismatch:\n got=%s\nwant=%s", got, want)
	}
}
