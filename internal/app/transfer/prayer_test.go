package transfer

import (
	"testing"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

const prayerImportJSON = `[
	{"name": "김영수", "prayers": [
		{"content": "건강을 위해", "createdAt": "2025-01-15", "source": "주보"},
		{"content": "자녀 진학", "createdAt": "미상", "source": "수기"}
	]},
	{"name": "홍길동", "prayers": [
		{"content": "이사", "createdAt": "2025-02-01", "source": "주보"}
	]}
]`

func TestMatchPrayerImport(t *testing.T) {
	t.Parallel()

	entries, err := ParsePrayerImport([]byte(prayerImportJSON))
	if err != nil {
		t.Fatalf("ParsePrayerImport() err=%v", err)
	}

	members := []domain.Member{
		{ID: "m1", Name: "김영수"},
		{ID: "m2", Name: "이민지"},
	}
	res := MatchPrayerImport(members, entries)

	if len(res.Entries) != 1 || res.Entries[0].MemberID != "m1" {
		t.Fatalf("Entries=%+v, want one entry for m1", res.Entries)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0] != "홍길동" {
		t.Fatalf("Unmatched=%v, want [홍길동]", res.Unmatched)
	}

	prayers := res.Entries[0].Prayers
	if len(prayers) != 2 {
		t.Fatalf("len(prayers)=%d, want 2", len(prayers))
	}
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !prayers[0].CreatedAt.Equal(want) {
		t.Fatalf("prayers[0].CreatedAt=%v, want %v", prayers[0].CreatedAt, want)
	}
	if !prayers[1].CreatedAt.IsZero() {
		t.Fatalf("prayers[1].CreatedAt=%v, want zero for 미상", prayers[1].CreatedAt)
	}
}

func TestMatchPrayerImport_ExactNameOnly(t *testing.T) {
	t.Parallel()

	// Household linkage and import matching are by exact string equality;
	// near-misses stay unmatched rather than fuzzy-matching.
	entries, err := ParsePrayerImport([]byte(`[{"name": "김 영수", "prayers": []}]`))
	if err != nil {
		t.Fatalf("ParsePrayerImport() err=%v", err)
	}
	res := MatchPrayerImport([]domain.Member{{ID: "m1", Name: "김영수"}}, entries)
	if len(res.Entries) != 0 || len(res.Unmatched) != 1 {
		t.Fatalf("res=%+v, want unmatched only", res)
	}
}

func TestParsePrayerImport_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParsePrayerImport([]byte(`{"not": "an array"}`)); err == nil {
		t.Fatalf("ParsePrayerImport(object) succeeded, want error")
	}
}

func TestParsePrayerDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		zero bool
	}{
		{"2025-01-15", false},
		{"2025-01", false},
		{"2025", false},
		{"2025-01-15T09:30:00Z", false},
		{"", true},
		{"unspecified", true},
		{"미상", true},
		{"내년쯤", true},
	}
	for _, tc := range cases {
		if got := parsePrayerDate(tc.in); got.IsZero() != tc.zero {
			t.Fatalf("parsePrayerDate(%q)=%v, want zero=%v", tc.in, got, tc.zero)
		}
	}
}
