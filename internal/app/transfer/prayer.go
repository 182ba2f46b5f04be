package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/app/roster"
	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// PrayerImportEntry is one member's batch in the prayer-import JSON document.
type PrayerImportEntry struct {
	Name    string `json:"name"`
	Prayers []struct {
		Content   string `json:"content"`
		CreatedAt string `json:"createdAt"`
		Source    string `json:"source"`
	} `json:"prayers"`
}

// PrayerMatchResult pairs the store-ready entries with the names that could
// not be matched, so the UI can show what would be skipped before importing.
type PrayerMatchResult struct {
	Entries   []roster.BulkPrayerEntry
	Unmatched []string
}

// ParsePrayerImport decodes the prayer-import document.
func ParsePrayerImport(data []byte) ([]PrayerImportEntry, error) {
	var entries []PrayerImportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode prayer import: %w", err)
	}
	return entries, nil
}

// MatchPrayerImport resolves each entry to a member by exact name equality
// (the import format carries no ids). Prayer dates are parsed leniently; an
// entry whose date is missing or unparsable gets a zero time, which the
// store stamps with the current time on import.
func MatchPrayerImport(members []domain.Member, entries []PrayerImportEntry) PrayerMatchResult {
	byName := make(map[string]domain.MemberID, len(members))
	for _, m := range members {
		byName[m.Name] = m.ID
	}

	var res PrayerMatchResult
	for _, entry := range entries {
		id, ok := byName[entry.Name]
		if !ok {
			res.Unmatched = append(res.Unmatched, entry.Name)
			continue
		}
		prayers := make([]roster.NewPrayer, 0, len(entry.Prayers))
		for _, p := range entry.Prayers {
			prayers = append(prayers, roster.NewPrayer{
				Content:   p.Content,
				CreatedAt: parsePrayerDate(p.CreatedAt),
			})
		}
		res.Entries = append(res.Entries, roster.BulkPrayerEntry{MemberID: id, Prayers: prayers})
	}
	return res
}

// parsePrayerDate accepts the date shapes seen in real import files. "미상"
// is the scanned-records marker for an unknown date.
func parsePrayerDate(s string) time.Time {
	switch s {
	case "", "unspecified", "미상":
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
