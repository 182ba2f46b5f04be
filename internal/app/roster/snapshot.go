package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// SchemaVersion is the current persisted snapshot format.
//
// Version history:
//
//	1 — bare member array, isActive bool, no sub-record lists
//	    (the legacy browser-storage format; version 1 snapshots are
//	    recognized by the document being a JSON array, not an envelope)
//	2 — {schemaVersion, savedAt, members} envelope, tri-state memberStatus,
//	    prayerRequests/pastoralVisits lists
const SchemaVersion = 2

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	SavedAt       time.Time       `json:"savedAt"`
	Members       json.RawMessage `json:"members"`
}

// migrations transforms the members document from version key to key+1.
// Unknown versions have no entry: the caller falls back to reseeding.
var migrations = map[int]func(json.RawMessage) (json.RawMessage, error){
	1: migrateV1,
}

func encodeSnapshot(members []domain.Member, savedAt time.Time) ([]byte, error) {
	raw, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("encode members: %w", err)
	}
	return json.Marshal(envelope{
		SchemaVersion: SchemaVersion,
		SavedAt:       savedAt,
		Members:       raw,
	})
}

// decodeSnapshot parses a persisted snapshot of any known version and
// migrates it forward to the current format.
func decodeSnapshot(data []byte) ([]domain.Member, error) {
	version, raw, err := splitSnapshot(data)
	if err != nil {
		return nil, err
	}

	for version < SchemaVersion {
		m, ok := migrations[version]
		if !ok {
			return nil, fmt.Errorf("no migration path from snapshot version %d", version)
		}
		if raw, err = m(raw); err != nil {
			return nil, fmt.Errorf("migrate snapshot v%d: %w", version, err)
		}
		version++
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("unknown snapshot version %d", version)
	}

	var members []domain.Member
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	for i := range members {
		if members[i].PrayerRequests == nil {
			members[i].PrayerRequests = []domain.PrayerRequest{}
		}
		if members[i].PastoralVisits == nil {
			members[i].PastoralVisits = []domain.PastoralVisit{}
		}
	}
	return members, nil
}

func splitSnapshot(data []byte) (int, json.RawMessage, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0, nil, fmt.Errorf("empty snapshot")
	}
	// The legacy format stored the member array directly.
	if trimmed[0] == '[' {
		return 1, json.RawMessage(trimmed), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, nil, fmt.Errorf("decode snapshot envelope: %w", err)
	}
	if env.SchemaVersion < 1 || env.Members == nil {
		return 0, nil, fmt.Errorf("malformed snapshot envelope")
	}
	return env.SchemaVersion, env.Members, nil
}

// migrateV1 upgrades legacy records: isActive becomes memberStatus and the
// sub-record lists are created empty. Unrecognized keys pass through so
// nothing a v1 snapshot carried is discarded.
func migrateV1(raw json.RawMessage) (json.RawMessage, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	for _, rec := range records {
		if _, has := rec["memberStatus"]; !has {
			status := domain.StatusActive
			if v, ok := rec["isActive"]; ok {
				var active bool
				if err := json.Unmarshal(v, &active); err == nil && !active {
					status = domain.StatusInactive
				}
			}
			rec["memberStatus"] = mustMarshal(status)
		}
		delete(rec, "isActive")

		if _, ok := rec["prayerRequests"]; !ok {
			rec["prayerRequests"] = json.RawMessage(`[]`)
		}
		if _, ok := rec["pastoralVisits"]; !ok {
			rec["pastoralVisits"] = json.RawMessage(`[]`)
		}
	}

	return json.Marshal(records)
}

func mustMarshal(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
