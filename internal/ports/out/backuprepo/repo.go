// Package backuprepo defines storage for the server backup channel: a single
// authoritative roster snapshot members upload manually and restore from
// after confirmation. Only the most recent payload is kept.
package backuprepo

import (
	"context"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// Payload is the backup document shape. Version gates future format changes;
// Count is denormalized so the restore UI can show a summary without
// deserializing Members.
type Payload struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Count      int             `json:"count"`
	Members    []domain.Member `json:"members"`
}

// Repository stores the latest backup payload. Save overwrites
// unconditionally: the channel is last-writer-wins by design.
type Repository interface {
	Latest(ctx context.Context) (Payload, error)
	Save(ctx context.Context, p Payload) error
}
