package backuprepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/backuprepo"
)

// Repo is a Postgres implementation of backuprepo.Repository. The channel
// keeps exactly one payload, so the table is a single-row upsert keyed by a
// fixed slot.
//
// Schema:
//
//	CREATE TABLE roster_backups (
//	    slot        text PRIMARY KEY,
//	    version     integer NOT NULL,
//	    exported_at timestamptz NOT NULL,
//	    count       integer NOT NULL,
//	    members     jsonb NOT NULL
//	);
type Repo struct {
	pool *pgxpool.Pool
}

const slot = "latest"

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Latest(ctx context.Context) (backuprepo.Payload, error) {
	if r.pool == nil {
		return backuprepo.Payload{}, errors.New("nil postgres pool")
	}

	var (
		p       backuprepo.Payload
		members []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT version, exported_at, count, members
		FROM roster_backups
		WHERE slot = $1
	`, slot).Scan(&p.Version, &p.ExportedAt, &p.Count, &members)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return backuprepo.Payload{}, backuprepo.ErrNotFound
		}
		return backuprepo.Payload{}, fmt.Errorf("query latest backup: %w", err)
	}

	if err := json.Unmarshal(members, &p.Members); err != nil {
		return backuprepo.Payload{}, fmt.Errorf("decode backup members: %w", err)
	}
	if p.Members == nil {
		p.Members = []domain.Member{}
	}
	return p, nil
}

func (r *Repo) Save(ctx context.Context, p backuprepo.Payload) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}

	members, err := json.Marshal(p.Members)
	if err != nil {
		return fmt.Errorf("encode backup members: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO roster_backups (slot, version, exported_at, count, members)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slot) DO UPDATE
		SET version = EXCLUDED.version,
		    exported_at = EXCLUDED.exported_at,
		    count = EXCLUDED.count,
		    members = EXCLUDED.members
	`, slot, p.Version, p.ExportedAt.UTC(), p.Count, members)
	if err != nil {
		return fmt.Errorf("save backup: %w", err)
	}
	return nil
}
