// Package testutil provides the shared Postgres harness for adapter contract
// tests. Tests are skipped unless TEST_DATABASE_URL points at a disposable
// database.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/browncherrycoffee/gwanak-church/internal/adapters/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS roster_backups (
    slot        text PRIMARY KEY,
    version     integer NOT NULL,
    exported_at timestamptz NOT NULL,
    count       integer NOT NULL,
    members     jsonb NOT NULL
);

CREATE TABLE IF NOT EXISTS announcements (
    id           text PRIMARY KEY,
    title        text NOT NULL,
    content      text NOT NULL,
    summary      text,
    category     text NOT NULL DEFAULT '일반',
    is_pinned    boolean NOT NULL DEFAULT false,
    is_published boolean NOT NULL DEFAULT true,
    created_at   timestamptz NOT NULL,
    updated_at   timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS sermons (
    id           text PRIMARY KEY,
    title        text NOT NULL,
    preacher     text NOT NULL,
    scripture    text,
    summary      text,
    sermon_date  date NOT NULL,
    video_url    text,
    audio_url    text,
    series       text,
    category     text NOT NULL DEFAULT '주일설교',
    is_published boolean NOT NULL DEFAULT true,
    created_at   timestamptz NOT NULL,
    updated_at   timestamptz NOT NULL
);
`

// OpenMigratedPool opens a pool against TEST_DATABASE_URL, applies the
// schema, and truncates all tables so each test run starts clean. The pool
// is closed via t.Cleanup.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE roster_backups, announcements, sermons`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
