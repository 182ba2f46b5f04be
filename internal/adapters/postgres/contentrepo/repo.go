package contentrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
)

// Repo is a Postgres implementation of contentrepo.Repository over the
// announcements and sermons tables. Unpublished rows are never returned.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) ListAnnouncements(ctx context.Context, limit int) ([]contentrepo.Announcement, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	q := `
		SELECT id, title, content, summary, category, is_pinned, created_at, updated_at
		FROM announcements
		WHERE is_published
		ORDER BY is_pinned DESC, created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		q += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	out := []contentrepo.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) GetAnnouncement(ctx context.Context, id contentrepo.AnnouncementID) (contentrepo.Announcement, error) {
	if r.pool == nil {
		return contentrepo.Announcement{}, errors.New("nil postgres pool")
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, content, summary, category, is_pinned, created_at, updated_at
		FROM announcements
		WHERE id = $1 AND is_published
	`, string(id))
	a, err := scanAnnouncement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contentrepo.Announcement{}, contentrepo.ErrNotFound
		}
		return contentrepo.Announcement{}, err
	}
	return a, nil
}

func (r *Repo) ListSermons(ctx context.Context, limit int) ([]contentrepo.Sermon, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	q := `
		SELECT id, title, preacher, scripture, summary, sermon_date::text,
		       video_url, audio_url, series, category, created_at, updated_at
		FROM sermons
		WHERE is_published
		ORDER BY sermon_date DESC, id
	`
	args := []any{}
	if limit > 0 {
		q += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sermons: %w", err)
	}
	defer rows.Close()

	out := []contentrepo.Sermon{}
	for rows.Next() {
		s, err := scanSermon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) GetSermon(ctx context.Context, id contentrepo.SermonID) (contentrepo.Sermon, error) {
	if r.pool == nil {
		return contentrepo.Sermon{}, errors.New("nil postgres pool")
	}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, preacher, scripture, summary, sermon_date::text,
		       video_url, audio_url, series, category, created_at, updated_at
		FROM sermons
		WHERE id = $1 AND is_published
	`, string(id))
	s, err := scanSermon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contentrepo.Sermon{}, contentrepo.ErrNotFound
		}
		return contentrepo.Sermon{}, err
	}
	return s, nil
}

func scanAnnouncement(row pgx.Row) (contentrepo.Announcement, error) {
	var a contentrepo.Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Summary, &a.Category, &a.IsPinned, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return contentrepo.Announcement{}, err
	}
	return a, nil
}

func scanSermon(row pgx.Row) (contentrepo.Sermon, error) {
	var s contentrepo.Sermon
	err := row.Scan(&s.ID, &s.Title, &s.Preacher, &s.Scripture, &s.Summary, &s.SermonDate,
		&s.VideoURL, &s.AudioURL, &s.Series, &s.Category, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return contentrepo.Sermon{}, err
	}
	return s, nil
}
