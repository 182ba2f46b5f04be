// Package contentrepo provides read access to the public church-information
// content: announcements and sermons. Content is authored out-of-band (seed
// scripts, SQL), so the port is read-only.
package contentrepo

import (
	"context"
	"time"
)

type AnnouncementID string
type SermonID string

// Announcement is a public notice shown on the church site.
type Announcement struct {
	ID        AnnouncementID
	Title     string
	Content   string
	Summary   *string
	Category  string
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sermon is a published sermon entry. SermonDate is the date preached
// ("2026-02-15"), distinct from the record's audit timestamps.
type Sermon struct {
	ID         SermonID
	Title      string
	Preacher   string
	Scripture  *string
	Summary    *string
	SermonDate string
	VideoURL   *string
	AudioURL   *string
	Series     *string
	Category   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Repository lists published content.
//
// Ordering expectations:
// - ListAnnouncements: pinned first, then newest first.
// - ListSermons: sermon date descending.
type Repository interface {
	ListAnnouncements(ctx context.Context, limit int) ([]Announcement, error)
	GetAnnouncement(ctx context.Context, id AnnouncementID) (Announcement, error)

	ListSermons(ctx context.Context, limit int) ([]Sermon, error)
	GetSermon(ctx context.Context, id SermonID) (Sermon, error)
}
