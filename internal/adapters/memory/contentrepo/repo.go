package contentrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
)

// Repo is an in-memory implementation of contentrepo.Repository, used by
// tests and the default dev wiring. Content is supplied at construction.
type Repo struct {
	mu            sync.RWMutex
	announcements map[contentrepo.AnnouncementID]contentrepo.Announcement
	sermons       map[contentrepo.SermonID]contentrepo.Sermon
}

func NewRepo(announcements []contentrepo.Announcement, sermons []contentrepo.Sermon) *Repo {
	r := &Repo{
		announcements: make(map[contentrepo.AnnouncementID]contentrepo.Announcement, len(announcements)),
		sermons:       make(map[contentrepo.SermonID]contentrepo.Sermon, len(sermons)),
	}
	for _, a := range announcements {
		r.announcements[a.ID] = a
	}
	for _, s := range sermons {
		r.sermons[s.ID] = s
	}
	return r
}

func (r *Repo) ListAnnouncements(ctx context.Context, limit int) ([]contentrepo.Announcement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contentrepo.Announcement, 0, len(r.announcements))
	for _, a := range r.announcements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) GetAnnouncement(ctx context.Context, id contentrepo.AnnouncementID) (contentrepo.Announcement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.announcements[id]
	if !ok {
		return contentrepo.Announcement{}, contentrepo.ErrNotFound
	}
	return a, nil
}

func (r *Repo) ListSermons(ctx context.Context, limit int) ([]contentrepo.Sermon, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contentrepo.Sermon, 0, len(r.sermons))
	for _, s := range r.sermons {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SermonDate != out[j].SermonDate {
			return out[i].SermonDate > out[j].SermonDate
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) GetSermon(ctx context.Context, id contentrepo.SermonID) (contentrepo.Sermon, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sermons[id]
	if !ok {
		return contentrepo.Sermon{}, contentrepo.ErrNotFound
	}
	return s, nil
}
