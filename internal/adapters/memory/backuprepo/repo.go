package backuprepo

import (
	"context"
	"sync"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/backuprepo"
)

// Repo is an in-memory implementation of backuprepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.Mutex
	latest *backuprepo.Payload
}

func NewRepo() *Repo {
	return &Repo{}
}

func (r *Repo) Latest(ctx context.Context) (backuprepo.Payload, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest == nil {
		return backuprepo.Payload{}, backuprepo.ErrNotFound
	}
	return clonePayload(*r.latest), nil
}

func (r *Repo) Save(ctx context.Context, p backuprepo.Payload) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := clonePayload(p)
	r.latest = &cp
	return nil
}

func clonePayload(p backuprepo.Payload) backuprepo.Payload {
	out := p
	if p.Members != nil {
		out.Members = make([]domain.Member, 0, len(p.Members))
		for _, m := range p.Members {
			out.Members = append(out.Members, m.Clone())
		}
	}
	return out
}
