// Package search answers ranked fuzzy queries over a member snapshot. The
// built index is cached against the snapshot's slice identity: the store
// allocates a new collection slice on every mutation, so per-keystroke
// queries between mutations reuse the index instead of rebuilding it.
package search

import (
	"sort"
	"strings"
	"sync"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// fieldWeights is the fixed searchable field set. Higher weight means a hit
// in that field ranks the member higher. The digit-only phone variant lets
// "01012345678" find a member stored as "010-1234-5678".
var fieldWeights = []struct {
	weight  float64
	extract func(m *domain.Member) string
}{
	{3.0, func(m *domain.Member) string { return m.Name }},
	{2.0, func(m *domain.Member) string { return deref(m.Phone) }},
	{2.0, func(m *domain.Member) string { return domain.PhoneDigits(deref(m.Phone)) }},
	{1.5, func(m *domain.Member) string { return deref(m.Position) }},
	{1.5, func(m *domain.Member) string { return deref(m.FamilyHead) }},
	{1.0, func(m *domain.Member) string { return deref(m.Department) }},
	{1.0, func(m *domain.Member) string { return deref(m.Address) }},
	{1.0, func(m *domain.Member) string { return deref(m.DetailAddress) }},
	{1.0, func(m *domain.Member) string { return deref(m.District) }},
	{0.5, func(m *domain.Member) string { return deref(m.Notes) }},
}

type indexedField struct {
	text   string
	weight float64
}

type indexedMember struct {
	pos    int
	fields []indexedField
}

// Searcher caches one built index keyed by snapshot identity.
// It is safe for concurrent use.
type Searcher struct {
	mu      sync.Mutex
	last    []domain.Member
	indexed []indexedMember
}

func NewSearcher() *Searcher {
	return &Searcher{}
}

// Search returns the members matching query, ranked by descending relevance
// with ties kept in collection order. An empty or whitespace-only query is a
// pass-through: the snapshot is returned unchanged and unranked.
func (s *Searcher) Search(members []domain.Member, query string) []domain.Member {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return members
	}

	indexed := s.indexFor(members)

	type hit struct {
		pos       int
		relevance float64
	}
	hits := make([]hit, 0, len(indexed))
	for _, im := range indexed {
		best := 0.0
		matched := false
		for _, f := range im.fields {
			score := fieldScore(f.text, q)
			if score > matchThreshold {
				continue
			}
			matched = true
			if r := f.weight * (1 - score); r > best {
				best = r
			}
		}
		if matched {
			hits = append(hits, hit{pos: im.pos, relevance: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].relevance > hits[j].relevance
	})

	out := make([]domain.Member, 0, len(hits))
	for _, h := range hits {
		out = append(out, members[h.pos])
	}
	return out
}

// indexFor returns the cached index when members is the same snapshot the
// index was built from, rebuilding otherwise.
func (s *Searcher) indexFor(members []domain.Member) []indexedMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sameSnapshot(s.last, members) {
		return s.indexed
	}

	indexed := make([]indexedMember, 0, len(members))
	for i := range members {
		m := &members[i]
		fields := make([]indexedField, 0, len(fieldWeights))
		for _, fw := range fieldWeights {
			text := strings.ToLower(fw.extract(m))
			if text == "" {
				continue
			}
			fields = append(fields, indexedField{text: text, weight: fw.weight})
		}
		indexed = append(indexed, indexedMember{pos: i, fields: fields})
	}

	s.last = members
	s.indexed = indexed
	return indexed
}

// sameSnapshot reports whether two slices are the same collection snapshot.
// The store never mutates a published slice, so equal length plus a shared
// backing array means identical contents.
func sameSnapshot(a, b []domain.Member) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return a != nil && b != nil
	}
	return &a[0] == &b[0]
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
