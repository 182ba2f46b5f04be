// Package roster owns the authoritative in-memory member collection. Every
// mutation goes through the Store: it produces a fresh collection slice
// (copy-on-write), persists the new snapshot, and notifies subscribers. The
// slice handed out by GetAll is never mutated in place, so holders of an old
// reference keep a consistent view and slice identity doubles as a cheap
// "has the data changed" check for derived structures like the search index.
package roster

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
	clockport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/clock"
	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/snapshotstore"
)

type listenerEntry struct {
	id int
	fn func()
}

// Store is the member collection owner. Construct with New; the zero value
// is not usable.
type Store struct {
	snapshots snapshotstore.Store
	clk       clockport.Clock
	log       *slog.Logger

	newMemberID func() domain.MemberID
	newSubID    func() string

	mu             sync.Mutex
	members        []domain.Member
	listeners      []listenerEntry
	nextListenerID int
}

// New builds a Store backed by the given snapshot store. The persisted
// snapshot is loaded immediately; a missing, corrupt, or unmigratable
// snapshot falls back to the built-in sample set.
func New(snapshots snapshotstore.Store, clk clockport.Clock, log *slog.Logger) *Store {
	s := &Store{
		snapshots:   snapshots,
		clk:         clk,
		log:         log,
		newMemberID: func() domain.MemberID { return domain.MemberID(uuid.NewString()) },
		newSubID:    uuid.NewString,
	}
	s.members = s.load()
	return s
}

func (s *Store) load() []domain.Member {
	data, err := s.snapshots.Read()
	if err != nil {
		if err != snapshotstore.ErrNotFound {
			s.log.Warn("roster: snapshot read failed, using sample set", "err", err)
		}
		return SeedMembers()
	}
	members, err := decodeSnapshot(data)
	if err != nil {
		s.log.Warn("roster: snapshot unusable, using sample set", "err", err)
		return SeedMembers()
	}
	return members
}

// GetAll returns the current collection reference. Callers must treat it as
// immutable and re-fetch after any mutation (subscribers re-read on notify).
func (s *Store) GetAll() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members
}

// GetByID returns the member with the given id, or false.
func (s *Store) GetByID(id domain.MemberID) (domain.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.members, id); i >= 0 {
		return s.members[i], true
	}
	return domain.Member{}, false
}

// Subscribe registers a callback invoked after every successful mutation.
// The returned function removes the listener. Listeners run in registration
// order; a panicking listener is logged and does not block the others.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Add creates a member from form data. Name is required; everything else is
// optional. The new member is prepended so recent additions surface first.
func (s *Store) Add(form MemberFormData) (domain.Member, error) {
	name := domain.NormalizeHumanName(form.Name)
	if name == "" {
		return domain.Member{}, ErrNameRequired
	}
	status := form.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !validStatus(status) {
		return domain.Member{}, ErrInvalidStatus
	}

	s.mu.Lock()
	now := s.clk.Now()
	m := domain.Member{
		ID:               s.newMemberID(),
		Name:             name,
		Phone:            optString(form.Phone),
		Address:          optString(form.Address),
		DetailAddress:    optString(form.DetailAddress),
		BirthDate:        optString(form.BirthDate),
		Gender:           optString(form.Gender),
		Position:         optString(form.Position),
		Department:       optString(form.Department),
		District:         optString(form.District),
		FamilyHead:       optString(form.FamilyHead),
		Relationship:     optString(form.Relationship),
		BaptismDate:      optString(form.BaptismDate),
		BaptismType:      optString(form.BaptismType),
		BaptismChurch:    optString(form.BaptismChurch),
		RegistrationDate: optString(form.RegistrationDate),
		MemberJoinDate:   optString(form.MemberJoinDate),
		Notes:            optString(form.Notes),
		PhotoURL:         optString(form.PhotoURL),
		Status:           status,
		PrayerRequests:   []domain.PrayerRequest{},
		PastoralVisits:   []domain.PastoralVisit{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	next := make([]domain.Member, 0, len(s.members)+1)
	next = append(next, m)
	next = append(next, s.members...)
	listeners := s.commit(next)
	s.mu.Unlock()

	s.fanOut(listeners)
	return m, nil
}

// Update merges the patch onto the existing record: unspecified fields are
// preserved, null/empty overwrite. Returns ErrNotFound for an unknown id.
func (s *Store) Update(id domain.MemberID, patch MemberPatch) (domain.Member, error) {
	if patch.Name.IsSpecified() {
		if patch.Name.IsNull() || domain.NormalizeHumanName(patch.Name.Value()) == "" {
			return domain.Member{}, ErrNameRequired
		}
	}
	if patch.Status.IsSpecified() {
		if patch.Status.IsNull() || !validStatus(patch.Status.Value()) {
			return domain.Member{}, ErrInvalidStatus
		}
	}

	s.mu.Lock()
	i := indexOf(s.members, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Member{}, ErrNotFound
	}

	m := s.members[i].Clone()
	if patch.Name.IsSpecified() {
		m.Name = domain.NormalizeHumanName(patch.Name.Value())
	}
	if patch.Status.IsSpecified() {
		m.Status = patch.Status.Value()
	}
	applyField(&m.Phone, patch.Phone)
	applyField(&m.Address, patch.Address)
	applyField(&m.DetailAddress, patch.DetailAddress)
	applyField(&m.BirthDate, patch.BirthDate)
	applyField(&m.Gender, patch.Gender)
	applyField(&m.Position, patch.Position)
	applyField(&m.Department, patch.Department)
	applyField(&m.District, patch.District)
	applyField(&m.FamilyHead, patch.FamilyHead)
	applyField(&m.Relationship, patch.Relationship)
	applyField(&m.BaptismDate, patch.BaptismDate)
	applyField(&m.BaptismType, patch.BaptismType)
	applyField(&m.BaptismChurch, patch.BaptismChurch)
	applyField(&m.RegistrationDate, patch.RegistrationDate)
	applyField(&m.MemberJoinDate, patch.MemberJoinDate)
	applyField(&m.Notes, patch.Notes)
	applyField(&m.PhotoURL, patch.PhotoURL)
	m.UpdatedAt = s.clk.Now()

	listeners := s.commit(replaceAt(s.members, i, m))
	s.mu.Unlock()

	s.fanOut(listeners)
	return m, nil
}

// ToggleStatus flips active <-> inactive. A removed member is not affected:
// the call succeeds but changes nothing (reactivation requires an explicit
// Update setting the status).
func (s *Store) ToggleStatus(id domain.MemberID) (domain.Member, error) {
	s.mu.Lock()
	i := indexOf(s.members, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Member{}, ErrNotFound
	}
	if s.members[i].Status == domain.StatusRemoved {
		m := s.members[i]
		s.mu.Unlock()
		return m, nil
	}

	m := s.members[i].Clone()
	if m.Status == domain.StatusActive {
		m.Status = domain.StatusInactive
	} else {
		m.Status = domain.StatusActive
	}
	m.UpdatedAt = s.clk.Now()

	listeners := s.commit(replaceAt(s.members, i, m))
	s.mu.Unlock()

	s.fanOut(listeners)
	return m, nil
}

// Delete removes the member and all its sub-records. It reports whether a
// removal occurred; nothing is persisted or notified otherwise.
func (s *Store) Delete(id domain.MemberID) bool {
	s.mu.Lock()
	i := indexOf(s.members, id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	next := make([]domain.Member, 0, len(s.members)-1)
	next = append(next, s.members[:i]...)
	next = append(next, s.members[i+1:]...)
	listeners := s.commit(next)
	s.mu.Unlock()

	s.fanOut(listeners)
	return true
}

// AddPrayerRequest prepends a prayer request to the member.
func (s *Store) AddPrayerRequest(id domain.MemberID, content string) (domain.Member, error) {
	return s.mutateMember(id, func(m *domain.Member, now time.Time) error {
		pr := domain.PrayerRequest{
			ID:        domain.PrayerRequestID(s.newSubID()),
			Content:   content,
			CreatedAt: now,
		}
		m.PrayerRequests = append([]domain.PrayerRequest{pr}, m.PrayerRequests...)
		return nil
	})
}

// UpdatePrayerRequest replaces the content of an existing prayer request.
func (s *Store) UpdatePrayerRequest(id domain.MemberID, requestID domain.PrayerRequestID, content string) (domain.Member, error) {
	return s.mutateMember(id, func(m *domain.Member, now time.Time) error {
		for i := range m.PrayerRequests {
			if m.PrayerRequests[i].ID == requestID {
				m.PrayerRequests[i].Content = content
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeletePrayerRequest removes a prayer request from the member.
func (s *Store) DeletePrayerRequest(id domain.MemberID, requestID domain.PrayerRequestID) (domain.Member, error) {
	return s.mutateMember(id, func(m *domain.Member, now time.Time) error {
		for i := range m.PrayerRequests {
			if m.PrayerRequests[i].ID == requestID {
				m.PrayerRequests = append(m.PrayerRequests[:i:i], m.PrayerRequests[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddPastoralVisit prepends a pastoral visit. VisitedAt is the caller's visit
// date, distinct from the stamped CreatedAt.
func (s *Store) AddPastoralVisit(id domain.MemberID, visitedAt, content string) (domain.Member, error) {
	return s.mutateMember(id, func(m *domain.Member, now time.Time) error {
		v := domain.PastoralVisit{
			ID:        domain.PastoralVisitID(s.newSubID()),
			VisitedAt: visitedAt,
			Content:   content,
			CreatedAt: now,
		}
		m.PastoralVisits = append([]domain.PastoralVisit{v}, m.PastoralVisits...)
		return nil
	})
}

// UpdatePastoralVisit replaces the date and content of an existing visit.
func (s *Store) UpdatePastoralVisit(id domain.MemberID, visitID domain.PastoralVisitID, visitedAt, content string) (domain.Member, error) {
	return s.mutateMember(id, func(m *domain.Member, now time.Time) error {
		for i := range m.PastoralVisits {
			if m.PastoralVisits[i].ID == visitID {
				m.PastoralVisits[i].VisitedAt = visitedAt
				m.PastoralVisits[i].Content = content
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeletePastoralVisit removes a pastoral visit from the member.
func (s *Store) DeletePastoralVisit(id domain.MemberID, visitID domain.PastoralVisitID) (domain.Member, error) {
	return s.mutateMember(id, func(m *domain.Member, now time.Time) error {
		for i := range m.PastoralVisits {
			if m.PastoralVisits[i].ID == visitID {
				m.PastoralVisits = append(m.PastoralVisits[:i:i], m.PastoralVisits[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// BulkAddPrayerRequests merges imported prayers into their target members in
// one pass with one notification. Per member, a prayer whose trimmed content
// exactly matches an existing request (case-sensitive) is skipped; entries
// without a date are stamped with the current time. Each touched member's
// request list is re-sorted newest first.
func (s *Store) BulkAddPrayerRequests(entries []BulkPrayerEntry) BulkAddResult {
	s.mu.Lock()
	now := s.clk.Now()

	next := s.members
	changed := false
	total := 0

	for _, entry := range entries {
		i := indexOf(next, entry.MemberID)
		if i < 0 {
			continue
		}

		existing := make(map[string]struct{}, len(next[i].PrayerRequests))
		for _, pr := range next[i].PrayerRequests {
			existing[strings.TrimSpace(pr.Content)] = struct{}{}
		}

		var added []domain.PrayerRequest
		for _, p := range entry.Prayers {
			key := strings.TrimSpace(p.Content)
			if key == "" {
				continue
			}
			if _, dup := existing[key]; dup {
				continue
			}
			existing[key] = struct{}{}

			createdAt := p.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			added = append(added, domain.PrayerRequest{
				ID:        domain.PrayerRequestID(s.newSubID()),
				Content:   p.Content,
				CreatedAt: createdAt,
			})
		}
		if len(added) == 0 {
			continue
		}

		m := next[i].Clone()
		m.PrayerRequests = append(m.PrayerRequests, added...)
		sort.SliceStable(m.PrayerRequests, func(a, b int) bool {
			return m.PrayerRequests[a].CreatedAt.After(m.PrayerRequests[b].CreatedAt)
		})
		m.UpdatedAt = now

		next = replaceAt(next, i, m)
		changed = true
		total += len(added)
	}

	if !changed {
		s.mu.Unlock()
		return BulkAddResult{TotalAdded: 0}
	}

	listeners := s.commit(next)
	s.mu.Unlock()

	s.fanOut(listeners)
	return BulkAddResult{TotalAdded: total}
}

// ReplaceAll swaps in a wholesale new collection (restore from backup). The
// restore path has already validated the records; the store only guarantees
// the sub-record lists are non-nil.
func (s *Store) ReplaceAll(members []domain.Member) {
	next := make([]domain.Member, 0, len(members))
	for _, m := range members {
		cp := m.Clone()
		if cp.PrayerRequests == nil {
			cp.PrayerRequests = []domain.PrayerRequest{}
		}
		if cp.PastoralVisits == nil {
			cp.PastoralVisits = []domain.PastoralVisit{}
		}
		next = append(next, cp)
	}

	s.mu.Lock()
	listeners := s.commit(next)
	s.mu.Unlock()

	s.fanOut(listeners)
}

// ResetToSeed replaces the collection with the built-in sample set.
func (s *Store) ResetToSeed() {
	s.mu.Lock()
	listeners := s.commit(SeedMembers())
	s.mu.Unlock()

	s.fanOut(listeners)
}

// commit installs next as the current collection and persists it. It must be
// called with s.mu held and returns the listeners to invoke after unlock.
// Persistence failures are logged and swallowed: the in-memory state stays
// authoritative for the session, the change just may not survive a restart.
func (s *Store) commit(next []domain.Member) []func() {
	s.members = next

	data, err := encodeSnapshot(next, s.clk.Now())
	if err != nil {
		s.log.Warn("roster: snapshot encode failed", "err", err)
	} else if err := s.snapshots.Write(data); err != nil {
		s.log.Warn("roster: snapshot write failed", "err", err)
	}

	out := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l.fn)
	}
	return out
}

func (s *Store) fanOut(listeners []func()) {
	for _, fn := range listeners {
		s.invoke(fn)
	}
}

func (s *Store) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("roster: subscriber panicked", "panic", r)
		}
	}()
	fn()
}

// mutateMember clones the target member, applies edit, stamps UpdatedAt, and
// commits. An edit returning an error leaves the collection untouched.
func (s *Store) mutateMember(id domain.MemberID, edit func(m *domain.Member, now time.Time) error) (domain.Member, error) {
	s.mu.Lock()
	i := indexOf(s.members, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Member{}, ErrNotFound
	}

	now := s.clk.Now()
	m := s.members[i].Clone()
	if err := edit(&m, now); err != nil {
		s.mu.Unlock()
		return domain.Member{}, err
	}
	m.UpdatedAt = now

	listeners := s.commit(replaceAt(s.members, i, m))
	s.mu.Unlock()

	s.fanOut(listeners)
	return m, nil
}

func indexOf(members []domain.Member, id domain.MemberID) int {
	for i := range members {
		if members[i].ID == id {
			return i
		}
	}
	return -1
}

func replaceAt(members []domain.Member, i int, m domain.Member) []domain.Member {
	next := make([]domain.Member, len(members))
	copy(next, members)
	next[i] = m
	return next
}

func applyField(dst **string, o Optional[string]) {
	if !o.IsSpecified() {
		return
	}
	if o.IsNull() || o.Value() == "" {
		*dst = nil
		return
	}
	v := o.Value()
	*dst = &v
}

func optString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func validStatus(st domain.MemberStatus) bool {
	switch st {
	case domain.StatusActive, domain.StatusInactive, domain.StatusRemoved:
		return true
	}
	return false
}
