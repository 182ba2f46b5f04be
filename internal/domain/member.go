package domain

import "time"

// MemberStatus is the tri-state roster status of a member.
//
// "removed" is a soft delete: the record is excluded from active rosters and
// statistics but kept for history. It is distinct from hard deletion.
type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
	StatusRemoved  MemberStatus = "removed"
)

// PrayerRequest is a dated free-text prayer entry attached to a member.
type PrayerRequest struct {
	ID        PrayerRequestID `json:"id"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PastoralVisit records a pastoral visit to a member. VisitedAt is the
// caller-supplied visit date (may be partial, e.g. "2025-03"), distinct from
// the CreatedAt audit timestamp.
type PastoralVisit struct {
	ID        PastoralVisitID `json:"id"`
	VisitedAt string          `json:"visitedAt"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Member is one person's church record. Name is the only required
// descriptive field; nil means unset for the optional ones.
//
// FamilyHead is a deliberate denormalization: household linkage is by exact,
// case-sensitive name equality with another member's Name, not by MemberID.
// This matches the shape of existing backups and imports.
type Member struct {
	ID MemberID `json:"id"`

	Name          string  `json:"name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	DetailAddress *string `json:"detailAddress"`
	// BirthDate is an ISO date, possibly partial ("1954" or "1954-07").
	BirthDate        *string `json:"birthDate"`
	Gender           *string `json:"gender"`
	Position         *string `json:"position"`
	Department       *string `json:"department"`
	District         *string `json:"district"`
	FamilyHead       *string `json:"familyHead"`
	Relationship     *string `json:"relationship"`
	BaptismDate      *string `json:"baptismDate"`
	BaptismType      *string `json:"baptismType"`
	BaptismChurch    *string `json:"baptismChurch"`
	RegistrationDate *string `json:"registrationDate"`
	MemberJoinDate   *string `json:"memberJoinDate"`
	Notes            *string `json:"notes"`
	PhotoURL         *string `json:"photoUrl"`

	Status MemberStatus `json:"memberStatus"`

	// Sub-collections are ordered by recency, newest first.
	PrayerRequests []PrayerRequest `json:"prayerRequests"`
	PastoralVisits []PastoralVisit `json:"pastoralVisits"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of m. Mutation paths clone before editing so
// previously handed-out snapshots stay immutable.
func (m Member) Clone() Member {
	out := m
	out.Phone = cloneStringPtr(m.Phone)
	out.Address = cloneStringPtr(m.Address)
	out.DetailAddress = cloneStringPtr(m.DetailAddress)
	out.BirthDate = cloneStringPtr(m.BirthDate)
	out.Gender = cloneStringPtr(m.Gender)
	out.Position = cloneStringPtr(m.Position)
	out.Department = cloneStringPtr(m.Department)
	out.District = cloneStringPtr(m.District)
	out.FamilyHead = cloneStringPtr(m.FamilyHead)
	out.Relationship = cloneStringPtr(m.Relationship)
	out.BaptismDate = cloneStringPtr(m.BaptismDate)
	out.BaptismType = cloneStringPtr(m.BaptismType)
	out.BaptismChurch = cloneStringPtr(m.BaptismChurch)
	out.RegistrationDate = cloneStringPtr(m.RegistrationDate)
	out.MemberJoinDate = cloneStringPtr(m.MemberJoinDate)
	out.Notes = cloneStringPtr(m.Notes)
	out.PhotoURL = cloneStringPtr(m.PhotoURL)

	if m.PrayerRequests != nil {
		out.PrayerRequests = make([]PrayerRequest, len(m.PrayerRequests))
		copy(out.PrayerRequests, m.PrayerRequests)
	}
	if m.PastoralVisits != nil {
		out.PastoralVisits = make([]PastoralVisit, len(m.PastoralVisits))
		copy(out.PastoralVisits, m.PastoralVisits)
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
