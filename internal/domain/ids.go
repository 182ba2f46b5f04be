package domain

// MemberID is an internal identifier for a member record. It is opaque,
// assigned at creation, and never reused.
type MemberID string

// PrayerRequestID identifies a prayer request within its parent member.
// Uniqueness is only guaranteed within that member.
type PrayerRequestID string

// PastoralVisitID identifies a pastoral visit within its parent member.
type PastoralVisitID string
