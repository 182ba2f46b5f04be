package roster

import (
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// MemberFormData is the create shape: plain strings where empty means unset.
// It matches what the form layer and the CSV importer both produce.
type MemberFormData struct {
	Name             string
	Phone            string
	Address          string
	DetailAddress    string
	BirthDate        string
	Gender           string
	Position         string
	Department       string
	District         string
	FamilyHead       string
	Relationship     string
	BaptismDate      string
	BaptismType      string
	BaptismChurch    string
	RegistrationDate string
	MemberJoinDate   string
	Notes            string
	PhotoURL         string

	// Status defaults to active when empty.
	Status domain.MemberStatus
}

// MemberPatch is the partial-update shape: unspecified fields are preserved,
// null and empty-string both overwrite (clearing the field). Name and Status
// cannot be cleared.
type MemberPatch struct {
	Name             Optional[string]
	Phone            Optional[string]
	Address          Optional[string]
	DetailAddress    Optional[string]
	BirthDate        Optional[string]
	Gender           Optional[string]
	Position         Optional[string]
	Department       Optional[string]
	District         Optional[string]
	FamilyHead       Optional[string]
	Relationship     Optional[string]
	BaptismDate      Optional[string]
	BaptismType      Optional[string]
	BaptismChurch    Optional[string]
	RegistrationDate Optional[string]
	MemberJoinDate   Optional[string]
	Notes            Optional[string]
	PhotoURL         Optional[string]
	Status           Optional[domain.MemberStatus]
}

// NewPrayer is one imported prayer entry. A zero CreatedAt means the source
// had no usable date; the store stamps it with the current time.
type NewPrayer struct {
	Content   string
	CreatedAt time.Time
}

// BulkPrayerEntry targets one member with a batch of prayers.
type BulkPrayerEntry struct {
	MemberID domain.MemberID
	Prayers  []NewPrayer
}

// BulkAddResult reports how many prayers were actually appended after
// deduplication.
type BulkAddResult struct {
	TotalAdded int
}
