package roster

import "errors"

var (
	// ErrNotFound indicates the targeted member (or sub-record) does not exist.
	// Targeted mutations return it instead of touching the collection.
	ErrNotFound = errors.New("member not found")

	// ErrNameRequired indicates a create or update would leave a member with
	// an empty name.
	ErrNameRequired = errors.New("member name is required")

	// ErrInvalidStatus indicates a status value outside active/inactive/removed.
	ErrInvalidStatus = errors.New("invalid member status")
)
