package snapshotstore

import "errors"

// ErrNotFound indicates no snapshot has been persisted yet.
var ErrNotFound = errors.New("snapshot not found")
