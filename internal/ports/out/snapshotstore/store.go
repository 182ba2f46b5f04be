// Package snapshotstore defines the durable local persistence boundary for
// the roster: a single opaque document, read at startup and rewritten in full
// after every mutation. It is scoped to the local device, mirroring the
// browser-profile storage the data originally lived in.
package snapshotstore

// Store reads and writes the serialized roster snapshot.
//
// Write failures are non-fatal to callers: the in-memory state stays
// authoritative for the session and the caller decides how to surface the
// risk. Read returns ErrNotFound when no snapshot has ever been written.
type Store interface {
	Read() ([]byte, error)
	Write(data []byte) error
}
