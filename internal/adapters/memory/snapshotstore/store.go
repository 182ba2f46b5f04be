package snapshotstore

import (
	"sync"

	"github.com/browncherrycoffee/gwanak-church/internal/ports/out/snapshotstore"
)

// Store is an in-memory implementation of snapshotstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	data []byte

	// FailWrites makes Write return an error; tests use it to exercise the
	// swallowed-write-failure path.
	FailWrites error
}

func NewStore() *Store {
	return &Store{}
}

// NewSeeded returns a store whose first Read returns data.
func NewSeeded(data []byte) *Store {
	return &Store{data: append([]byte(nil), data...)}
}

func (s *Store) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, snapshotstore.ErrNotFound
	}
	return append([]byte(nil), s.data...), nil
}

func (s *Store) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data = append([]byte(nil), data...)
	return nil
}
