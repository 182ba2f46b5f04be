package snapshotstore

import (
	"testing"

	"github.com/browncherrycoffee/gwanak-church/internal/adapters/contracttest"
	snapshotstoreport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/snapshotstore"
)

func TestContract_SnapshotStore(t *testing.T) {
	contracttest.RunSnapshotStore(t, func(t *testing.T) (snapshotstoreport.Store, func()) {
		t.Helper()
		return NewStore(), nil
	})
}
