package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arenapool/pond"
	"github.com/arenapool/pond/pondstore"
)

func loadPool(store *pondstore.SnapshotStore) *pond.Pool[string] {
	p, err := pondstore.Load[string](store, snapshotName)
	if err != nil {
		log.Debugf("no existing snapshot (%v), starting an empty pool", err)
		return pond.New[string]()
	}
	return p
}

// withPool opens the snapshot store, loads the current pool (or starts an
// empty one if this is the first run), lets fn mutate it, then saves the
// result back before closing the store.
func withPool(fn func(p *pond.Pool[string]) error) error {
	store, err := pondstore.OpenSnapshotStore(storePath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	p := loadPool(store)
	if err := fn(p); err != nil {
		return err
	}
	return pondstore.Save(store, snapshotName, p)
}

// withReadOnlyPool is like withPool but never writes the snapshot back;
// used by commands that only inspect state (get, dump).
func withReadOnlyPool(fn func(p *pond.Pool[string]) error) error {
	store, err := pondstore.OpenSnapshotStore(storePath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return fn(loadPool(store))
}

// taggedValue prefixes v with a short uuid so seeded demo data is visibly
// distinguishable from hand-written values.
func taggedValue(v string) string {
	return uuid.New().String()[:8] + ":" + v
}
