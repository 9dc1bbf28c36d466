package pondstore

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"github.com/arenapool/pond"
)

// SnapshotStore persists named pool snapshots to an embedded badger.DB,
// integrity-checked with an xxhash checksum (both teacher dependencies;
// see DESIGN.md). It holds the pool state that every `pondctl` subcommand
// loads at start (and, for mutating commands, saves back).
type SnapshotStore struct {
	db *badger.DB
}

// OpenSnapshotStore opens (creating if necessary) a badger database rooted
// at dir to hold pool snapshots.
func OpenSnapshotStore(dir string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(dir)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("pondstore: open: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close releases the underlying badger.DB.
func (s *SnapshotStore) Close() error { return s.db.Close() }

func snapshotKey(name string) []byte { return []byte("pond:snapshot:" + name) }

// frame the serialized payload with an 8-byte little-endian xxhash
// checksum so Load can detect corruption before handing the payload to
// Unmarshal.
func frame(payload []byte) []byte {
	sum := xxhash.Sum64(payload)
	out := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint64(out, sum)
	copy(out[8:], payload)
	return out
}

func unframe(raw []byte) ([]byte, error) {
	if len(raw) < 8 {
		return nil, fmt.Errorf("pondstore: snapshot too short to carry a checksum")
	}
	want := binary.LittleEndian.Uint64(raw[:8])
	payload := raw[8:]
	if got := xxhash.Sum64(payload); got != want {
		return nil, fmt.Errorf("pondstore: checksum mismatch: stored %x, computed %x", want, got)
	}
	return payload, nil
}

// Save serializes pool (via Marshal) and stores it under name, replacing
// any prior snapshot with the same name.
func Save[T any](s *SnapshotStore, name string, pool *pond.Pool[T]) error {
	payload, err := Marshal(pool)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(name), frame(payload))
	})
}

// Load reads and verifies the named snapshot and decodes it into a fresh
// pool (via Unmarshal).
func Load[T any](s *SnapshotStore, name string) (*pond.Pool[T], error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = bytes.Clone(val)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("pondstore: load %q: %w", name, err)
	}
	payload, err := unframe(raw)
	if err != nil {
		return nil, err
	}
	return Unmarshal[T](payload)
}

// Delete removes the named snapshot, if present.
func (s *SnapshotStore) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey(name))
	})
}
