package pondstore

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arenapool/pond"
)

func TestSnapshotSaveLoadRoundTrip(t *testing.T) {
	store, err := OpenSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSnapshotStore() = %v, want nil", err)
	}
	defer store.Close()

	p := pond.New[int]()
	p.Allocate(1)
	p.Allocate(2)
	p.Release(0)

	if err := Save(store, "checkpoint", p); err != nil {
		t.Fatalf("Save() = %v, want nil", err)
	}

	got, err := Load[int](store, "checkpoint")
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if v, ok := got.Get(1); !ok || v != 2 {
		t.Fatalf("Get(1) = (%d, %v), want (2, true)", v, ok)
	}
	if _, ok := got.Get(0); ok {
		t.Fatalf("Get(0) should be free after Load")
	}

	if diff := externalFormDiff(t, p, got); diff != "" {
		t.Fatalf("external form changed across Save/Load round trip (-want +got):\n%s", diff)
	}
}

// externalFormDiff structurally compares two pools' external forms
// (spec.md §6.2), used to assert a snapshot round trip is lossless.
func externalFormDiff(t *testing.T, want, got *pond.Pool[int]) string {
	t.Helper()
	wantData, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal(want) = %v, want nil", err)
	}
	gotData, err := Marshal(got)
	if err != nil {
		t.Fatalf("Marshal(got) = %v, want nil", err)
	}
	var wantSeq, gotSeq []*int
	if err := json.Unmarshal(wantData, &wantSeq); err != nil {
		t.Fatalf("json.Unmarshal(wantData) = %v, want nil", err)
	}
	if err := json.Unmarshal(gotData, &gotSeq); err != nil {
		t.Fatalf("json.Unmarshal(gotData) = %v, want nil", err)
	}
	return cmp.Diff(wantSeq, gotSeq)
}

func TestSnapshotLoadMissingName(t *testing.T) {
	store, err := OpenSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSnapshotStore() = %v, want nil", err)
	}
	defer store.Close()

	if _, err := Load[int](store, "nope"); err == nil {
		t.Fatalf("Load of a missing snapshot should return an error")
	}
}

func TestSnapshotDelete(t *testing.T) {
	store, err := OpenSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSnapshotStore() = %v, want nil", err)
	}
	defer store.Close()

	p := pond.New[int]()
	p.Allocate(1)
	if err := Save(store, "gone", p); err != nil {
		t.Fatalf("Save() = %v, want nil", err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete() = %v, want nil", err)
	}
	if _, err := Load[int](store, "gone"); err == nil {
		t.Fatalf("Load after Delete should return an error")
	}
}
