// Package pondstore (de)serializes a pond.Pool to and from its external
// form (spec.md §6.2: a linear sequence of length capacity, each element
// either present-with-value or absent) and, optionally, persists named
// snapshots to an embedded key-value store.
//
// The JSON codec is grounded on
// alex60217101990-opa/v1/util/json.go's UnmarshalJSON/NewJSONDecoder
// pattern (a json.Number-preserving decoder wrapping encoding/json).
package pondstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/arenapool/pond"
)

// newJSONDecoder mirrors util.NewJSONDecoder: a decoder that preserves
// json.Number instead of decoding all numbers to float64.
func newJSONDecoder(r io.Reader) *json.Decoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return d
}

// Marshal encodes pool's external form: a JSON array of length
// pool.Capacity(), with `null` at every free index and the value at every
// occupied one. An empty pool marshals to "[]".
func Marshal[T any](pool *pond.Pool[T]) ([]byte, error) {
	seq := make([]*T, pool.Capacity())
	for i := range seq {
		if v, ok := pool.Get(i); ok {
			vv := v
			seq[i] = &vv
		}
	}
	return json.Marshal(seq)
}

// Unmarshal decodes data produced by Marshal into a new pool of capacity
// len(seq), with exactly the encoded cells populated and the occupancy
// index fully coherent.
func Unmarshal[T any](data []byte) (*pond.Pool[T], error) {
	decoder := newJSONDecoder(bytes.NewReader(data))
	var seq []*T
	if err := decoder.Decode(&seq); err != nil {
		return nil, fmt.Errorf("pondstore: decode: %w", err)
	}
	pool := pond.New[T]()
	pool.Resize(len(seq))
	for i, v := range seq {
		if v != nil {
			pool.Write(i, *v)
		}
	}
	return pool, nil
}

// MarshalYAML encodes pool's external form as YAML, via
// sigs.k8s.io/yaml's JSON-bridge marshaler (backs `pondctl dump --format
// yaml`).
func MarshalYAML[T any](pool *pond.Pool[T]) ([]byte, error) {
	js, err := Marshal(pool)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(js)
}
