package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-json-experiment/json"
	bolt "go.etcd.io/bbolt"

	"src.autoui.dev/pkg/vals"
)

// ErrNoSnapshot is returned by (*Store).Snapshot when there is no snapshot
// for a source.
var ErrNoSnapshot = errors.New("no snapshot")

func init() {
	initDB["initialize snapshot table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshot))
		return err
	}
}

// Snapshot is the field tables of all widgets of a program.
type Snapshot = map[string]map[string]any

// A value with its kind kept, so that ints stay ints.
type value struct {
	Kind  string  `json:"kind"`
	Int   int     `json:"int,omitzero"`
	Float float64 `json:"float,omitzero"`
	Str   string  `json:"str,omitzero"`
	Bool  bool    `json:"bool,omitzero"`
	List  []value `json:"list,omitzero"`
}

func encodeValue(v any) (value, error) {
	switch v := v.(type) {
	case nil:
		return value{Kind: "nil"}, nil
	case int:
		return value{Kind: "int", Int: v}, nil
	case float64:
		return value{Kind: "float", Float: v}, nil
	case string:
		return value{Kind: "str", Str: v}, nil
	case bool:
		return value{Kind: "bool", Bool: v}, nil
	case vals.List:
		list := make([]value, len(v))
		for i, elem := range v {
			ev, err := encodeValue(elem)
			if err != nil {
				return value{}, err
			}
			list[i] = ev
		}
		return value{Kind: "list", List: list}, nil
	}
	return value{}, fmt.Errorf("cannot persist %s", vals.Kind(v))
}

func decodeValue(v value) (any, error) {
	switch v.Kind {
	case "nil":
		return nil, nil
	case "int":
		return v.Int, nil
	case "float":
		return v.Float, nil
	case "str":
		return v.Str, nil
	case "bool":
		return v.Bool, nil
	case "list":
		list := make(vals.List, len(v.List))
		for i, elem := range v.List {
			dv, err := decodeValue(elem)
			if err != nil {
				return nil, err
			}
			list[i] = dv
		}
		return list, nil
	}
	return nil, fmt.Errorf("unknown value kind %q", v.Kind)
}

// Fields whose values cannot be persisted are left out.
func encodeSnapshot(snap Snapshot) ([]byte, error) {
	enc := make(map[string]map[string]value, len(snap))
	for widget, fields := range snap {
		m := make(map[string]value, len(fields))
		for name, v := range fields {
			ev, err := encodeValue(v)
			if err != nil {
				logger.Printf("not persisting %s.%s: %v", widget, name, err)
				continue
			}
			m[name] = ev
		}
		enc[widget] = m
	}
	return json.Marshal(enc, json.Deterministic(true))
}

func decodeSnapshot(data []byte) (Snapshot, error) {
	var enc map[string]map[string]value
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, err
	}
	snap := make(Snapshot, len(enc))
	for widget, fields := range enc {
		m := make(map[string]any, len(fields))
		for name, ev := range fields {
			v, err := decodeValue(ev)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", widget, name, err)
			}
			m[name] = v
		}
		snap[widget] = m
	}
	return snap, nil
}

// SaveSnapshot saves the snapshot of a source, replacing any previous one.
func (s *Store) SaveSnapshot(source string, snap Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshot)).Put([]byte(source), data)
	})
}

// Snapshot returns the snapshot of a source.
func (s *Store) Snapshot(source string) (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketSnapshot)).Get([]byte(source))
		if data == nil {
			return ErrNoSnapshot
		}
		var err error
		snap, err = decodeSnapshot(data)
		return err
	})
	return snap, err
}

// DeleteSnapshot deletes the snapshot of a source.
func (s *Store) DeleteSnapshot(source string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshot)).Delete([]byte(source))
	})
}

// Sources returns the sources that have snapshots, sorted.
func (s *Store) Sources() ([]string, error) {
	var sources []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshot)).ForEach(func(k, _ []byte) error {
			sources = append(sources, string(k))
			return nil
		})
	})
	sort.Strings(sources)
	return sources, err
}
