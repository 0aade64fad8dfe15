// Package store persists widget state snapshots and development sessions in
// a bbolt database.
package store

import (
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.autoui.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketSnapshot = "snapshot"
	bucketSession  = "session"
)

// Functions that initialize buckets, run when a database is opened.
var initDB = map[string]func(*bolt.Tx) error{}

// Store is a state database. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a database.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				logger.Printf("failed to %s: %v", name, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Printf("opened %s", path)
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
