package store

import (
	"time"

	"github.com/go-json-experiment/json"
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["initialize session table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSession))
		return err
	}
}

// Session records a run of the development server.
type Session struct {
	Seq     int       `json:"-"`
	ID      string    `json:"id"`
	Source  string    `json:"source"`
	Started time.Time `json:"started"`
}

// AddSession records a session, returning its sequence number.
func (s *Store) AddSession(sess Session) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSession))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	return int(seq), err
}

// Sessions returns all sessions, oldest first.
func (s *Store) Sessions() ([]Session, error) {
	var sessions []Session
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSession)).ForEach(func(k, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil {
				return err
			}
			sess.Seq = int(unmarshalSeq(k))
			sessions = append(sessions, sess)
			return nil
		})
	})
	return sessions, err
}
