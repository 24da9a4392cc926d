package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/model"
)

var bucketSuggestions = []byte("suggestions")

// BoltStore implements Store on a bbolt file database, one JSON-encoded
// record per key. This is the default backend: no external services needed.
type BoltStore struct {
	db *bolt.DB

	// NewID generates suggestion ids. Overridable for tests.
	NewID func() string
}

func NewBolt(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageErr("open", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, storageErr("open", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSuggestions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, storageErr("open", err)
	}
	return &BoltStore{db: db, NewID: defaultNewID}, nil
}

func (s *BoltStore) List(_ context.Context) ([]model.Suggestion, error) {
	out := []model.Suggestion{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSuggestions).ForEach(func(_, v []byte) error {
			var sg model.Suggestion
			if err := json.Unmarshal(v, &sg); err != nil {
				return err
			}
			out = append(out, sg)
			return nil
		})
	})
	if err != nil {
		return nil, storageErr("list", err)
	}
	return out, nil
}

func (s *BoltStore) Add(_ context.Context, payload model.NewSuggestion) error {
	if err := checkPayload(payload); err != nil {
		return err
	}
	rec := newRecord(payload, s.NewID())
	data, err := json.Marshal(rec)
	if err != nil {
		return storageErr("add", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSuggestions).Put([]byte(rec.ID), data)
	})
	if err != nil {
		return storageErr("add", err)
	}
	return nil
}

func (s *BoltStore) MarkWatched(_ context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSuggestions)
		v := b.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		var sg model.Suggestion
		if err := json.Unmarshal(v, &sg); err != nil {
			return err
		}
		sg.Watched = true
		data, err := json.Marshal(sg)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err == ErrNotFound {
		return err
	}
	if err != nil {
		return storageErr("mark_watched", err)
	}
	return nil
}

func (s *BoltStore) Remove(_ context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		// Delete on a missing key is already a no-op in bbolt.
		return tx.Bucket(bucketSuggestions).Delete([]byte(id))
	})
	if err != nil {
		return storageErr("remove", err)
	}
	return nil
}

func (s *BoltStore) Close() error { return s.db.Close() }
