// Package store keeps parse results between runs in a bbolt database.
package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"xray/internal/domain"
)

var (
	bucketModules = []byte("modules")
	bucketMeta    = []byte("meta")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketModules, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(path string) (domain.CachedModule, bool, error) {
	var entry domain.CachedModule
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketModules).Get([]byte(path))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("corrupt cache entry for %s: %w", path, err)
		}
		found = true
		return nil
	})
	return entry, found, err
}

func (s *BoltStore) Put(entry domain.CachedModule) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketModules).Put([]byte(entry.Path), data)
	})
}

func (s *BoltStore) Delete(path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketModules).Delete([]byte(path))
	})
}

// Paths lists every cached path in key order.
func (s *BoltStore) Paths() ([]string, error) {
	var paths []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketModules).ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	return paths, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
