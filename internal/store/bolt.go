// Package store owns the shared bbolt database handle. Each domain package
// creates its own bucket on this handle.
package store

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// Open opens the database file, creating it if needed
func Open(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}
	return db, nil
}

// CreateBucket ensures a bucket exists on the shared handle
func CreateBucket(db *bbolt.DB, name string) error {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		return fmt.Errorf("creating bucket %s: %w", name, err)
	}
	return nil
}
