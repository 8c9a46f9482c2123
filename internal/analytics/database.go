package analytics

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/corelia/retail-intel/internal/store"
)

const bucketName = "bills"

// DB defines the interface for bill record persistence
type DB interface {
	// SaveBill saves a bill record to the database
	SaveBill(record *BillRecord) error

	// ListBills returns all bill records for one owner
	ListBills(owner string) ([]*BillRecord, error)
}

// BoltDB implements the DB interface on the shared bbolt handle
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates the bills bucket on the shared handle
func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	if err := store.CreateBucket(db, bucketName); err != nil {
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

// SaveBill saves a bill record to the database
func (b *BoltDB) SaveBill(record *BillRecord) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling bill record: %w", err)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// ListBills returns all bill records for one owner
func (b *BoltDB) ListBills(owner string) ([]*BillRecord, error) {
	records := make([]*BillRecord, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var record BillRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling bill record: %w", err)
			}
			if record.OwnerEmail == owner {
				records = append(records, &record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
