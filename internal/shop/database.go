package shop

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/corelia/retail-intel/internal/store"
)

const bucketName = "shops"

// DB defines the interface for shop persistence
type DB interface {
	// SaveShop saves a shop to the database
	SaveShop(shop *Shop) error

	// GetShop retrieves a shop by ID
	GetShop(id string) (*Shop, error)

	// ListShops returns all shops
	ListShops() ([]*Shop, error)
}

// BoltDB implements the DB interface on the shared bbolt handle
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates the shops bucket on the shared handle
func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	if err := store.CreateBucket(db, bucketName); err != nil {
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

// SaveShop saves a shop to the database
func (b *BoltDB) SaveShop(shop *Shop) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(shop)
		if err != nil {
			return fmt.Errorf("marshaling shop: %w", err)
		}
		return bucket.Put([]byte(shop.ID), data)
	})
}

// GetShop retrieves a shop by ID
func (b *BoltDB) GetShop(id string) (*Shop, error) {
	var shop *Shop
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("shop not found: %s", id)
		}
		return json.Unmarshal(data, &shop)
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// ListShops returns all shops
func (b *BoltDB) ListShops() ([]*Shop, error) {
	shops := make([]*Shop, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var shop Shop
			if err := json.Unmarshal(v, &shop); err != nil {
				return fmt.Errorf("unmarshaling shop: %w", err)
			}
			shops = append(shops, &shop)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return shops, nil
}
