package inventory

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/corelia/retail-intel/internal/store"
)

const bucketName = "inventory"

// DB defines the interface for inventory persistence
type DB interface {
	// SaveItem saves an item to the database
	SaveItem(item *Item) error

	// GetItem retrieves an item by ID
	GetItem(id string) (*Item, error)

	// ListItems returns all items, all items for one owner when owner is
	// non-empty
	ListItems(owner string) ([]*Item, error)

	// ListByShop returns all items stocked by one shop
	ListByShop(shopID string) ([]*Item, error)

	// DeleteItem removes an item from the database
	DeleteItem(id string) error
}

// BoltDB implements the DB interface on the shared bbolt handle
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates the inventory bucket on the shared handle
func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	if err := store.CreateBucket(db, bucketName); err != nil {
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

// SaveItem saves an item to the database
func (b *BoltDB) SaveItem(item *Item) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item: %w", err)
		}
		return bucket.Put([]byte(item.ID), data)
	})
}

// GetItem retrieves an item by ID
func (b *BoltDB) GetItem(id string) (*Item, error) {
	var item *Item
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("item not found: %s", id)
		}
		return json.Unmarshal(data, &item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all items, optionally filtered by owner
func (b *BoltDB) ListItems(owner string) ([]*Item, error) {
	return b.list(func(item *Item) bool {
		return owner == "" || item.OwnerEmail == owner
	})
}

// ListByShop returns all items stocked by one shop
func (b *BoltDB) ListByShop(shopID string) ([]*Item, error) {
	return b.list(func(item *Item) bool {
		return item.ShopID == shopID
	})
}

func (b *BoltDB) list(keep func(*Item) bool) ([]*Item, error) {
	items := make([]*Item, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("unmarshaling item: %w", err)
			}
			if keep(&item) {
				items = append(items, &item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItem removes an item from the database
func (b *BoltDB) DeleteItem(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.Delete([]byte(id))
	})
}
