package user

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/corelia/retail-intel/internal/store"
)

const bucketName = "users"

// DB defines the interface for user persistence. Users are keyed by email.
type DB interface {
	// SaveUser saves a user to the database
	SaveUser(user *User) error

	// GetUser retrieves a user by email
	GetUser(email string) (*User, error)
}

// BoltDB implements the DB interface on the shared bbolt handle
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates the users bucket on the shared handle
func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	if err := store.CreateBucket(db, bucketName); err != nil {
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

// SaveUser saves a user to the database
func (b *BoltDB) SaveUser(user *User) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshaling user: %w", err)
		}
		return bucket.Put([]byte(user.Email), data)
	})
}

// GetUser retrieves a user by email
func (b *BoltDB) GetUser(email string) (*User, error) {
	var user *User
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(email))
		if data == nil {
			return fmt.Errorf("user not found: %s", email)
		}
		return json.Unmarshal(data, &user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
