package review

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/corelia/retail-intel/internal/store"
)

const bucketName = "reviews"

// DB defines the interface for review persistence
type DB interface {
	// SaveReview saves a review to the database
	SaveReview(review *Review) error

	// ListReviews returns all reviews
	ListReviews() ([]*Review, error)
}

// BoltDB implements the DB interface on the shared bbolt handle
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates the reviews bucket on the shared handle
func NewBoltDB(db *bbolt.DB) (*BoltDB, error) {
	if err := store.CreateBucket(db, bucketName); err != nil {
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

// SaveReview saves a review to the database
func (b *BoltDB) SaveReview(review *Review) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(review)
		if err != nil {
			return fmt.Errorf("marshaling review: %w", err)
		}
		return bucket.Put([]byte(review.ID), data)
	})
}

// ListReviews returns all reviews
func (b *BoltDB) ListReviews() ([]*Review, error) {
	reviews := make([]*Review, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var review Review
			if err := json.Unmarshal(v, &review); err != nil {
				return fmt.Errorf("unmarshaling review: %w", err)
			}
			reviews = append(reviews, &review)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
