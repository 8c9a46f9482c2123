package review

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// reviewPoints is awarded to the author's loyalty balance per review
const reviewPoints = 50

// LoyaltyAwarder credits loyalty points to a user
type LoyaltyAwarder interface {
	AddPoints(email string, points int) error
}

// IDGenerator generates unique IDs for reviews
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string { return uuid.NewString() }

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time { return time.Now().UTC() }

// Service handles review operations
type Service struct {
	db          DB
	loyalty     LoyaltyAwarder
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new review Service
func NewService(db DB, loyalty LoyaltyAwarder) *Service {
	return &Service{
		db:          db,
		loyalty:     loyalty,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, loyalty LoyaltyAwarder, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		loyalty:     loyalty,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Create validates and stores a review, awarding loyalty points to its author
func (s *Service) Create(review *Review) (*Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if review.ShopID == "" {
		return nil, fmt.Errorf("shop id is required")
	}

	review.ID = s.idGenerator.Generate()
	review.Verified = true
	review.CreatedAt = s.timeSource.Now()

	if err := s.db.SaveReview(review); err != nil {
		return nil, fmt.Errorf("saving review: %w", err)
	}

	// The review is already stored; a failed credit is not fatal
	if err := s.loyalty.AddPoints(review.UserEmail, reviewPoints); err != nil {
		slog.Warn("Failed to award loyalty points", "user", review.UserEmail, "error", err)
	}
	return review, nil
}

// ListByShop returns the newest reviews for one shop, up to limit
func (s *Service) ListByShop(shopID string, limit int) ([]*Review, error) {
	return s.listRecent(limit, func(r *Review) bool { return r.ShopID == shopID })
}

// ListRecent returns the newest reviews across all shops, up to limit
func (s *Service) ListRecent(limit int) ([]*Review, error) {
	return s.listRecent(limit, func(*Review) bool { return true })
}

// ListByUser returns all reviews written by one user, newest first
func (s *Service) ListByUser(email string) ([]*Review, error) {
	return s.listRecent(0, func(r *Review) bool { return r.UserEmail == email })
}

func (s *Service) listRecent(limit int, keep func(*Review) bool) ([]*Review, error) {
	all, err := s.db.ListReviews()
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	reviews := make([]*Review, 0, len(all))
	for _, r := range all {
		if keep(r) {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}
