package user

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corelia/retail-intel/internal/inventory"
)

// Loyalty tier thresholds
const (
	silverThreshold = 500
	goldThreshold   = 1000
)

// staticRewards is the fixed reward catalog shown with loyalty summaries
var staticRewards = []Reward{
	{ID: 1, Name: "$5 Discount", Points: 500, Description: "Get $5 off"},
	{ID: 2, Name: "Free Delivery", Points: 300, Description: "Free delivery"},
}

// Inventory exposes the user-facing slice of the inventory service
type Inventory interface {
	ListItems(owner string) ([]*inventory.Item, error)
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time { return time.Now().UTC() }

// Service handles user profile and loyalty operations
type Service struct {
	db         DB
	inventory  Inventory
	timeSource TimeSource
}

// NewService creates a new user Service
func NewService(db DB, inv Inventory) *Service {
	return &Service{
		db:         db,
		inventory:  inv,
		timeSource: &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(db DB, inv Inventory, timeSrc TimeSource) *Service {
	return &Service{
		db:         db,
		inventory:  inv,
		timeSource: timeSrc,
	}
}

// Profile retrieves the user record for an email, creating a bare record on
// first sight so requests never fail for an unknown account.
func (s *Service) Profile(email string) (*User, error) {
	user, err := s.db.GetUser(email)
	if err == nil {
		return user, nil
	}

	user = &User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      nameFromEmail(email),
		Role:      "customer",
		CreatedAt: s.timeSource.Now(),
	}
	if err := s.db.SaveUser(user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return user, nil
}

// AddPoints credits loyalty points to a user's balance
func (s *Service) AddPoints(email string, points int) error {
	user, err := s.Profile(email)
	if err != nil {
		return err
	}
	user.LoyaltyPoints += points
	if err := s.db.SaveUser(user); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// Loyalty returns a user's points, tier and the reward catalog
func (s *Service) Loyalty(email string) (*LoyaltySummary, error) {
	user, err := s.Profile(email)
	if err != nil {
		return nil, err
	}
	return &LoyaltySummary{
		Points:  user.LoyaltyPoints,
		Tier:    tierFor(user.LoyaltyPoints),
		Rewards: staticRewards,
	}, nil
}

// ExpiringItems reports the user's inventory items that expire within the
// given number of days, soonest first.
func (s *Service) ExpiringItems(email string, withinDays int) ([]*ExpiringItem, error) {
	items, err := s.inventory.ListItems(email)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	now := s.timeSource.Now()
	horizon := now.AddDate(0, 0, withinDays)

	expiring := make([]*ExpiringItem, 0)
	for _, item := range items {
		if item.ExpiryDate.IsZero() || item.ExpiryDate.After(horizon) {
			continue
		}
		expiring = append(expiring, &ExpiringItem{
			Name:       item.Name,
			Category:   item.Category,
			ExpiryDate: item.ExpiryDate,
			DaysLeft:   int(item.ExpiryDate.Sub(now).Hours() / 24),
		})
	}
	sort.Slice(expiring, func(i, j int) bool {
		return expiring[i].ExpiryDate.Before(expiring[j].ExpiryDate)
	})
	return expiring, nil
}

func tierFor(points int) string {
	switch {
	case points > goldThreshold:
		return "gold"
	case points > silverThreshold:
		return "silver"
	default:
		return "bronze"
	}
}

func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
