package shop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corelia/retail-intel/internal/inventory"
)

// Inventory exposes the shop-facing slice of the inventory service
type Inventory interface {
	ListByShop(shopID string) ([]*inventory.Item, error)
}

// Service handles shop directory and matching operations
type Service struct {
	db        DB
	inventory Inventory
	cache     *ListCache
}

// NewService creates a new shop Service
func NewService(db DB, inv Inventory, cache *ListCache) *Service {
	return &Service{
		db:        db,
		inventory: inv,
		cache:     cache,
	}
}

// demoShops is the built-in directory served when the store is empty
func demoShops() []*Shop {
	return []*Shop{
		{ID: "1", Name: "Fresh Mart", Category: "Grocery", Distance: 0.8, Rating: 4.5, IsOpen: true,
			Address: "123 Main Street, City", Phone: "+1 (555) 123-4567", OperatingHours: "Mon-Sun: 8:00 AM - 10:00 PM"},
		{ID: "2", Name: "Green Valley", Category: "Organic", Distance: 1.2, Rating: 4.7, IsOpen: true,
			Address: "45 Orchard Road, City", Phone: "+1 (555) 234-5678", OperatingHours: "Mon-Sat: 9:00 AM - 9:00 PM"},
		{ID: "3", Name: "Quick Stop", Category: "Convenience", Distance: 0.5, Rating: 4.2, IsOpen: false,
			Address: "9 Corner Lane, City", Phone: "+1 (555) 345-6789", OperatingHours: "Mon-Sun: 7:00 AM - 11:00 PM"},
		{ID: "4", Name: "Super Saver", Category: "Grocery", Distance: 2.1, Rating: 4.6, IsOpen: true,
			Address: "200 Market Avenue, City", Phone: "+1 (555) 456-7890", OperatingHours: "Mon-Sun: 8:00 AM - 10:00 PM"},
	}
}

// List returns all shops, optionally filtered by category. Results come from
// the TTL cache when fresh; an empty store falls back to the demo directory.
func (s *Service) List(category string) ([]*Shop, error) {
	shops, ok := s.cache.Get()
	if !ok {
		var err error
		shops, err = s.db.ListShops()
		if err != nil {
			return nil, fmt.Errorf("listing shops: %w", err)
		}
		if len(shops) == 0 {
			shops = demoShops()
		}
		s.cache.Set(shops)
	}

	if category == "" {
		return shops, nil
	}
	filtered := make([]*Shop, 0, len(shops))
	for _, shop := range shops {
		if strings.EqualFold(shop.Category, category) {
			filtered = append(filtered, shop)
		}
	}
	return filtered, nil
}

// Get retrieves a shop by ID along with its stocked inventory
func (s *Service) Get(id string) (*Shop, []*inventory.Item, error) {
	shops, err := s.List("")
	if err != nil {
		return nil, nil, err
	}
	for _, shop := range shops {
		if shop.ID == id {
			items, err := s.inventory.ListByShop(id)
			if err != nil {
				return nil, nil, fmt.Errorf("listing shop inventory: %w", err)
			}
			return shop, items, nil
		}
	}
	return nil, nil, fmt.Errorf("shop not found: %s", id)
}

// Create stores a new shop and invalidates the list cache
func (s *Service) Create(shop *Shop) error {
	if err := s.db.SaveShop(shop); err != nil {
		return fmt.Errorf("saving shop: %w", err)
	}
	s.cache.Clear()
	return nil
}

// Search returns shops whose name or category contains the query
func (s *Service) Search(query string) ([]*Shop, error) {
	shops, err := s.List("")
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]*Shop, 0)
	for _, shop := range shops {
		if strings.Contains(strings.ToLower(shop.Name), q) ||
			strings.Contains(strings.ToLower(shop.Category), q) {
			matched = append(matched, shop)
		}
	}
	return matched, nil
}

// Match scores every shop against a grocery list and returns matches sorted
// best first. Score = availability*0.4 + (100-distance*10)*0.3 +
// rating/5*100*0.3.
func (s *Service) Match(req MatchRequest) ([]*Match, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("grocery list is empty")
	}

	shops, err := s.List("")
	if err != nil {
		return nil, err
	}

	matches := make([]*Match, 0, len(shops))
	for _, shop := range shops {
		stocked, err := s.inventory.ListByShop(shop.ID)
		if err != nil {
			return nil, fmt.Errorf("listing inventory for shop %s: %w", shop.ID, err)
		}

		match := &Match{
			ID:           shop.ID,
			Name:         shop.Name,
			Distance:     shop.Distance,
			Rating:       shop.Rating,
			MissingItems: []string{},
		}
		for _, wanted := range req.Items {
			item := findStocked(stocked, wanted)
			if item == nil {
				match.MissingItems = append(match.MissingItems, wanted)
				continue
			}
			match.MatchedItems++
			match.TotalPrice += item.Price
		}
		match.Availability = float64(match.MatchedItems) / float64(len(req.Items)) * 100

		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matchScore(matches[i]) > matchScore(matches[j])
	})
	return matches, nil
}

// findStocked locates a stocked item whose name contains the wanted name
func findStocked(stocked []*inventory.Item, wanted string) *inventory.Item {
	w := strings.ToLower(strings.TrimSpace(wanted))
	for _, item := range stocked {
		if item.Stock > 0 && strings.Contains(strings.ToLower(item.Name), w) {
			return item
		}
	}
	return nil
}

// matchScore weights availability, proximity and rating
func matchScore(m *Match) float64 {
	return m.Availability*0.4 + (100-m.Distance*10)*0.3 + m.Rating/5*100*0.3
}
