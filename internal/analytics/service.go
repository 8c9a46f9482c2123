package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/corelia/retail-intel/internal/extraction"
)

// topSellingLimit caps the product ranking returned to sellers
const topSellingLimit = 5

// IDGenerator generates unique IDs for bill records
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

// Service records scanned bills and reports sales statistics over them
type Service struct {
	db          DB
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new analytics Service
func NewService(db DB) *Service {
	return &Service{
		db:          db,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Record stores the extracted line items of one bill against its owner
func (s *Service) Record(owner string, items []extraction.LineItem) (*BillRecord, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to record")
	}

	record := &BillRecord{
		ID:         s.idGenerator.Generate(),
		OwnerEmail: owner,
		CreatedAt:  s.timeSource.Now(),
	}
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		record.Items = append(record.Items, SoldItem{
			Name:     item.Name,
			Quantity: qty,
			Price:    item.Price,
			Category: string(item.Category),
		})
		record.Total += item.Price * float64(qty)
	}
	record.Total = round2(record.Total)

	if err := s.db.SaveBill(record); err != nil {
		return nil, fmt.Errorf("saving bill record: %w", err)
	}
	return record, nil
}

// Stats reports revenue totals for one seller, with today and trailing-week
// windows relative to the current time
func (s *Service) Stats(owner string) (*SellerStats, error) {
	bills, err := s.db.ListBills(owner)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	now := s.timeSource.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)

	stats := &SellerStats{TotalOrders: len(bills)}
	for _, bill := range bills {
		stats.TotalRevenue += bill.Total
		if !bill.CreatedAt.Before(dayStart) {
			stats.TodayOrders++
			stats.TodayRevenue += bill.Total
		}
		if !bill.CreatedAt.Before(weekStart) {
			stats.WeekRevenue += bill.Total
		}
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = round2(stats.TotalRevenue / float64(stats.TotalOrders))
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)
	stats.TodayRevenue = round2(stats.TodayRevenue)
	stats.WeekRevenue = round2(stats.WeekRevenue)
	return stats, nil
}

// TopSelling ranks one seller's products by units sold across all recorded
// bills, best sellers first
func (s *Service) TopSelling(owner string) ([]ProductSales, error) {
	bills, err := s.db.ListBills(owner)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	byName := make(map[string]*ProductSales)
	for _, bill := range bills {
		for _, item := range bill.Items {
			entry, ok := byName[item.Name]
			if !ok {
				entry = &ProductSales{Name: item.Name}
				byName[item.Name] = entry
			}
			entry.Sales += item.Quantity
			entry.Revenue += item.Price * float64(item.Quantity)
		}
	}

	products := make([]ProductSales, 0, len(byName))
	for _, p := range byName {
		p.Revenue = round2(p.Revenue)
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Sales != products[j].Sales {
			return products[i].Sales > products[j].Sales
		}
		return products[i].Name < products[j].Name
	})
	if len(products) > topSellingLimit {
		products = products[:topSellingLimit]
	}
	return products, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
