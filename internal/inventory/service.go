package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corelia/retail-intel/internal/expiry"
	"github.com/corelia/retail-intel/internal/extraction"
)

// BillScanner runs the structured extraction pipeline over a bill image
type BillScanner interface {
	ExtractItems(ctx context.Context, imageData []byte, contentType string) (*extraction.ExtractionResult, error)
}

// IDGenerator generates unique IDs for items
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now().UTC()
}

// Service handles inventory operations
type Service struct {
	db          DB
	scanner     BillScanner
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, scanner BillScanner, storage Storage) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner BillScanner, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// CreateItem validates and stores a new inventory item. A missing expiry
// date is computed from the item category via the shelf-life rule table.
func (s *Service) CreateItem(item *Item, owner string) (*Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("item name is required")
	}

	now := s.timeSource.Now()
	item.ID = s.idGenerator.Generate()
	item.OwnerEmail = owner
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.ExpiryDate.IsZero() {
		item.ExpiryDate = expiry.Date(item.Category, now)
	}

	if err := s.db.SaveItem(item); err != nil {
		return nil, fmt.Errorf("saving item: %w", err)
	}

	slog.Info("Created inventory item", "id", item.ID, "name", item.Name, "expiry", item.ExpiryDate)
	return item, nil
}

// GetItem retrieves an item by ID
func (s *Service) GetItem(id string) (*Item, error) {
	item, err := s.db.GetItem(id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items for an owner
func (s *Service) ListItems(owner string) ([]*Item, error) {
	items, err := s.db.ListItems(owner)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// ListByShop returns all items stocked by one shop
func (s *Service) ListByShop(shopID string) ([]*Item, error) {
	items, err := s.db.ListByShop(shopID)
	if err != nil {
		return nil, fmt.Errorf("listing shop items: %w", err)
	}
	return items, nil
}

// UpdateItem applies changes to an existing item owned by the caller
func (s *Service) UpdateItem(id string, owner string, changes *Item) (*Item, error) {
	item, err := s.db.GetItem(id)
	if err != nil {
		return nil, fmt.Errorf("getting item for update: %w", err)
	}
	if item.OwnerEmail != owner {
		return nil, fmt.Errorf("item not found: %s", id)
	}

	if changes.Name != "" {
		item.Name = changes.Name
	}
	if changes.Category != "" {
		item.Category = changes.Category
		if changes.ExpiryDate.IsZero() {
			item.ExpiryDate = expiry.Date(item.Category, s.timeSource.Now())
		}
	}
	if changes.Price != 0 {
		item.Price = changes.Price
	}
	if changes.Stock != 0 {
		item.Stock = changes.Stock
	}
	if changes.Unit != "" {
		item.Unit = changes.Unit
	}
	if !changes.ExpiryDate.IsZero() {
		item.ExpiryDate = changes.ExpiryDate
	}
	item.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveItem(item); err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item owned by the caller
func (s *Service) DeleteItem(id string, owner string) error {
	item, err := s.db.GetItem(id)
	if err != nil {
		return fmt.Errorf("getting item for deletion: %w", err)
	}
	if item.OwnerEmail != owner {
		return fmt.Errorf("item not found: %s", id)
	}
	if err := s.db.DeleteItem(id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// sanitizeFilename cleans up a filename by removing special characters and
// truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "bill"
	}

	return base + ext
}

// ScanBill archives an uploaded bill image and runs the extraction pipeline
// over it. The pipeline itself never fails once input validation passes; it
// degrades through its fallback chain instead.
func (s *Service) ScanBill(ctx context.Context, filename string, data []byte, contentType string) (*extraction.ExtractionResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty bill upload")
	}

	cleanFilename := sanitizeFilename(filename)
	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", s.idGenerator.Generate(), cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving bill file: %w", err)
	}

	result, err := s.scanner.ExtractItems(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to scan bill",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("scanning bill: %w", err)
	}

	return result, nil
}
