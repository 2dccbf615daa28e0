package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"shelflife/internal/caching"
	"shelflife/internal/models"
	"shelflife/internal/repositories"

	"github.com/google/uuid"
)

// itemCacheTTL keeps single-item reads cheap without letting a stale record
// survive long past a concurrent write.
const itemCacheTTL = 5 * time.Minute

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every rejected field so a caller can display all
// problems at once instead of fixing them one round-trip at a time.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// FieldMap flattens the list into the response envelope shape.
func (v ValidationErrors) FieldMap() map[string]string {
	m := make(map[string]string, len(v))
	for _, e := range v {
		m[e.Field] = e.Message
	}
	return m
}

// CreateItemInput carries the caller-supplied fields for a new item. The
// service assigns id, date added, and last updated.
type CreateItemInput struct {
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold *int      `json:"low_stock_threshold"`
	ExpiryDate        time.Time `json:"expiry_date"`
	BatchNumber       *string   `json:"batch_number"`
	Description       *string   `json:"description"`
}

// UpdateItemInput is a partial update; nil fields are left unchanged. The id
// and date added are immutable, last updated always refreshes.
type UpdateItemInput struct {
	Name              *string    `json:"name"`
	Category          *string    `json:"category"`
	Quantity          *int       `json:"quantity"`
	LowStockThreshold *int       `json:"low_stock_threshold"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	BatchNumber       *string    `json:"batch_number"`
	Description       *string    `json:"description"`
}

type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*models.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*models.Item, error)
}

type itemService struct {
	itemRepo repositories.ItemRepository
	cache    caching.CacheService
	now      func() time.Time
}

func NewItemService(itemRepo repositories.ItemRepository, cache caching.CacheService) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		cache:    cache,
		now:      time.Now,
	}
}

func validateCreate(input CreateItemInput) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(input.Category) == "" {
		errs = append(errs, ValidationError{Field: "category", Message: "category is required"})
	}
	if input.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if input.ExpiryDate.IsZero() {
		errs = append(errs, ValidationError{Field: "expiry_date", Message: "expiry date is required"})
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold < 0 {
		errs = append(errs, ValidationError{Field: "low_stock_threshold", Message: "threshold cannot be negative"})
	}
	return errs
}

func validateUpdate(input UpdateItemInput) ValidationErrors {
	var errs ValidationErrors
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) == "" {
		errs = append(errs, ValidationError{Field: "category", Message: "category cannot be empty"})
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if input.ExpiryDate != nil && input.ExpiryDate.IsZero() {
		errs = append(errs, ValidationError{Field: "expiry_date", Message: "expiry date cannot be empty"})
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold < 0 {
		errs = append(errs, ValidationError{Field: "low_stock_threshold", Message: "threshold cannot be negative"})
	}
	return errs
}

func (s *itemService) Create(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	if errs := validateCreate(input); len(errs) > 0 {
		return nil, errs
	}

	now := s.now().UTC()
	item := &models.Item{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(input.Name),
		Category:          strings.TrimSpace(input.Category),
		Quantity:          input.Quantity,
		LowStockThreshold: input.LowStockThreshold,
		ExpiryDate:        input.ExpiryDate,
		BatchNumber:       input.BatchNumber,
		Description:       input.Description,
		DateAdded:         now,
		LastUpdated:       now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if cached, err := s.cache.GetItem(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors shouldn't fail the read.
		log.Printf("Cache error for item %s: %v", id.String(), err)
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.SetItem(ctx, item, itemCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache item %s: %v", id.String(), cacheErr)
	}

	return item, nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*models.Item, error) {
	if errs := validateUpdate(input); len(errs) > 0 {
		return nil, errs
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.LowStockThreshold != nil {
		item.LowStockThreshold = input.LowStockThreshold
	}
	if input.ExpiryDate != nil {
		item.ExpiryDate = *input.ExpiryDate
	}
	if input.BatchNumber != nil {
		item.BatchNumber = input.BatchNumber
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	item.LastUpdated = s.now().UTC()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateItem(ctx, id)
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateItem(ctx, id)
	return nil
}

func (s *itemService) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	return s.itemRepo.List(ctx, limit, offset)
}

// AdjustQuantity applies a signed stock change, clamping at zero so no
// operation can drive the count negative.
func (s *itemService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0 // Prevent negative
	}
	item.LastUpdated = s.now().UTC()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateItem(ctx, id)
	return item, nil
}

func (s *itemService) invalidateItem(ctx context.Context, id uuid.UUID) {
	if cacheErr := s.cache.DeleteItem(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", id.String(), cacheErr)
	}
	s.invalidateStats(ctx)
}

func (s *itemService) invalidateStats(ctx context.Context) {
	if cacheErr := s.cache.InvalidateStats(ctx); cacheErr != nil {
		log.Printf("Failed to invalidate stats cache: %v", cacheErr)
	}
}
