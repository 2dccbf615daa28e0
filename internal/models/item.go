package models

import (
	"time"

	"github.com/google/uuid"
)

// Default category labels. Categories are stored as free text; this set only
// seeds the UI picker and is not enforced at the storage boundary.
var DefaultCategories = []string{"Medicine", "Consumable", "Equipment", "Supplement"}

// ItemSearchFilter holds search and filter criteria for item queries
type ItemSearchFilter struct {
	Query    string `json:"query,omitempty"`    // Substring search across name, category, batch number, description
	Category string `json:"category,omitempty"` // Exact category match
	Status   string `json:"status,omitempty"`   // Computed status filter (resolved in the report layer, not SQL)
	Limit    int    `json:"limit,omitempty"`    // Page size (default: 50)
	Offset   int    `json:"offset,omitempty"`   // Page offset
}

type Item struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Category          string    `json:"category" db:"category"`
	Quantity          int       `json:"quantity" db:"quantity"`
	LowStockThreshold *int      `json:"low_stock_threshold" db:"low_stock_threshold"`
	ExpiryDate        time.Time `json:"expiry_date" db:"expiry_date"`
	BatchNumber       *string   `json:"batch_number" db:"batch_number"`
	Description       *string   `json:"description" db:"description"`
	DateAdded         time.Time `json:"date_added" db:"date_added"`
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`
}
