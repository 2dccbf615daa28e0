package engine

import (
	"strings"
	"time"

	"shelflife/internal/models"
)

// Stats summarizes a snapshot. The four stock buckets are mutually exclusive
// and sum to Total; Expiring is an independent subset count (expired items are
// never double-counted as expiring).
type Stats struct {
	Total      int `json:"total"`
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	Expiring   int `json:"expiring"`
	Expired    int `json:"expired"`
	OutOfStock int `json:"out_of_stock"`
}

// ComputeStats counts a snapshot into status buckets. Items whose precedence
// status is "expiring" still have stock and are not expired, so they roll into
// LowStock or InStock for the exclusive sum while Expiring tracks them
// separately.
func ComputeStats(items []*models.Item, cfg Config, reference time.Time) (Stats, error) {
	stats := Stats{Total: len(items)}

	for _, item := range items {
		status, err := ClassifyStatus(item, cfg, reference)
		if err != nil {
			return Stats{}, err
		}

		if IsExpiringSoon(item.ExpiryDate, reference, cfg.ExpiryWarningDays) && !IsExpired(item.ExpiryDate, reference) {
			stats.Expiring++
		}

		switch status {
		case StatusOutOfStock:
			stats.OutOfStock++
		case StatusExpired:
			stats.Expired++
		case StatusLowStock:
			stats.LowStock++
		case StatusExpiring:
			if item.Quantity <= EffectiveThreshold(item, cfg) {
				stats.LowStock++
			} else {
				stats.InStock++
			}
		default:
			stats.InStock++
		}
	}

	return stats, nil
}

// FilterByStatus returns the items whose computed status equals status. The
// synthetic "expiring" filter is evaluated independently of the precedence
// chain: callers asking for expiring items want everything inside the warning
// window, including items that classified as low-stock or out-of-stock.
func FilterByStatus(items []*models.Item, status Status, cfg Config, reference time.Time) ([]*models.Item, error) {
	var matched []*models.Item

	for _, item := range items {
		if status == StatusExpiring {
			if item.ExpiryDate.IsZero() {
				return nil, &InvalidDateError{RecordID: item.ID, Field: "expiry date"}
			}
			if IsExpiringSoon(item.ExpiryDate, reference, cfg.ExpiryWarningDays) && !IsExpired(item.ExpiryDate, reference) {
				matched = append(matched, item)
			}
			continue
		}

		computed, err := ClassifyStatus(item, cfg, reference)
		if err != nil {
			return nil, err
		}
		if computed == status {
			matched = append(matched, item)
		}
	}

	return matched, nil
}

// FilterByCategory returns items with an exact, case-sensitive category match.
// An empty category returns the full snapshot unchanged.
func FilterByCategory(items []*models.Item, category string) []*models.Item {
	if category == "" {
		return items
	}

	var matched []*models.Item
	for _, item := range items {
		if item.Category == category {
			matched = append(matched, item)
		}
	}
	return matched
}

// SearchItems returns items with a case-insensitive substring match against
// name, category, batch number, or description. An empty query returns the
// full snapshot unchanged, order preserved.
func SearchItems(items []*models.Item, query string) []*models.Item {
	if query == "" {
		return items
	}

	needle := strings.ToLower(query)
	var matched []*models.Item
	for _, item := range items {
		if matchesQuery(item, needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

func matchesQuery(item *models.Item, needle string) bool {
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Category), needle) {
		return true
	}
	if item.BatchNumber != nil && strings.Contains(strings.ToLower(*item.BatchNumber), needle) {
		return true
	}
	if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), needle) {
		return true
	}
	return false
}
