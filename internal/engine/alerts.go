package engine

import (
	"fmt"
	"sort"
	"time"

	"shelflife/internal/models"

	"github.com/google/uuid"
)

// AlertKind names an independently-detected actionable condition. Unlike
// status, a single item may emit several alerts.
type AlertKind string

const (
	AlertOutOfStock   AlertKind = "out-of-stock"
	AlertCriticalLow  AlertKind = "critical-low"
	AlertExpired      AlertKind = "expired"
	AlertExpiringSoon AlertKind = "expiring-soon"
)

// Priority ranks alerts for dashboards and notification surfaces.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Alert is ephemeral: recomputed on each query, never persisted.
type Alert struct {
	Kind        AlertKind `json:"kind"`
	RecordID    uuid.UUID `json:"record_id"`
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	Priority    Priority  `json:"priority"`
	ActionLabel string    `json:"action_label"`
}

// urgentExpiryDays is the short window that escalates an upcoming expiry into
// an alert, independent of the broader warning window used for status.
const urgentExpiryDays = 7

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// BuildAlerts derives the ranked alert list for a snapshot. Detectors run in a
// fixed order (out-of-stock, critical-low, expired, expiring-soon) across the
// whole snapshot, then a stable sort by priority puts high before medium while
// preserving detector order and collection order as tie-breaks. The detector
// guards make the pairs out-of-stock/critical-low and expired/expiring-soon
// mutually exclusive per item.
func BuildAlerts(items []*models.Item, cfg Config, reference time.Time) ([]Alert, error) {
	for _, item := range items {
		if item.ExpiryDate.IsZero() {
			return nil, &InvalidDateError{RecordID: item.ID, Field: "expiry date"}
		}
	}

	var alerts []Alert

	for _, item := range items {
		if item.Quantity == 0 {
			alerts = append(alerts, Alert{
				Kind:        AlertOutOfStock,
				RecordID:    item.ID,
				Name:        item.Name,
				Message:     fmt.Sprintf("%s is out of stock", item.Name),
				Priority:    PriorityHigh,
				ActionLabel: "Restock",
			})
		}
	}

	for _, item := range items {
		// floor(threshold/2); a threshold of 0 or 1 yields a bound of 0,
		// which quantity > 0 can never satisfy.
		critical := EffectiveThreshold(item, cfg) / 2
		if item.Quantity > 0 && item.Quantity <= critical {
			alerts = append(alerts, Alert{
				Kind:        AlertCriticalLow,
				RecordID:    item.ID,
				Name:        item.Name,
				Message:     fmt.Sprintf("%s has critically low stock (%d remaining)", item.Name, item.Quantity),
				Priority:    PriorityHigh,
				ActionLabel: "Reorder soon",
			})
		}
	}

	for _, item := range items {
		if IsExpired(item.ExpiryDate, reference) {
			alerts = append(alerts, Alert{
				Kind:        AlertExpired,
				RecordID:    item.ID,
				Name:        item.Name,
				Message:     fmt.Sprintf("%s has expired on %s", item.Name, item.ExpiryDate.Format("2006-01-02")),
				Priority:    PriorityHigh,
				ActionLabel: "Dispose",
			})
		}
	}

	for _, item := range items {
		days := DaysUntilExpiry(item.ExpiryDate, reference)
		if days > 0 && days <= urgentExpiryDays {
			alerts = append(alerts, Alert{
				Kind:        AlertExpiringSoon,
				RecordID:    item.ID,
				Name:        item.Name,
				Message:     fmt.Sprintf("%s expires in %d day(s)", item.Name, days),
				Priority:    PriorityMedium,
				ActionLabel: "Use soon",
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return priorityRank(alerts[i].Priority) < priorityRank(alerts[j].Priority)
	})

	return alerts, nil
}
