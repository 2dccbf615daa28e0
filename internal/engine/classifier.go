package engine

import (
	"fmt"
	"time"

	"shelflife/internal/models"

	"github.com/google/uuid"
)

// Status is the derived operational state of an item. It is recomputed on
// every query and never stored.
type Status string

const (
	StatusInStock    Status = "in-stock"
	StatusLowStock   Status = "low-stock"
	StatusOutOfStock Status = "out-of-stock"
	StatusExpiring   Status = "expiring"
	StatusExpired    Status = "expired"
)

// ValidStatus reports whether s is one of the five derived statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusExpiring, StatusExpired:
		return true
	}
	return false
}

// InvalidDateError reports an item whose expiry date cannot be interpreted as
// a calendar date. Classification fails fast for the offending item; callers
// decide whether to skip or surface it.
type InvalidDateError struct {
	RecordID uuid.UUID
	Field    string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("item %s has an invalid %s", e.RecordID.String(), e.Field)
}

// atMidnight strips the time-of-day component so date arithmetic works on
// whole calendar days. Without this, a reference instant of 14:00 would make
// an item expiring tomorrow morning look like it expires "today".
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiry returns the number of whole calendar days between the
// reference date and the expiry date. Negative values mean the date has passed.
func DaysUntilExpiry(expiry, reference time.Time) int {
	return int(atMidnight(expiry).Sub(atMidnight(reference)) / (24 * time.Hour))
}

// IsExpired reports whether expiry is strictly before the reference date at
// day granularity. An item expiring exactly today is expired.
func IsExpired(expiry, reference time.Time) bool {
	return atMidnight(expiry).Before(atMidnight(reference))
}

// IsExpiringSoon reports whether expiry falls within the warning window. The
// lower bound is strict: day-zero expiry is classified as expired, not
// expiring, so no item lands in both buckets.
func IsExpiringSoon(expiry, reference time.Time, warningDays int) bool {
	days := DaysUntilExpiry(expiry, reference)
	return days > 0 && days <= warningDays
}

// EffectiveThreshold resolves the low-stock cutoff for an item: the per-item
// override when present, else the configured default.
func EffectiveThreshold(item *models.Item, cfg Config) int {
	if item.LowStockThreshold != nil {
		return *item.LowStockThreshold
	}
	return cfg.DefaultLowStockThreshold
}

// ClassifyStatus maps an item to exactly one status. The precedence order is a
// contract: stock-outs and expiry shadow a merely-low count even when both
// conditions hold.
func ClassifyStatus(item *models.Item, cfg Config, reference time.Time) (Status, error) {
	if item.ExpiryDate.IsZero() {
		return "", &InvalidDateError{RecordID: item.ID, Field: "expiry date"}
	}

	switch {
	case item.Quantity == 0:
		return StatusOutOfStock, nil
	case IsExpired(item.ExpiryDate, reference):
		return StatusExpired, nil
	case IsExpiringSoon(item.ExpiryDate, reference, cfg.ExpiryWarningDays):
		return StatusExpiring, nil
	case item.Quantity <= EffectiveThreshold(item, cfg):
		return StatusLowStock, nil
	default:
		return StatusInStock, nil
	}
}
