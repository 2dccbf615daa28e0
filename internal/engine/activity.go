package engine

import (
	"fmt"
	"sort"
	"time"

	"shelflife/internal/models"

	"github.com/google/uuid"
)

// DefaultActivityLimit caps the feed when callers pass no limit.
const DefaultActivityLimit = 10

// ActivityEntry reports that an item was touched. The feed tracks "last
// touched" only; it does not distinguish create, update, or quantity change.
type ActivityEntry struct {
	RecordID    uuid.UUID `json:"record_id"`
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	LastUpdated time.Time `json:"last_updated"`
}

// RecentActivity returns the most recently updated items, newest first,
// truncated to limit. The sort is stable so items sharing a timestamp keep
// their collection order between calls.
func RecentActivity(items []*models.Item, limit int) []ActivityEntry {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	sorted := make([]*models.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUpdated.After(sorted[j].LastUpdated)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]ActivityEntry, 0, len(sorted))
	for _, item := range sorted {
		entries = append(entries, ActivityEntry{
			RecordID:    item.ID,
			Name:        item.Name,
			Message:     fmt.Sprintf("%s was updated", item.Name),
			LastUpdated: item.LastUpdated,
		})
	}
	return entries
}
