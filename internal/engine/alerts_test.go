package engine

import (
	"fmt"
	"testing"
	"time"

	"shelflife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(alerts []Alert) []AlertKind {
	out := make([]AlertKind, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Kind)
	}
	return out
}

func TestBuildAlerts_OutOfStock(t *testing.T) {
	item := testItem(0, 400)
	item.Name = "Insulin"

	alerts, err := BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertOutOfStock, alerts[0].Kind)
	assert.Equal(t, PriorityHigh, alerts[0].Priority)
	assert.Equal(t, item.ID, alerts[0].RecordID)
	assert.Equal(t, "Insulin is out of stock", alerts[0].Message)
}

func TestBuildAlerts_CriticalLow(t *testing.T) {
	item := testItem(4, 400) // threshold 10, floor(10/2) = 5
	item.Name = "Syringes"

	alerts, err := BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertCriticalLow, alerts[0].Kind)
	assert.Equal(t, "Syringes has critically low stock (4 remaining)", alerts[0].Message)

	// At the bound.
	item.Quantity = 5
	alerts, err = BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	// Just above the bound.
	item.Quantity = 6
	alerts, err = BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestBuildAlerts_DegenerateThresholdSuppressesCriticalLow(t *testing.T) {
	for _, threshold := range []int{0, 1} {
		item := testItem(1, 400)
		item.LowStockThreshold = &threshold

		alerts, err := BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
		require.NoError(t, err)
		assert.Empty(t, alerts, "threshold %d makes the critical bound 0", threshold)
	}
}

func TestBuildAlerts_ExpiredAndExpiringSoon(t *testing.T) {
	expired := testItem(20, -3)
	expired.Name = "Cough syrup"

	urgent := testItem(20, 3)
	urgent.Name = "Eye drops"

	alerts, err := BuildAlerts([]*models.Item{expired, urgent}, DefaultConfig(), testRef)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, AlertExpired, alerts[0].Kind)
	wantDate := expired.ExpiryDate.Format("2006-01-02")
	assert.Equal(t, fmt.Sprintf("Cough syrup has expired on %s", wantDate), alerts[0].Message)

	assert.Equal(t, AlertExpiringSoon, alerts[1].Kind)
	assert.Equal(t, PriorityMedium, alerts[1].Priority)
	assert.Equal(t, "Eye drops expires in 3 day(s)", alerts[1].Message)
}

func TestBuildAlerts_ExpiringSoonWindowIsSevenDays(t *testing.T) {
	inside := testItem(20, 7)
	outside := testItem(20, 8)

	alerts, err := BuildAlerts([]*models.Item{inside, outside}, DefaultConfig(), testRef)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, inside.ID, alerts[0].RecordID)
}

func TestBuildAlerts_ExpiredNeverDoubleAlertedAsExpiringSoon(t *testing.T) {
	item := testItem(20, -1) // inside seven days in magnitude, but already past

	alerts, err := BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertExpired, alerts[0].Kind)
}

func TestBuildAlerts_OutOfStockAndExpiredNeverCriticalLow(t *testing.T) {
	// quantity 0, threshold 10, expired yesterday: both high alerts, no critical-low.
	item := testItem(0, -1)
	item.LowStockThreshold = intPtr(10)

	alerts, err := BuildAlerts([]*models.Item{item}, DefaultConfig(), testRef)
	require.NoError(t, err)
	assert.Equal(t, []AlertKind{AlertOutOfStock, AlertExpired}, kinds(alerts))
	for _, a := range alerts {
		assert.Equal(t, PriorityHigh, a.Priority)
	}
}

func TestBuildAlerts_RankingContract(t *testing.T) {
	// One of each across three records; order must be exactly
	// out-of-stock, expired, expiring-soon regardless of collection order.
	expiringSoon := testItem(20, 3)
	expired := testItem(20, -2)
	outOfStock := testItem(0, 400)

	alerts, err := BuildAlerts([]*models.Item{expiringSoon, expired, outOfStock}, DefaultConfig(), testRef)
	require.NoError(t, err)
	assert.Equal(t, []AlertKind{AlertOutOfStock, AlertExpired, AlertExpiringSoon}, kinds(alerts))
}

func TestBuildAlerts_TieBreakPreservesCollectionOrder(t *testing.T) {
	first := testItem(0, 400)
	first.Name = "First"
	second := testItem(0, 400)
	second.Name = "Second"

	alerts, err := BuildAlerts([]*models.Item{first, second}, DefaultConfig(), testRef)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "First", alerts[0].Name)
	assert.Equal(t, "Second", alerts[1].Name)
}

func TestBuildAlerts_InvalidDate(t *testing.T) {
	broken := testItem(5, 0)
	broken.ExpiryDate = time.Time{}

	_, err := BuildAlerts([]*models.Item{broken}, DefaultConfig(), testRef)
	var invalidDate *InvalidDateError
	assert.ErrorAs(t, err, &invalidDate)
}

func TestBuildAlerts_QuietSnapshot(t *testing.T) {
	alerts, err := BuildAlerts([]*models.Item{testItem(50, 400)}, DefaultConfig(), testRef)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
