package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shelflife/internal/engine"
	"shelflife/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockItemRepository
	mockCache *MockCacheService
	service   ReportService
	reference time.Time
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockItemRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewReportService(suite.mockRepo, suite.mockCache, engine.DefaultConfig())
	suite.reference = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
}

func (suite *ReportServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) snapshotItem(name string, quantity, expiryOffsetDays int) *models.Item {
	return &models.Item{
		ID:          uuid.New(),
		Name:        name,
		Category:    "Medicine",
		Quantity:    quantity,
		ExpiryDate:  suite.reference.AddDate(0, 0, expiryOffsetDays),
		DateAdded:   suite.reference,
		LastUpdated: suite.reference,
	}
}

func (suite *ReportServiceTestSuite) TestStats_ComputesAndCaches() {
	ctx := context.Background()
	items := []*models.Item{
		suite.snapshotItem("full", 50, 400),
		suite.snapshotItem("low", 3, 400),
		suite.snapshotItem("out", 0, 400),
		suite.snapshotItem("gone", 20, -2),
	}

	suite.mockCache.On("GetStats", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return(items, nil).Once()
	suite.mockCache.On("SetStats", ctx, mock.AnythingOfType("*engine.Stats"), statsCacheTTL).Return(nil).Once()

	stats, err := suite.service.Stats(ctx, suite.reference)
	suite.NoError(err)
	suite.Equal(4, stats.Total)
	suite.Equal(1, stats.InStock)
	suite.Equal(1, stats.LowStock)
	suite.Equal(1, stats.OutOfStock)
	suite.Equal(1, stats.Expired)
	suite.Equal(stats.Total, stats.InStock+stats.LowStock+stats.Expired+stats.OutOfStock)
}

func (suite *ReportServiceTestSuite) TestStats_CacheHitSkipsSnapshot() {
	ctx := context.Background()
	cached := &engine.Stats{Total: 9, InStock: 9}

	suite.mockCache.On("GetStats", ctx).Return(cached, nil).Once()

	stats, err := suite.service.Stats(ctx, suite.reference)
	suite.NoError(err)
	suite.Equal(*cached, stats)
	suite.mockRepo.AssertNotCalled(suite.T(), "List")
}

func (suite *ReportServiceTestSuite) TestStats_RepoErrorPropagates() {
	ctx := context.Background()

	suite.mockCache.On("GetStats", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return(nil, errors.New("connection lost")).Once()

	_, err := suite.service.Stats(ctx, suite.reference)
	suite.Error(err)
}

func (suite *ReportServiceTestSuite) TestAlerts_RankedOutput() {
	ctx := context.Background()
	items := []*models.Item{
		suite.snapshotItem("soon", 20, 3),
		suite.snapshotItem("gone", 20, -2),
		suite.snapshotItem("empty", 0, 400),
	}

	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return(items, nil).Once()

	alerts, err := suite.service.Alerts(ctx, suite.reference)
	suite.NoError(err)
	suite.Len(alerts, 3)
	suite.Equal(engine.AlertOutOfStock, alerts[0].Kind)
	suite.Equal(engine.AlertExpired, alerts[1].Kind)
	suite.Equal(engine.AlertExpiringSoon, alerts[2].Kind)
}

func (suite *ReportServiceTestSuite) TestActivity_NewestFirst() {
	ctx := context.Background()
	older := suite.snapshotItem("older", 5, 400)
	older.LastUpdated = suite.reference.AddDate(0, 0, -1)
	newer := suite.snapshotItem("newer", 5, 400)

	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return([]*models.Item{older, newer}, nil).Once()

	entries, err := suite.service.Activity(ctx, 10)
	suite.NoError(err)
	suite.Len(entries, 2)
	suite.Equal("newer", entries[0].Name)
	suite.Equal("older", entries[1].Name)
}

func (suite *ReportServiceTestSuite) TestItemsByStatus() {
	ctx := context.Background()
	low := suite.snapshotItem("low", 3, 400)
	full := suite.snapshotItem("full", 50, 400)

	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return([]*models.Item{low, full}, nil).Once()

	items, err := suite.service.ItemsByStatus(ctx, engine.StatusLowStock, suite.reference)
	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(low.ID, items[0].ID)
}

func (suite *ReportServiceTestSuite) TestSearch_EmptyQueryReturnsSnapshot() {
	ctx := context.Background()
	items := []*models.Item{
		suite.snapshotItem("a", 5, 400),
		suite.snapshotItem("b", 5, 400),
	}

	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return(items, nil).Once()

	got, err := suite.service.Search(ctx, "")
	suite.NoError(err)
	suite.Equal(items, got)
}

func (suite *ReportServiceTestSuite) TestItemsByCategory() {
	ctx := context.Background()
	medicine := suite.snapshotItem("pills", 5, 400)
	supplement := suite.snapshotItem("vitamin", 5, 400)
	supplement.Category = "Supplement"

	suite.mockRepo.On("List", ctx, snapshotLimit, 0).Return([]*models.Item{medicine, supplement}, nil).Once()

	items, err := suite.service.ItemsByCategory(ctx, "Supplement")
	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(supplement.ID, items[0].ID)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
