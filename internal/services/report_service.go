package services

import (
	"context"
	"log"
	"time"

	"shelflife/internal/caching"
	"shelflife/internal/engine"
	"shelflife/internal/models"
	"shelflife/internal/repositories"
)

// snapshotLimit bounds one engine snapshot. Collections here are small; a
// facility tracking more rows than this needs pagination upstream first.
const snapshotLimit = 1000

// statsCacheTTL is short because stats are cheap to recompute and any write
// invalidates them anyway.
const statsCacheTTL = time.Minute

// ReportService derives dashboard signals from the current record snapshot.
// Every computation takes an explicit reference time so classification never
// depends on an ambient clock.
type ReportService interface {
	Stats(ctx context.Context, reference time.Time) (engine.Stats, error)
	Alerts(ctx context.Context, reference time.Time) ([]engine.Alert, error)
	Activity(ctx context.Context, limit int) ([]engine.ActivityEntry, error)
	ItemsByStatus(ctx context.Context, status engine.Status, reference time.Time) ([]*models.Item, error)
	ItemsByCategory(ctx context.Context, category string) ([]*models.Item, error)
	Search(ctx context.Context, query string) ([]*models.Item, error)
}

type reportService struct {
	itemRepo repositories.ItemRepository
	cache    caching.CacheService
	cfg      engine.Config
}

func NewReportService(itemRepo repositories.ItemRepository, cache caching.CacheService, cfg engine.Config) ReportService {
	return &reportService{
		itemRepo: itemRepo,
		cache:    cache,
		cfg:      cfg.Normalize(),
	}
}

func (s *reportService) snapshot(ctx context.Context) ([]*models.Item, error) {
	return s.itemRepo.List(ctx, snapshotLimit, 0)
}

func (s *reportService) Stats(ctx context.Context, reference time.Time) (engine.Stats, error) {
	if cached, err := s.cache.GetStats(ctx); cached != nil {
		return *cached, nil
	} else if err != nil {
		log.Printf("Stats cache error: %v", err)
	}

	items, err := s.snapshot(ctx)
	if err != nil {
		return engine.Stats{}, err
	}

	stats, err := engine.ComputeStats(items, s.cfg, reference)
	if err != nil {
		return engine.Stats{}, err
	}

	if cacheErr := s.cache.SetStats(ctx, &stats, statsCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache stats: %v", cacheErr)
	}

	return stats, nil
}

func (s *reportService) Alerts(ctx context.Context, reference time.Time) ([]engine.Alert, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.BuildAlerts(items, s.cfg, reference)
}

func (s *reportService) Activity(ctx context.Context, limit int) ([]engine.ActivityEntry, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.RecentActivity(items, limit), nil
}

func (s *reportService) ItemsByStatus(ctx context.Context, status engine.Status, reference time.Time) ([]*models.Item, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilterByStatus(items, status, s.cfg, reference)
}

func (s *reportService) ItemsByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilterByCategory(items, category), nil
}

func (s *reportService) Search(ctx context.Context, query string) ([]*models.Item, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.SearchItems(items, query), nil
}
