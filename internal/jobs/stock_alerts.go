package jobs

import (
	"context"
	"log"
	"time"

	"shelflife/internal/engine"
	"shelflife/internal/repositories"
)

// snapshotLimit matches the report layer: one sweep reads the whole
// collection. In practice this should paginate for very large facilities.
const snapshotLimit = 1000

// StockAlertService runs the alert engine over the current snapshot on a
// schedule, so operational problems surface even when nobody is watching the
// dashboard.
type StockAlertService struct {
	itemRepo repositories.ItemRepository
	cfg      engine.Config
}

func NewStockAlertService(itemRepo repositories.ItemRepository, cfg engine.Config) *StockAlertService {
	return &StockAlertService{
		itemRepo: itemRepo,
		cfg:      cfg.Normalize(),
	}
}

// CheckAlerts classifies the current snapshot against the given reference
// time and returns the ranked alert list.
func (s *StockAlertService) CheckAlerts(ctx context.Context, reference time.Time) ([]engine.Alert, error) {
	items, err := s.itemRepo.List(ctx, snapshotLimit, 0)
	if err != nil {
		log.Printf("Failed to list items for alert sweep: %v", err)
		return nil, err
	}

	return engine.BuildAlerts(items, s.cfg, reference)
}

// LogAlerts writes the ranked alerts to the application log.
func (s *StockAlertService) LogAlerts(alerts []engine.Alert) {
	if len(alerts) == 0 {
		log.Println("No stock alerts to log")
		return
	}

	log.Printf("Stock alerts (%d):", len(alerts))
	for _, alert := range alerts {
		log.Printf("- [%s/%s] %s", alert.Priority, alert.Kind, alert.Message)
	}
}

// ScheduledSweep is the job entry point registered with the scheduler.
func (s *StockAlertService) ScheduledSweep(ctx context.Context) error {
	log.Println("Starting scheduled stock alert sweep")

	alerts, err := s.CheckAlerts(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Scheduled stock alert sweep failed: %v", err)
		return err
	}

	s.LogAlerts(alerts)
	log.Println("Scheduled stock alert sweep completed")
	return nil
}
