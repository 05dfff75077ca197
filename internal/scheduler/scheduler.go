package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
)

const alertTimeout = 2 * time.Minute

// ReplenishmentAlerter evaluates the replenishment queue and notifies.
type ReplenishmentAlerter interface {
	ReplenishmentAlert(ctx context.Context) (models.ReplenishmentSnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	alerter  ReplenishmentAlerter
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. Jobs run in the warehouse
// timezone.
func NewScheduler(schedule string, tz *time.Location, alerter ReplenishmentAlerter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tz == nil {
		tz = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(tz)),
		schedule: schedule,
		alerter:  alerter,
		logger:   logger,
	}
}

// Start registers the replenishment alert and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runReplenishmentAlert); err != nil {
		return fmt.Errorf("schedule replenishment alert %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReplenishmentAlert() {
	ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()

	snapshot, err := s.alerter.ReplenishmentAlert(ctx)
	if err != nil {
		s.logger.Error("replenishment alert failed", zap.Error(err))
		return
	}

	s.logger.Info("replenishment alert completed",
		zap.Int("tasks", len(snapshot.Tasks)),
		zap.Bool("notified", snapshot.Notified))
}
