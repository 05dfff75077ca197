package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/notify"
)

const (
	dateTimeLayout      = "2006-01-02 15:04"
	defaultHistoryLimit = 20
)

// ErrHistoryUnavailable indicates no snapshot archive is configured.
var ErrHistoryUnavailable = errors.New("replenishment history is not configured")

// StockSource is the part of the warehouse service reporting reads from.
type StockSource interface {
	CurrentStock(ctx context.Context) ([]models.StockRow, error)
	ReplenishmentQueue(ctx context.Context) ([]models.ReplenishmentTask, error)
}

// SnapshotArchive stores replenishment snapshots.
type SnapshotArchive interface {
	SaveReplenishmentSnapshot(ctx context.Context, snapshot models.ReplenishmentSnapshot) error
	RecentSnapshots(ctx context.Context, limit int64) ([]models.ReplenishmentSnapshot, error)
}

// Service builds replenishment alerts and stock exports.
type Service struct {
	stock     StockSource
	messaging notify.MessagingService
	archive   SnapshotArchive
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. archive may be nil.
func NewService(stock StockSource, messaging notify.MessagingService, archive SnapshotArchive, recipient string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stock:     stock,
		messaging: messaging,
		archive:   archive,
		recipient: recipient,
		logger:    logger,
		now:       time.Now,
	}
}

// ReplenishmentAlert reads the replenishment queue, notifies the configured
// recipient when it is not empty and archives the snapshot.
func (s *Service) ReplenishmentAlert(ctx context.Context) (models.ReplenishmentSnapshot, error) {
	tasks, err := s.stock.ReplenishmentQueue(ctx)
	if err != nil {
		return models.ReplenishmentSnapshot{}, fmt.Errorf("load replenishment queue: %w", err)
	}

	snapshot := models.ReplenishmentSnapshot{TakenAt: s.now(), Tasks: tasks}

	if len(tasks) > 0 && s.messaging != nil && s.recipient != "" {
		req := models.OutboundMessageRequest{To: s.recipient, Message: FormatReplenishmentSummary(tasks, snapshot.TakenAt)}
		if err := s.messaging.SendOutbound(ctx, req); err != nil {
			s.logger.Error("failed to send replenishment alert", zap.Error(err))
		} else {
			snapshot.Notified = true
		}
	}

	if s.archive != nil {
		snapshot.CreatedAt = s.now().UTC()
		if err := s.archive.SaveReplenishmentSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to archive replenishment snapshot", zap.Error(err))
		}
	}

	s.logger.Info("replenishment alert evaluated", zap.Int("tasks", len(tasks)), zap.Bool("notified", snapshot.Notified))
	return snapshot, nil
}

// ReplenishmentHistory returns the most recent archived snapshots, newest first.
func (s *Service) ReplenishmentHistory(ctx context.Context, limit int) ([]models.ReplenishmentSnapshot, error) {
	if s.archive == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	snapshots, err := s.archive.RecentSnapshots(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("load replenishment history: %w", err)
	}
	return snapshots, nil
}

// FormatReplenishmentSummary renders the queue as a short text message.
func FormatReplenishmentSummary(tasks []models.ReplenishmentTask, at time.Time) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("Replenishment (%s): pick faces OK.", at.Format(dateTimeLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Replenishment (%s): %d pick faces at or below threshold.", at.Format(dateTimeLayout), len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "\n- %s %s @ %s: %d/%d", t.ItemID, t.ItemName, t.Location, t.Qty, t.ReplenPoint)
		if t.ReserveQty > 0 {
			fmt.Fprintf(&b, " (reserve %d)", t.ReserveQty)
		} else {
			b.WriteString(" (no reserve)")
		}
	}
	return b.String()
}
