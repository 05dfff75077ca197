package warehouse

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

// PutAwayRequest moves one received row from the dock to a shelf location.
type PutAwayRequest struct {
	ItemID    string
	Target    string
	Container string
	Operator  string
}

// PendingPutAway lists the rows still on the inbound dock.
func (s *Service) PendingPutAway(ctx context.Context) ([]models.StockRow, error) {
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.RowsAt(stock, models.DockIn), nil
}

// CheckPlacement applies the reserve-slot guard to target against current stock.
func (s *Service) CheckPlacement(ctx context.Context, target string) error {
	target = strings.TrimSpace(target)
	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return err
	}
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return err
	}
	return inventory.ValidatePlacement(target, locations, stock)
}

// PutAway relocates the first dock row of the item (optionally of one
// container) to target and marks it available.
func (s *Service) PutAway(ctx context.Context, req PutAwayRequest) (models.StockRow, error) {
	itemID := strings.TrimSpace(req.ItemID)
	target := strings.TrimSpace(req.Target)
	if itemID == "" || target == "" {
		return models.StockRow{}, fmt.Errorf("%w: item and target are required", ErrInvalidInput)
	}

	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return models.StockRow{}, err
	}
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return models.StockRow{}, err
	}

	if err := inventory.ValidatePlacement(target, locations, stock); err != nil {
		return models.StockRow{}, err
	}

	row, ok := findDockRow(stock, itemID, strings.TrimSpace(req.Container))
	if !ok {
		return models.StockRow{}, fmt.Errorf("%w: %s at %s", ErrStockRowNotFound, itemID, models.DockIn)
	}

	now := s.timestamp()
	err = s.stock.UpdateCells(ctx, stockSheet, row.SheetRow, map[int]interface{}{
		inventory.ColLocation:  target,
		inventory.ColStatus:    models.StatusAvailable,
		inventory.ColTimestamp: now.Format(inventory.TimestampLayout),
	})
	if err != nil {
		return models.StockRow{}, fmt.Errorf("move row %d to %s: %w", row.SheetRow, target, err)
	}

	row.Location = target
	row.Status = models.StatusAvailable
	row.UpdatedAt = now

	if err := s.logTransaction(ctx, models.TransactionLogEntry{
		Timestamp: now,
		Action:    models.ActionPutAway,
		ItemID:    itemID,
		Qty:       row.Qty,
		From:      models.DockIn,
		To:        target,
		Actor:     s.actor(req.Operator),
	}); err != nil {
		return models.StockRow{}, err
	}

	s.logger.Info("stock put away", zap.String("item_id", itemID), zap.String("target", target), zap.Int("row", row.SheetRow))
	return row, nil
}

func findDockRow(stock []models.StockRow, itemID, container string) (models.StockRow, bool) {
	for _, row := range inventory.RowsAt(stock, models.DockIn) {
		if row.ItemID != itemID {
			continue
		}
		if container != "" && row.Container != container {
			continue
		}
		return row, true
	}
	return models.StockRow{}, false
}
