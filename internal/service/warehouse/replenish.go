package warehouse

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

// ReplenishmentSource is a reserve row the operator may draw from.
type ReplenishmentSource struct {
	Row       models.StockRow `json:"row"`
	Suggested int             `json:"suggested_qty"`
	MinQty    int             `json:"min_qty"`
	MaxQty    int             `json:"max_qty"`
}

// ReplenishmentPlan pairs a pick-face row with its candidate reserve sources.
type ReplenishmentPlan struct {
	Target  models.StockRow       `json:"target"`
	Sources []ReplenishmentSource `json:"sources"`
}

// ReplenishRequest moves stock from a reserve row to a pick-face row.
type ReplenishRequest struct {
	ItemID      string
	Source      string
	Target      string
	Qty         int
	ReplenPoint *int
	Operator    string
}

// ReplenishResult reports both sides of a completed move.
type ReplenishResult struct {
	SourceRemaining int  `json:"source_remaining"`
	SourceDeleted   bool `json:"source_deleted"`
	TargetQty       int  `json:"target_qty"`
}

// ReplenishmentQueue lists pick-face rows at or below their replen point with
// the total quantity held in reserve for each item.
func (s *Service) ReplenishmentQueue(ctx context.Context) ([]models.ReplenishmentTask, error) {
	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return nil, err
	}

	queue := inventory.ReplenishmentQueue(stock, locations)
	tasks := make([]models.ReplenishmentTask, 0, len(queue))
	for _, row := range queue {
		reserve := 0
		for _, src := range inventory.ReserveSources(stock, locations, row.ItemID) {
			reserve += src.Qty
		}
		tasks = append(tasks, models.ReplenishmentTask{
			ItemID:      row.ItemID,
			ItemName:    row.ItemName,
			Location:    row.Location,
			Qty:         row.Qty,
			ReplenPoint: row.ReplenPoint,
			ReserveQty:  reserve,
		})
	}
	return tasks, nil
}

// PlanReplenishment returns the reserve rows of itemID with the suggested and
// allowed quantity for each, for the pick-face row at target.
func (s *Service) PlanReplenishment(ctx context.Context, itemID, target string) (ReplenishmentPlan, error) {
	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return ReplenishmentPlan{}, err
	}
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return ReplenishmentPlan{}, err
	}

	pick, err := pickFaceRow(stock, locations, itemID, target)
	if err != nil {
		return ReplenishmentPlan{}, err
	}

	reserves := inventory.ReserveSources(stock, locations, itemID)
	if len(reserves) == 0 {
		return ReplenishmentPlan{}, fmt.Errorf("%w: %s", ErrNoReserveStock, itemID)
	}

	plan := ReplenishmentPlan{Target: pick, Sources: make([]ReplenishmentSource, 0, len(reserves))}
	for _, r := range reserves {
		plan.Sources = append(plan.Sources, ReplenishmentSource{
			Row:       r,
			Suggested: inventory.SuggestReplenishQty(pick, r),
			MinQty:    1,
			MaxQty:    r.Qty,
		})
	}
	return plan, nil
}

// Replenish decrements the reserve row, then increments the pick-face row and
// optionally rewrites its replen point. The two writes are not atomic: if the
// second fails the reserve has already been reduced.
func (s *Service) Replenish(ctx context.Context, req ReplenishRequest) (ReplenishResult, error) {
	itemID := strings.TrimSpace(req.ItemID)
	source := strings.TrimSpace(req.Source)
	target := strings.TrimSpace(req.Target)
	if itemID == "" || source == "" || target == "" {
		return ReplenishResult{}, fmt.Errorf("%w: item, source and target are required", ErrInvalidInput)
	}
	if req.ReplenPoint != nil && *req.ReplenPoint < 0 {
		return ReplenishResult{}, fmt.Errorf("%w: replen point must not be negative", ErrInvalidInput)
	}

	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return ReplenishResult{}, err
	}
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return ReplenishResult{}, err
	}

	if _, err := pickFaceRow(stock, locations, itemID, target); err != nil {
		return ReplenishResult{}, err
	}

	src, ok := inventory.FindStockRow(stock, itemID, source)
	if t, known := locations.Type(source); !ok || !known || t != models.LocationReserve {
		return ReplenishResult{}, fmt.Errorf("%w: %s at %s", ErrNoReserveStock, itemID, source)
	}

	dec, err := s.decrementRow(ctx, src, req.Qty)
	if err != nil {
		return ReplenishResult{}, err
	}

	result, err := s.incrementPickFace(ctx, itemID, target, req.Qty, req.ReplenPoint)
	if err != nil {
		s.logger.Error("reserve decremented but pick face not incremented",
			zap.String("item_id", itemID),
			zap.String("source", source),
			zap.String("target", target),
			zap.Int("qty", req.Qty),
			zap.Error(err))
		return ReplenishResult{}, err
	}
	result.SourceRemaining = dec.Remaining
	result.SourceDeleted = dec.Delete

	if err := s.logTransaction(ctx, models.TransactionLogEntry{
		Timestamp: s.timestamp(),
		Action:    models.ActionReplenish,
		ItemID:    itemID,
		Qty:       req.Qty,
		From:      source,
		To:        target,
		Actor:     s.actor(req.Operator),
	}); err != nil {
		return ReplenishResult{}, err
	}

	s.logger.Info("pick face replenished",
		zap.String("item_id", itemID),
		zap.String("source", source),
		zap.String("target", target),
		zap.Int("qty", req.Qty))
	return result, nil
}

// incrementPickFace re-reads stock because a deleted source row shifts the
// rows below it.
func (s *Service) incrementPickFace(ctx context.Context, itemID, target string, qty int, replenPoint *int) (ReplenishResult, error) {
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return ReplenishResult{}, err
	}
	row, ok := inventory.FindStockRow(stock, itemID, target)
	if !ok {
		return ReplenishResult{}, fmt.Errorf("%w: %s at %s", ErrStockRowNotFound, itemID, target)
	}

	newQty := row.Qty + qty
	cells := map[int]interface{}{
		inventory.ColQty:       newQty,
		inventory.ColTimestamp: s.timestamp().Format(inventory.TimestampLayout),
	}
	if replenPoint != nil {
		cells[inventory.ColReplenPoint] = *replenPoint
	}

	if err := s.stock.UpdateCells(ctx, stockSheet, row.SheetRow, cells); err != nil {
		return ReplenishResult{}, fmt.Errorf("increment row %d: %w", row.SheetRow, err)
	}
	return ReplenishResult{TargetQty: newQty}, nil
}

func pickFaceRow(stock []models.StockRow, locations models.LocationMap, itemID, target string) (models.StockRow, error) {
	if t, ok := locations.Type(target); !ok || t != models.LocationPick {
		return models.StockRow{}, fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	row, ok := inventory.FindStockRow(stock, itemID, target)
	if !ok {
		return models.StockRow{}, fmt.Errorf("%w: %s at %s", ErrStockRowNotFound, itemID, target)
	}
	return row, nil
}
