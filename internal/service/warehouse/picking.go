package warehouse

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

// PickRequest takes a quantity of an item out of one location.
type PickRequest struct {
	ItemID   string
	Location string
	Qty      int
	Operator string
}

// PickResult reports what is left of the picked row.
type PickResult struct {
	Remaining  int  `json:"remaining"`
	RowDeleted bool `json:"row_deleted"`
}

// PickableItems lists the distinct item ids present in stock.
func (s *Service) PickableItems(ctx context.Context) ([]string, error) {
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.ItemIDs(stock), nil
}

// Pick decrements the row of the item at the location, removing it when empty.
func (s *Service) Pick(ctx context.Context, req PickRequest) (PickResult, error) {
	itemID := strings.TrimSpace(req.ItemID)
	location := strings.TrimSpace(req.Location)
	if itemID == "" || location == "" {
		return PickResult{}, fmt.Errorf("%w: item and location are required", ErrInvalidInput)
	}

	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return PickResult{}, err
	}

	row, ok := inventory.FindStockRow(stock, itemID, location)
	if !ok {
		return PickResult{}, fmt.Errorf("%w: %s at %s", ErrStockRowNotFound, itemID, location)
	}

	dec, err := s.decrementRow(ctx, row, req.Qty)
	if err != nil {
		return PickResult{}, err
	}

	if err := s.logTransaction(ctx, models.TransactionLogEntry{
		Timestamp: s.timestamp(),
		Action:    models.ActionPicking,
		ItemID:    itemID,
		Qty:       req.Qty,
		From:      location,
		To:        models.OutLocation,
		Actor:     s.actor(req.Operator),
	}); err != nil {
		return PickResult{}, err
	}

	s.logger.Info("stock picked",
		zap.String("item_id", itemID),
		zap.String("location", location),
		zap.Int("qty", req.Qty),
		zap.Bool("row_deleted", dec.Delete))
	return PickResult{Remaining: dec.Remaining, RowDeleted: dec.Delete}, nil
}
