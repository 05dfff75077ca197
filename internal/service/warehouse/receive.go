package warehouse

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

const defaultReplenPoint = 1

// ItemLookup is what the operator sees after scanning an item to receive.
type ItemLookup struct {
	Item               models.Item `json:"item"`
	DefaultReplenPoint int         `json:"default_replen_point"`
}

// ReceiveRequest books a quantity of an item onto the inbound dock.
type ReceiveRequest struct {
	ItemID      string
	Qty         int
	ReplenPoint *int
	Container   string
	Operator    string
}

// LookupItem resolves a scanned barcode against the item master. The default
// replen point comes from the item's most recent stock row.
func (s *Service) LookupItem(ctx context.Context, barcode string) (ItemLookup, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return ItemLookup{}, fmt.Errorf("%w: barcode is required", ErrInvalidInput)
	}

	item, ok, err := s.catalog.FindItem(ctx, barcode)
	if err != nil {
		return ItemLookup{}, err
	}
	if !ok {
		return ItemLookup{}, fmt.Errorf("%w: %s", ErrItemNotFound, barcode)
	}

	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return ItemLookup{}, err
	}

	lookup := ItemLookup{Item: item, DefaultReplenPoint: defaultReplenPoint}
	rows := inventory.RowsOf(stock, barcode)
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].HasReplenPoint {
			lookup.DefaultReplenPoint = rows[i].ReplenPoint
			break
		}
	}
	return lookup, nil
}

// Receive appends a DOCK_IN row pending put-away and logs it.
func (s *Service) Receive(ctx context.Context, req ReceiveRequest) (models.StockRow, error) {
	if req.Qty < 1 {
		return models.StockRow{}, fmt.Errorf("%w: got %d", inventory.ErrInvalidQuantity, req.Qty)
	}
	if req.ReplenPoint != nil && *req.ReplenPoint < 0 {
		return models.StockRow{}, fmt.Errorf("%w: replen point must not be negative", ErrInvalidInput)
	}

	lookup, err := s.LookupItem(ctx, req.ItemID)
	if err != nil {
		return models.StockRow{}, err
	}

	replenPoint := lookup.DefaultReplenPoint
	if req.ReplenPoint != nil {
		replenPoint = *req.ReplenPoint
	}
	container := strings.TrimSpace(req.Container)
	if container == "" {
		container = models.NoContainer
	}

	now := s.timestamp()
	row := models.StockRow{
		ItemID:         lookup.Item.Barcode,
		ItemName:       lookup.Item.Description,
		Qty:            req.Qty,
		Location:       models.DockIn,
		Status:         models.StatusPendingPutaway,
		Container:      container,
		ReplenPoint:    replenPoint,
		UpdatedAt:      now,
		HasQty:         true,
		HasReplenPoint: true,
	}

	if err := s.stock.WriteRow(ctx, stockSheet, inventory.StockRowValues(row)); err != nil {
		return models.StockRow{}, fmt.Errorf("append received row: %w", err)
	}

	if err := s.logTransaction(ctx, models.TransactionLogEntry{
		Timestamp: now,
		Action:    models.ActionReceive,
		ItemID:    row.ItemID,
		Qty:       row.Qty,
		From:      "-",
		To:        models.DockIn,
		Actor:     s.actor(req.Operator),
	}); err != nil {
		return models.StockRow{}, err
	}

	s.logger.Info("stock received",
		zap.String("item_id", row.ItemID),
		zap.Int("qty", row.Qty),
		zap.String("container", container))
	return row, nil
}
