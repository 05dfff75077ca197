package warehouse

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

const defaultDestination = "CUSTOMER"

// ShipRequest dispatches picked quantity of an item.
type ShipRequest struct {
	ItemID      string
	Qty         int
	Destination string
	Operator    string
}

// PendingShipments returns the picked-but-unshipped quantity per item.
func (s *Service) PendingShipments(ctx context.Context) (map[string]int, error) {
	entries, err := s.TransactionLog(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.OutboundBalance(entries), nil
}

// ShipOut logs a shipment from the outbound area. The quantity may not exceed
// what has been picked and not yet shipped.
func (s *Service) ShipOut(ctx context.Context, req ShipRequest) (models.TransactionLogEntry, error) {
	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		return models.TransactionLogEntry{}, fmt.Errorf("%w: item is required", ErrInvalidInput)
	}

	pending, err := s.PendingShipments(ctx)
	if err != nil {
		return models.TransactionLogEntry{}, err
	}
	available, ok := pending[itemID]
	if !ok {
		return models.TransactionLogEntry{}, fmt.Errorf("%w: %s", ErrNothingToShip, itemID)
	}
	if err := inventory.ValidateMoveQty(req.Qty, available); err != nil {
		return models.TransactionLogEntry{}, err
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		destination = defaultDestination
	}

	entry := models.TransactionLogEntry{
		Timestamp: s.timestamp(),
		Action:    models.ActionShipOut,
		ItemID:    itemID,
		Qty:       req.Qty,
		From:      models.OutLocation,
		To:        destination,
		Actor:     s.actor(req.Operator),
	}
	if err := s.logTransaction(ctx, entry); err != nil {
		return models.TransactionLogEntry{}, err
	}

	s.logger.Info("stock shipped", zap.String("item_id", itemID), zap.Int("qty", req.Qty), zap.String("destination", destination))
	return entry, nil
}
