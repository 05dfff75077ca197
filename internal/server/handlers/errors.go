package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/barcode"
	"github.com/mamadbah2/wms/internal/service/inventory"
	"github.com/mamadbah2/wms/internal/service/reporting"
	"github.com/mamadbah2/wms/internal/service/warehouse"
)

// statusFor maps workflow errors onto HTTP status codes. Anything unknown is
// treated as a failure of an upstream store.
func statusFor(err error) int {
	switch {
	case errors.Is(err, warehouse.ErrItemNotFound),
		errors.Is(err, warehouse.ErrStockRowNotFound),
		errors.Is(err, inventory.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrReserveOccupied),
		errors.Is(err, warehouse.ErrNothingToShip):
		return http.StatusConflict
	case errors.Is(err, warehouse.ErrInvalidInput),
		errors.Is(err, warehouse.ErrInvalidTarget),
		errors.Is(err, warehouse.ErrNoReserveStock),
		errors.Is(err, warehouse.ErrPhotoStoreUnavailable),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, barcode.ErrNoBarcode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, reporting.ErrHistoryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway {
		logger.Error(msg, zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(msg, zap.Error(err), zap.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
