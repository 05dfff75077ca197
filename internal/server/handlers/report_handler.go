package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Reporter builds stock exports and replenishment alerts.
type Reporter interface {
	ExportStock(ctx context.Context) ([]byte, error)
	ReplenishmentAlert(ctx context.Context) (models.ReplenishmentSnapshot, error)
	ReplenishmentHistory(ctx context.Context, limit int) ([]models.ReplenishmentSnapshot, error)
}

// ReportHandler serves exports and on-demand alerts.
type ReportHandler struct {
	reports Reporter
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reports Reporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, logger: logger, now: time.Now}
}

// ExportStock streams current stock as an xlsx download.
func (h *ReportHandler) ExportStock(c *gin.Context) {
	data, err := h.reports.ExportStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "stock export failed", err)
		return
	}

	name := fmt.Sprintf("stock_%s.xlsx", h.now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ReplenishmentAlert evaluates the queue now and notifies if needed.
func (h *ReportHandler) ReplenishmentAlert(c *gin.Context) {
	snapshot, err := h.reports.ReplenishmentAlert(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "replenishment alert failed", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ReplenishmentHistory lists archived alert snapshots.
func (h *ReportHandler) ReplenishmentHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = v
	}

	snapshots, err := h.reports.ReplenishmentHistory(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, "failed to load replenishment history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}
