package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/service/warehouse"
)

// WarehouseHandler exposes the stock workflows over HTTP.
type WarehouseHandler struct {
	svc    *warehouse.Service
	logger *zap.Logger
}

// NewWarehouseHandler constructs the HTTP handler adapter.
func NewWarehouseHandler(svc *warehouse.Service, logger *zap.Logger) *WarehouseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehouseHandler{svc: svc, logger: logger}
}

type receiveBody struct {
	ItemID      string `json:"item_id" binding:"required"`
	Qty         int    `json:"qty" binding:"required"`
	ReplenPoint *int   `json:"replen_point"`
	Container   string `json:"container"`
	Operator    string `json:"operator"`
}

type putAwayBody struct {
	ItemID    string `json:"item_id" binding:"required"`
	Target    string `json:"target" binding:"required"`
	Container string `json:"container"`
	Operator  string `json:"operator"`
}

type replenishBody struct {
	ItemID      string `json:"item_id" binding:"required"`
	Source      string `json:"source" binding:"required"`
	Target      string `json:"target" binding:"required"`
	Qty         int    `json:"qty" binding:"required"`
	ReplenPoint *int   `json:"replen_point"`
	Operator    string `json:"operator"`
}

type pickBody struct {
	ItemID   string `json:"item_id" binding:"required"`
	Location string `json:"location" binding:"required"`
	Qty      int    `json:"qty" binding:"required"`
	Operator string `json:"operator"`
}

type shipBody struct {
	ItemID      string `json:"item_id" binding:"required"`
	Qty         int    `json:"qty" binding:"required"`
	Destination string `json:"destination"`
	Operator    string `json:"operator"`
}

// LookupItem returns the item master entry and the default replen point.
func (h *WarehouseHandler) LookupItem(c *gin.Context) {
	lookup, err := h.svc.LookupItem(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, h.logger, "item lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, lookup)
}

// Receive books stock onto the inbound dock.
func (h *WarehouseHandler) Receive(c *gin.Context) {
	var body receiveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	row, err := h.svc.Receive(c.Request.Context(), warehouse.ReceiveRequest{
		ItemID:      body.ItemID,
		Qty:         body.Qty,
		ReplenPoint: body.ReplenPoint,
		Container:   body.Container,
		Operator:    body.Operator,
	})
	if err != nil {
		respondError(c, h.logger, "receive failed", err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// PendingPutAway lists rows waiting on the dock.
func (h *WarehouseHandler) PendingPutAway(c *gin.Context) {
	rows, err := h.svc.PendingPutAway(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to list pending put-away", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// ValidateLocation checks a scanned location before put-away.
func (h *WarehouseHandler) ValidateLocation(c *gin.Context) {
	if err := h.svc.CheckPlacement(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, h.logger, "location rejected", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": c.Param("code"), "valid": true})
}

// PutAway moves a dock row to its shelf location.
func (h *WarehouseHandler) PutAway(c *gin.Context) {
	var body putAwayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	row, err := h.svc.PutAway(c.Request.Context(), warehouse.PutAwayRequest{
		ItemID:    body.ItemID,
		Target:    body.Target,
		Container: body.Container,
		Operator:  body.Operator,
	})
	if err != nil {
		respondError(c, h.logger, "put-away failed", err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// ReplenishmentQueue lists pick faces at or below their replen point.
func (h *WarehouseHandler) ReplenishmentQueue(c *gin.Context) {
	tasks, err := h.svc.ReplenishmentQueue(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to build replenishment queue", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// ReplenishmentSources lists reserve rows for one pick face.
func (h *WarehouseHandler) ReplenishmentSources(c *gin.Context) {
	plan, err := h.svc.PlanReplenishment(c.Request.Context(), c.Query("item_id"), c.Query("target"))
	if err != nil {
		respondError(c, h.logger, "failed to plan replenishment", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Replenish moves stock from reserve to a pick face.
func (h *WarehouseHandler) Replenish(c *gin.Context) {
	var body replenishBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	result, err := h.svc.Replenish(c.Request.Context(), warehouse.ReplenishRequest{
		ItemID:      body.ItemID,
		Source:      body.Source,
		Target:      body.Target,
		Qty:         body.Qty,
		ReplenPoint: body.ReplenPoint,
		Operator:    body.Operator,
	})
	if err != nil {
		respondError(c, h.logger, "replenishment failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stock lists current stock, optionally for one item.
func (h *WarehouseHandler) Stock(c *gin.Context) {
	ctx := c.Request.Context()
	itemID := c.Query("item_id")

	var err error
	var rows interface{}
	if itemID != "" {
		rows, err = h.svc.StockFor(ctx, itemID)
	} else {
		rows, err = h.svc.CurrentStock(ctx)
	}
	if err != nil {
		respondError(c, h.logger, "failed to read stock", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// PickableItems lists item ids present in stock.
func (h *WarehouseHandler) PickableItems(c *gin.Context) {
	items, err := h.svc.PickableItems(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to list pickable items", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Pick takes stock out of a location.
func (h *WarehouseHandler) Pick(c *gin.Context) {
	var body pickBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	result, err := h.svc.Pick(c.Request.Context(), warehouse.PickRequest{
		ItemID:   body.ItemID,
		Location: body.Location,
		Qty:      body.Qty,
		Operator: body.Operator,
	})
	if err != nil {
		respondError(c, h.logger, "pick failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PendingShipments returns picked but unshipped quantities.
func (h *WarehouseHandler) PendingShipments(c *gin.Context) {
	pending, err := h.svc.PendingShipments(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to list pending shipments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// ShipOut records a shipment.
func (h *WarehouseHandler) ShipOut(c *gin.Context) {
	var body shipBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	entry, err := h.svc.ShipOut(c.Request.Context(), warehouse.ShipRequest{
		ItemID:      body.ItemID,
		Qty:         body.Qty,
		Destination: body.Destination,
		Operator:    body.Operator,
	})
	if err != nil {
		respondError(c, h.logger, "ship-out failed", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
