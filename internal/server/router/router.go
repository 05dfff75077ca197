package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters the router mounts.
type Handlers struct {
	Warehouse *handlers.WarehouseHandler
	Items     *handlers.ItemHandler
	Reports   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/barcode/decode", h.Items.DecodeBarcode)
	r.GET("/items/:barcode", h.Warehouse.LookupItem)
	r.POST("/items", h.Items.AddItem)

	r.POST("/receive", h.Warehouse.Receive)

	r.GET("/putaway/pending", h.Warehouse.PendingPutAway)
	r.POST("/putaway", h.Warehouse.PutAway)
	r.POST("/locations/:code/validate", h.Warehouse.ValidateLocation)

	r.GET("/replenishment/queue", h.Warehouse.ReplenishmentQueue)
	r.GET("/replenishment/sources", h.Warehouse.ReplenishmentSources)
	r.POST("/replenishment", h.Warehouse.Replenish)
	r.POST("/replenishment/alert", h.Reports.ReplenishmentAlert)
	r.GET("/replenishment/history", h.Reports.ReplenishmentHistory)

	r.GET("/stock", h.Warehouse.Stock)
	r.GET("/stock/export", h.Reports.ExportStock)
	r.GET("/picking/items", h.Warehouse.PickableItems)
	r.POST("/picking", h.Warehouse.Pick)

	r.GET("/shipping/pending", h.Warehouse.PendingShipments)
	r.POST("/shipping", h.Warehouse.ShipOut)

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
