package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/warehouse"
)

const (
	defaultItemReplenPoint = 10
	maxUploadBytes         = 20 << 20
)

// BarcodeDecoder extracts a barcode payload from an uploaded image.
type BarcodeDecoder interface {
	Decode(r io.Reader) (string, error)
}

// ItemHandler serves barcode decoding and item master registration.
type ItemHandler struct {
	svc     *warehouse.Service
	decoder BarcodeDecoder
	logger  *zap.Logger
}

// NewItemHandler constructs the HTTP handler adapter.
func NewItemHandler(svc *warehouse.Service, decoder BarcodeDecoder, logger *zap.Logger) *ItemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemHandler{svc: svc, decoder: decoder, logger: logger}
}

// DecodeBarcode reads the multipart "image" field and returns its barcode.
func (h *ItemHandler) DecodeBarcode(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, h.logger, err)
		return
	}
	f, err := file.Open()
	if err != nil {
		badRequest(c, h.logger, err)
		return
	}
	defer f.Close()

	code, err := h.decoder.Decode(f)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadGateway {
			// The image itself could not be read.
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("barcode decode failed", zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

// AddItem registers a new item from a multipart form with an optional photo.
func (h *ItemHandler) AddItem(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	replen := defaultItemReplenPoint
	if raw := strings.TrimSpace(c.PostForm("replen_point")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, h.logger, fmt.Errorf("replen_point: %w", err))
			return
		}
		replen = v
	}

	in := models.NewItem{
		Barcode:     c.PostForm("barcode"),
		Description: c.PostForm("name"),
		Category:    c.PostForm("category"),
		ReplenPoint: replen,
	}

	var photo io.Reader
	if file, err := c.FormFile("photo"); err == nil {
		f, err := file.Open()
		if err != nil {
			badRequest(c, h.logger, err)
			return
		}
		defer f.Close()
		photo = f
	}

	result, err := h.svc.AddItem(c.Request.Context(), in, photo)
	if err != nil {
		respondError(c, h.logger, "add item failed", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
