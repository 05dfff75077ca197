package warehouse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/photostore"
)

const (
	noImage       = "-"
	photoMimeType = "image/jpeg"
)

// AddItemResult reports the stored item and any rows that already used the barcode.
type AddItemResult struct {
	Item          models.Item `json:"item"`
	DuplicateRows []int       `json:"duplicate_rows,omitempty"`
}

// AddItem uploads the optional photo and appends the item to the item master.
// A barcode already present is reported but the row is appended anyway.
func (s *Service) AddItem(ctx context.Context, in models.NewItem, photo io.Reader) (AddItemResult, error) {
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Description = strings.TrimSpace(in.Description)
	if in.Barcode == "" || in.Description == "" {
		return AddItemResult{}, fmt.Errorf("%w: barcode and name are required", ErrInvalidInput)
	}
	if in.ReplenPoint < 1 {
		return AddItemResult{}, fmt.Errorf("%w: replen point must be at least 1", ErrInvalidInput)
	}
	if photo != nil && s.photos == nil {
		return AddItemResult{}, ErrPhotoStoreUnavailable
	}

	now := s.timestamp()
	item := models.Item{
		Barcode:     in.Barcode,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		ImageLink:   noImage,
		ReplenPoint: in.ReplenPoint,
		CreatedAt:   now,
	}

	if photo != nil {
		data, err := photostore.PrepareJPEG(photo)
		if err != nil {
			return AddItemResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		name := fmt.Sprintf("%s_%s.jpg", item.Barcode, now.Format("20060102_150405"))
		id, err := s.photos.Save(ctx, name, photoMimeType, bytes.NewReader(data))
		if err != nil {
			return AddItemResult{}, err
		}
		item.ImageLink = s.photos.Link(id)
	}

	duplicates, err := s.catalog.ExistingRows(ctx, item.Barcode)
	if err != nil {
		return AddItemResult{}, err
	}
	if len(duplicates) > 0 {
		s.logger.Warn("barcode already in item master, appending anyway",
			zap.String("barcode", item.Barcode),
			zap.Ints("rows", duplicates))
	}

	if err := s.catalog.AppendItem(ctx, item); err != nil {
		return AddItemResult{}, err
	}

	s.logger.Info("item added", zap.String("barcode", item.Barcode), zap.Bool("photo", item.ImageLink != noImage))
	return AddItemResult{Item: item, DuplicateRows: duplicates}, nil
}
