package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/config"
	"github.com/mamadbah2/wms/internal/domain/models"
	repo "github.com/mamadbah2/wms/internal/repository/sheets"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

const (
	itemSheet     = "Item_Master"
	locationSheet = "Location_Master"

	cacheKey = "all"

	// Location_Master: code in column 1, type in column 6.
	locationCodeCol = 0
	locationTypeCol = 5
)

// Item_Master columns as written by AddItem.
var itemColumns = struct {
	barcode, description, category, image, replenPoint, timestamp int
}{0, 1, 2, 6, 7, 8}

// Service serves the master spreadsheet with memoized reads.
type Service struct {
	repo      repo.Repository
	locations *expirable.LRU[string, models.LocationMap]
	items     *expirable.LRU[string, []models.Item]
	tz        *time.Location
	logger    *zap.Logger
}

// NewService wires a catalog backed by the master spreadsheet.
func NewService(repository repo.Repository, cfg config.CatalogConfig, tz *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tz == nil {
		tz = time.Local
	}
	return &Service{
		repo:      repository,
		locations: expirable.NewLRU[string, models.LocationMap](1, nil, cfg.LocationTTL),
		items:     expirable.NewLRU[string, []models.Item](1, nil, cfg.ItemTTL),
		tz:        tz,
		logger:    logger,
	}
}

// Locations returns the location type of every code in the location master.
func (s *Service) Locations(ctx context.Context) (models.LocationMap, error) {
	if cached, ok := s.locations.Get(cacheKey); ok {
		return cached, nil
	}

	rows, err := s.repo.ReadRange(ctx, locationSheet)
	if err != nil {
		return nil, fmt.Errorf("load location master: %w", err)
	}

	locations := make(models.LocationMap)
	for i, row := range rows {
		if i == 0 || len(row) <= locationTypeCol {
			continue
		}
		code := strings.TrimSpace(fmt.Sprint(row[locationCodeCol]))
		if code == "" {
			continue
		}
		locations[code] = models.LocationType(strings.ToUpper(strings.TrimSpace(fmt.Sprint(row[locationTypeCol]))))
	}

	s.locations.Add(cacheKey, locations)
	s.logger.Debug("location master loaded", zap.Int("locations", len(locations)))
	return locations, nil
}

// Items returns every item of the item master.
func (s *Service) Items(ctx context.Context) ([]models.Item, error) {
	if cached, ok := s.items.Get(cacheKey); ok {
		return cached, nil
	}

	rows, err := s.repo.ReadRange(ctx, itemSheet)
	if err != nil {
		return nil, fmt.Errorf("load item master: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := itemColumns
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(fmt.Sprint(h))) {
		case "barcode":
			cols.barcode = i
		case "description":
			cols.description = i
		case "category":
			cols.category = i
		case "image", "image_link":
			cols.image = i
		case "replen_point":
			cols.replenPoint = i
		case "timestamp":
			cols.timestamp = i
		}
	}

	items := make([]models.Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		barcode := cell(row, cols.barcode)
		if barcode == "" {
			continue
		}
		item := models.Item{
			Barcode:     barcode,
			Description: cell(row, cols.description),
			Category:    cell(row, cols.category),
			ImageLink:   cell(row, cols.image),
		}
		if rp, err := inventory.ParseQuantity(cell(row, cols.replenPoint)); err == nil {
			item.ReplenPoint = rp
		}
		if ts, err := time.ParseInLocation(inventory.TimestampLayout, cell(row, cols.timestamp), s.tz); err == nil {
			item.CreatedAt = ts
		}
		items = append(items, item)
	}

	s.items.Add(cacheKey, items)
	s.logger.Debug("item master loaded", zap.Int("items", len(items)))
	return items, nil
}

// FindItem looks an item up by barcode.
func (s *Service) FindItem(ctx context.Context, barcode string) (models.Item, bool, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return models.Item{}, false, err
	}
	for _, item := range items {
		if item.Barcode == barcode {
			return item, true, nil
		}
	}
	return models.Item{}, false, nil
}

// ExistingRows returns the item master rows whose cells equal barcode.
func (s *Service) ExistingRows(ctx context.Context, barcode string) ([]int, error) {
	cells, err := s.repo.FindCells(ctx, itemSheet, barcode)
	if err != nil {
		return nil, fmt.Errorf("search item master: %w", err)
	}
	rows := make([]int, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, c.Row)
	}
	return rows, nil
}

// AppendItem writes a new item row and drops the cached item list.
// Columns Zone, Rack and Level are left blank.
func (s *Service) AppendItem(ctx context.Context, item models.Item) error {
	values := []interface{}{
		item.Barcode,
		item.Description,
		item.Category,
		"", "", "",
		item.ImageLink,
		item.ReplenPoint,
		item.CreatedAt.Format(inventory.TimestampLayout),
	}
	if err := s.repo.WriteRow(ctx, itemSheet, values); err != nil {
		return fmt.Errorf("append item %s: %w", item.Barcode, err)
	}
	s.items.Purge()
	return nil
}

// Invalidate drops both cached reads.
func (s *Service) Invalidate() {
	s.items.Purge()
	s.locations.Purge()
}

func cell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
