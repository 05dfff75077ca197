package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/photostore"
	repo "github.com/mamadbah2/wms/internal/repository/sheets"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

const (
	stockSheet = "Current_Stock"
	logSheet   = "Transaction_Log"
)

var (
	// ErrItemNotFound indicates the barcode is absent from the item master.
	ErrItemNotFound = errors.New("item not found in master data")
	// ErrStockRowNotFound indicates no stock row matches the item and location.
	ErrStockRowNotFound = errors.New("stock row not found")
	// ErrNoReserveStock indicates the item has no reserve row to replenish from.
	ErrNoReserveStock = errors.New("no reserve stock for item")
	// ErrInvalidTarget indicates a replenishment target that is not a pick face.
	ErrInvalidTarget = errors.New("target is not a pick location")
	// ErrPhotoStoreUnavailable indicates a photo was supplied but uploads are disabled.
	ErrPhotoStoreUnavailable = errors.New("photo storage is not configured")
	// ErrNothingToShip indicates the item has no picked, unshipped quantity.
	ErrNothingToShip = errors.New("nothing picked to ship")
	// ErrInvalidInput indicates a missing required field.
	ErrInvalidInput = errors.New("invalid input")
)

// Catalog is the master data the workflows read and extend.
type Catalog interface {
	Locations(ctx context.Context) (models.LocationMap, error)
	FindItem(ctx context.Context, barcode string) (models.Item, bool, error)
	ExistingRows(ctx context.Context, barcode string) ([]int, error)
	AppendItem(ctx context.Context, item models.Item) error
}

// Service runs the receive, put-away, replenish, pick, ship and add-item workflows
// against the WMS spreadsheet. Each call is one sequential read-modify-write.
type Service struct {
	stock    repo.Repository
	catalog  Catalog
	photos   photostore.PhotoStore
	operator string
	tz       *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the workflow service. photos may be nil when uploads are disabled.
func NewService(stock repo.Repository, catalog Catalog, photos photostore.PhotoStore, operator string, tz *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tz == nil {
		tz = time.Local
	}
	return &Service{
		stock:    stock,
		catalog:  catalog,
		photos:   photos,
		operator: operator,
		tz:       tz,
		logger:   logger,
		now:      time.Now,
	}
}

// CurrentStock reads every stock row.
func (s *Service) CurrentStock(ctx context.Context) ([]models.StockRow, error) {
	values, err := s.stock.ReadRange(ctx, stockSheet)
	if err != nil {
		return nil, fmt.Errorf("load current stock: %w", err)
	}
	return inventory.ParseStockRows(values, s.tz), nil
}

// StockFor lists the rows of one item.
func (s *Service) StockFor(ctx context.Context, itemID string) ([]models.StockRow, error) {
	stock, err := s.CurrentStock(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.RowsOf(stock, itemID), nil
}

// TransactionLog reads every log entry with a numeric quantity.
func (s *Service) TransactionLog(ctx context.Context) ([]models.TransactionLogEntry, error) {
	values, err := s.stock.ReadRange(ctx, logSheet)
	if err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}
	return inventory.ParseLogEntries(values, s.tz), nil
}

func (s *Service) timestamp() time.Time {
	return s.now().In(s.tz)
}

func (s *Service) actor(requested string) string {
	if requested != "" {
		return requested
	}
	return s.operator
}

func (s *Service) logTransaction(ctx context.Context, entry models.TransactionLogEntry) error {
	if err := s.stock.WriteRow(ctx, logSheet, inventory.LogEntryValues(entry)); err != nil {
		s.logger.Error("stock changed but transaction log append failed",
			zap.String("action", string(entry.Action)),
			zap.String("item_id", entry.ItemID),
			zap.Int("qty", entry.Qty),
			zap.Error(err))
		return fmt.Errorf("append transaction log: %w", err)
	}
	return nil
}

// decrementRow removes qty from row, deleting it when it reaches zero.
func (s *Service) decrementRow(ctx context.Context, row models.StockRow, qty int) (inventory.Decrement, error) {
	if !row.HasQty {
		return inventory.Decrement{}, fmt.Errorf("%w: row %d has no numeric quantity", inventory.ErrInsufficientStock, row.SheetRow)
	}
	dec, err := inventory.ApplyDecrement(row.Qty, qty)
	if err != nil {
		return inventory.Decrement{}, err
	}

	if dec.Delete {
		if err := s.stock.DeleteRow(ctx, stockSheet, row.SheetRow); err != nil {
			return inventory.Decrement{}, fmt.Errorf("delete emptied row %d: %w", row.SheetRow, err)
		}
		return dec, nil
	}

	if err := s.stock.UpdateCell(ctx, stockSheet, row.SheetRow, inventory.ColQty, dec.Remaining); err != nil {
		return inventory.Decrement{}, fmt.Errorf("update quantity of row %d: %w", row.SheetRow, err)
	}
	return dec, nil
}
