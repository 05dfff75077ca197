// Package inventory holds the stock guard rules and the mapping between
// worksheet rows and domain records. Nothing here performs I/O.
package inventory

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/wms/internal/domain/models"
)

var (
	// ErrLocationNotFound indicates the target code is missing from the location master.
	ErrLocationNotFound = errors.New("location not found")
	// ErrReserveOccupied indicates a reserve slot already holds a stock row.
	ErrReserveOccupied = errors.New("reserve location already occupied")
	// ErrInvalidQuantity indicates a quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInsufficientStock indicates a move larger than the source row holds.
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
)

// ValidatePlacement checks that target exists and, when it is a reserve slot,
// that no stock row currently sits there.
func ValidatePlacement(target string, locations models.LocationMap, stock []models.StockRow) error {
	locType, ok := locations.Type(target)
	if !ok {
		return fmt.Errorf("%w: %q", ErrLocationNotFound, target)
	}
	if locType != models.LocationReserve {
		return nil
	}
	if LocationOccupied(stock, target) {
		return fmt.Errorf("%w: %q", ErrReserveOccupied, target)
	}
	return nil
}

// LocationOccupied reports whether any stock row sits at code.
func LocationOccupied(stock []models.StockRow, code string) bool {
	for _, row := range stock {
		if row.Location == code {
			return true
		}
	}
	return false
}

// SuggestReplenishQty returns the threshold gap of the pick row, clamped to
// what the reserve row holds and to a minimum of one.
func SuggestReplenishQty(pick, reserve models.StockRow) int {
	suggestion := pick.ReplenPoint - pick.Qty
	if suggestion > reserve.Qty {
		suggestion = reserve.Qty
	}
	if suggestion < 1 {
		suggestion = 1
	}
	return suggestion
}

// ValidateMoveQty enforces 1 <= qty <= available for picks and replenishments.
func ValidateMoveQty(qty, available int) error {
	if qty < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	if qty > available {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, qty, available)
	}
	return nil
}

// Decrement is the outcome of removing quantity from a row. A row that
// reaches zero is deleted rather than kept at zero.
type Decrement struct {
	Remaining int
	Delete    bool
}

// ApplyDecrement subtracts qty from current.
func ApplyDecrement(current, qty int) (Decrement, error) {
	if err := ValidateMoveQty(qty, current); err != nil {
		return Decrement{}, err
	}
	remaining := current - qty
	return Decrement{Remaining: remaining, Delete: remaining == 0}, nil
}

// ReplenishmentQueue lists pick-face rows at or below their replen point.
func ReplenishmentQueue(stock []models.StockRow, locations models.LocationMap) []models.StockRow {
	var queue []models.StockRow
	for _, row := range stock {
		if t, ok := locations.Type(row.Location); !ok || t != models.LocationPick {
			continue
		}
		if row.NeedsReplenishment() {
			queue = append(queue, row)
		}
	}
	return queue
}

// ReserveSources lists the reserve rows holding itemID.
func ReserveSources(stock []models.StockRow, locations models.LocationMap, itemID string) []models.StockRow {
	var sources []models.StockRow
	for _, row := range stock {
		if row.ItemID != itemID {
			continue
		}
		if t, ok := locations.Type(row.Location); ok && t == models.LocationReserve {
			sources = append(sources, row)
		}
	}
	return sources
}
