package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/wms/internal/domain/models"
)

// TimestampLayout is the format of every timestamp cell.
const TimestampLayout = "2006-01-02 15:04:05"

// Column positions of the Current_Stock worksheet.
const (
	ColItemID = iota + 1
	ColItemName
	ColQty
	ColLocation
	ColStatus
	ColContainer
	ColReplenPoint
	ColTimestamp
)

// ParseStockRows maps worksheet values to stock rows. The first row is a
// header. Blank rows are skipped but still counted so SheetRow stays exact.
func ParseStockRows(values [][]interface{}, loc *time.Location) []models.StockRow {
	if len(values) < 2 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	rows := make([]models.StockRow, 0, len(values)-1)
	for i, raw := range values[1:] {
		itemID := cellString(raw, ColItemID)
		if itemID == "" {
			continue
		}

		row := models.StockRow{
			SheetRow:  i + 2,
			ItemID:    itemID,
			ItemName:  cellString(raw, ColItemName),
			Location:  cellString(raw, ColLocation),
			Status:    cellString(raw, ColStatus),
			Container: cellString(raw, ColContainer),
		}
		if qty, err := parseInt(cellValue(raw, ColQty)); err == nil {
			row.Qty, row.HasQty = qty, true
		}
		if rp, err := parseInt(cellValue(raw, ColReplenPoint)); err == nil {
			row.ReplenPoint, row.HasReplenPoint = rp, true
		}
		if ts, err := time.ParseInLocation(TimestampLayout, cellString(raw, ColTimestamp), loc); err == nil {
			row.UpdatedAt = ts
		}
		rows = append(rows, row)
	}
	return rows
}

// StockRowValues is the positional representation appended to the worksheet.
func StockRowValues(row models.StockRow) []interface{} {
	container := row.Container
	if container == "" {
		container = models.NoContainer
	}
	return []interface{}{
		row.ItemID,
		row.ItemName,
		row.Qty,
		row.Location,
		row.Status,
		container,
		row.ReplenPoint,
		row.UpdatedAt.Format(TimestampLayout),
	}
}

// FindStockRow returns the first row of itemID at location.
func FindStockRow(stock []models.StockRow, itemID, location string) (models.StockRow, bool) {
	for _, row := range stock {
		if row.ItemID == itemID && row.Location == location {
			return row, true
		}
	}
	return models.StockRow{}, false
}

// RowsAt lists the rows sitting at location.
func RowsAt(stock []models.StockRow, location string) []models.StockRow {
	var out []models.StockRow
	for _, row := range stock {
		if row.Location == location {
			out = append(out, row)
		}
	}
	return out
}

// RowsOf lists the rows holding itemID.
func RowsOf(stock []models.StockRow, itemID string) []models.StockRow {
	var out []models.StockRow
	for _, row := range stock {
		if row.ItemID == itemID {
			out = append(out, row)
		}
	}
	return out
}

// ItemIDs lists distinct item ids in first-seen order.
func ItemIDs(stock []models.StockRow) []string {
	seen := make(map[string]struct{}, len(stock))
	var ids []string
	for _, row := range stock {
		if _, ok := seen[row.ItemID]; ok {
			continue
		}
		seen[row.ItemID] = struct{}{}
		ids = append(ids, row.ItemID)
	}
	return ids
}

func cellValue(row []interface{}, col int) interface{} {
	if col-1 < len(row) {
		return row[col-1]
	}
	return nil
}

func cellString(row []interface{}, col int) string {
	v := cellValue(row, col)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// ParseQuantity parses a quantity cell.
func ParseQuantity(value string) (int, error) {
	return parseInt(value)
}

// parseInt accepts integral numbers, including "12.0" as written by
// spreadsheet number formats.
func parseInt(value interface{}) (int, error) {
	if value == nil {
		return 0, fmt.Errorf("empty numeric value")
	}
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	if n, err := strconv.Atoi(str); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("non-integral quantity %q", str)
	}
	return int(f), nil
}
