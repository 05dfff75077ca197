package reporting

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/wms/internal/domain/models"
	"github.com/mamadbah2/wms/internal/service/inventory"
)

const exportSheet = "Current_Stock"

var exportHeader = []string{"Item_ID", "Item_Name", "Qty", "Location", "Status", "Container", "Replen_Point", "Timestamp"}

// ExportStock renders current stock as an xlsx workbook.
func (s *Service) ExportStock(ctx context.Context) ([]byte, error) {
	rows, err := s.stock.CurrentStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current stock: %w", err)
	}
	return BuildStockXLSX(rows)
}

// BuildStockXLSX writes one header row and one row per stock row.
func BuildStockXLSX(rows []models.StockRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		values := inventory.StockRowValues(row)
		if row.UpdatedAt.IsZero() {
			values[inventory.ColTimestamp-1] = ""
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
