// Package sheetstest provides an in-memory sheets.Repository for tests.
package sheetstest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mamadbah2/wms/internal/repository/sheets"
)

// Memory stores worksheets as string grids. Values are stringified on write,
// the way the Sheets API returns them with the default render option.
type Memory struct {
	mu     sync.Mutex
	sheets map[string][][]string

	// FailOn makes the named operation ("append", "update", "delete", "read")
	// return an error once; used to simulate partial failures.
	FailOn map[string]error
}

var _ sheets.Repository = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string][][]string), FailOn: make(map[string]error)}
}

// Seed replaces the content of a worksheet.
func (m *Memory) Seed(sheet string, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = append([]string(nil), r...)
	}
	m.sheets[sheet] = grid
}

// Rows returns a copy of a worksheet.
func (m *Memory) Rows(sheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.sheets[sheet]))
	for i, r := range m.sheets[sheet] {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (m *Memory) fail(op string) error {
	if err, ok := m.FailOn[op]; ok {
		delete(m.FailOn, op)
		return err
	}
	return nil
}

func (m *Memory) WriteRow(_ context.Context, sheet string, values []interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("append"); err != nil {
		return err
	}
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprint(v)
	}
	m.sheets[sheet] = append(m.sheets[sheet], row)
	return nil
}

func (m *Memory) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("read"); err != nil {
		return nil, err
	}
	sheet, _, _ := strings.Cut(sheetRange, "!")
	grid, ok := m.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("read range %s: worksheet not found", sheetRange)
	}
	out := make([][]interface{}, len(grid))
	for i, r := range grid {
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

func (m *Memory) UpdateCell(ctx context.Context, sheet string, row, col int, value interface{}) error {
	return m.UpdateCells(ctx, sheet, row, map[int]interface{}{col: value})
}

func (m *Memory) UpdateCells(_ context.Context, sheet string, row int, values map[int]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("update"); err != nil {
		return err
	}
	grid := m.sheets[sheet]
	if row < 1 {
		return fmt.Errorf("row must be positive, got %d", row)
	}
	for len(grid) < row {
		grid = append(grid, nil)
	}
	for col, v := range values {
		r := grid[row-1]
		for len(r) < col {
			r = append(r, "")
		}
		r[col-1] = fmt.Sprint(v)
		grid[row-1] = r
	}
	m.sheets[sheet] = grid
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, sheet string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return err
	}
	grid := m.sheets[sheet]
	if row < 1 || row > len(grid) {
		return fmt.Errorf("delete row %d of %s: out of range", row, sheet)
	}
	m.sheets[sheet] = append(grid[:row-1], grid[row:]...)
	return nil
}

func (m *Memory) FindCells(ctx context.Context, sheet, value string) ([]sheets.Cell, error) {
	rows, err := m.ReadRange(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return sheets.MatchCells(rows, value), nil
}
