package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Cell addresses one matching cell by its 1-based row and column.
type Cell struct {
	Row   int
	Col   int
	Value string
}

// Repository defines the persistence operations supported by the Google Sheets adapter.
// Every operation is addressed by worksheet name; rows and columns are 1-based.
type Repository interface {
	WriteRow(ctx context.Context, sheet string, values []interface{}) error
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
	UpdateCell(ctx context.Context, sheet string, row, col int, value interface{}) error
	UpdateCells(ctx context.Context, sheet string, row int, values map[int]interface{}) error
	DeleteRow(ctx context.Context, sheet string, row int) error
	FindCells(ctx context.Context, sheet, value string) ([]Cell, error)
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// NewGoogleSheetRepository builds a Google Sheets backed repository for one spreadsheet.
func NewGoogleSheetRepository(ctx context.Context, credentialsPath, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID must not be empty")
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if credentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger.With(zap.String("spreadsheet_id", spreadsheetID)),
		sheetIDs:      make(map[string]int64),
	}, nil
}

// WriteRow appends the provided values after the last row of the worksheet.
// Values are stored as given so barcodes with leading zeros stay text.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheet string, values []interface{}) error {
	if sheet == "" {
		return fmt.Errorf("sheet must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheet, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into %s: %w", sheet, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("sheet", sheet))
	return nil
}

// ReadRange fetches a rectangular data range from the spreadsheet. A bare
// worksheet name returns every populated row.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

// UpdateCell overwrites a single cell.
func (r *GoogleSheetRepository) UpdateCell(ctx context.Context, sheet string, row, col int, value interface{}) error {
	a1, err := cellRange(sheet, row, col)
	if err != nil {
		return err
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err = r.service.Spreadsheets.Values.Update(r.spreadsheetID, a1, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update cell %s: %w", a1, err)
	}

	r.logger.Debug("cell updated", zap.String("range", a1))
	return nil
}

// UpdateCells overwrites several cells of one row in a single request.
// The map key is the 1-based column.
func (r *GoogleSheetRepository) UpdateCells(ctx context.Context, sheet string, row int, values map[int]interface{}) error {
	if len(values) == 0 {
		return nil
	}

	data := make([]*sheetsapi.ValueRange, 0, len(values))
	for col, value := range values {
		a1, err := cellRange(sheet, row, col)
		if err != nil {
			return err
		}
		data = append(data, &sheetsapi.ValueRange{Range: a1, Values: [][]interface{}{{value}}})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{ValueInputOption: "USER_ENTERED", Data: data}
	if _, err := r.service.Spreadsheets.Values.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update row %d of %s: %w", row, sheet, err)
	}

	r.logger.Debug("row cells updated", zap.String("sheet", sheet), zap.Int("row", row), zap.Int("cells", len(data)))
	return nil
}

// DeleteRow removes a row and shifts the rows below it up.
func (r *GoogleSheetRepository) DeleteRow(ctx context.Context, sheet string, row int) error {
	if row < 1 {
		return fmt.Errorf("row must be positive, got %d", row)
	}

	sheetID, err := r.sheetID(ctx, sheet)
	if err != nil {
		return err
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}

	if _, err := r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d of %s: %w", row, sheet, err)
	}

	r.logger.Debug("row deleted", zap.String("sheet", sheet), zap.Int("row", row))
	return nil
}

// FindCells returns every cell of the worksheet whose value equals value exactly.
func (r *GoogleSheetRepository) FindCells(ctx context.Context, sheet, value string) ([]Cell, error) {
	rows, err := r.ReadRange(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return MatchCells(rows, value), nil
}

// MatchCells scans rows for cells equal to value.
func MatchCells(rows [][]interface{}, value string) []Cell {
	var cells []Cell
	for i, row := range rows {
		for j, v := range row {
			if s := fmt.Sprint(v); s == value {
				cells = append(cells, Cell{Row: i + 1, Col: j + 1, Value: s})
			}
		}
	}
	return cells
}

func (r *GoogleSheetRepository) sheetID(ctx context.Context, sheet string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.sheetIDs[sheet]; ok {
		return id, nil
	}

	resp, err := r.service.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("load spreadsheet metadata: %w", err)
	}

	for _, s := range resp.Sheets {
		if s.Properties == nil {
			continue
		}
		r.sheetIDs[s.Properties.Title] = s.Properties.SheetId
	}

	id, ok := r.sheetIDs[sheet]
	if !ok {
		return 0, fmt.Errorf("worksheet %q not found", sheet)
	}
	return id, nil
}

func cellRange(sheet string, row, col int) (string, error) {
	if sheet == "" {
		return "", fmt.Errorf("sheet must not be empty")
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell address for row %d col %d: %w", row, col, err)
	}
	return fmt.Sprintf("%s!%s", sheet, name), nil
}
