package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/wms/internal/domain/models"
)

var testLocations = models.LocationMap{
	"DOCK_IN": "DOCK",
	"A-01":    models.LocationPick,
	"A-02":    models.LocationPick,
	"R-01":    models.LocationReserve,
	"R-02":    models.LocationReserve,
}

func stockRow(item, loc string, qty, rp int) models.StockRow {
	return models.StockRow{ItemID: item, Location: loc, Qty: qty, ReplenPoint: rp, HasQty: true, HasReplenPoint: true}
}

func TestValidatePlacement(t *testing.T) {
	stock := []models.StockRow{
		stockRow("A1", "R-01", 50, 0),
		stockRow("A1", "A-01", 2, 10),
	}

	tests := []struct {
		name    string
		target  string
		wantErr error
	}{
		{name: "occupied reserve rejected", target: "R-01", wantErr: ErrReserveOccupied},
		{name: "empty reserve accepted", target: "R-02"},
		{name: "occupied pick accepted", target: "A-01"},
		{name: "unknown location", target: "Z-99", wantErr: ErrLocationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlacement(tt.target, testLocations, stock)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePlacementEveryOccupiedReserve(t *testing.T) {
	var stock []models.StockRow
	for code, typ := range testLocations {
		if typ == models.LocationReserve {
			stock = append(stock, stockRow("X", code, 1, 0))
		}
	}
	for code, typ := range testLocations {
		if typ != models.LocationReserve {
			continue
		}
		assert.ErrorIs(t, ValidatePlacement(code, testLocations, stock), ErrReserveOccupied, code)
	}
}

func TestSuggestReplenishQty(t *testing.T) {
	tests := []struct {
		name    string
		pick    models.StockRow
		reserve models.StockRow
		want    int
	}{
		{name: "threshold gap", pick: stockRow("A1", "A-01", 2, 10), reserve: stockRow("A1", "R-01", 50, 0), want: 8},
		{name: "clamped to reserve", pick: stockRow("A1", "A-01", 0, 30), reserve: stockRow("A1", "R-01", 12, 0), want: 12},
		{name: "minimum one", pick: stockRow("A1", "A-01", 10, 10), reserve: stockRow("A1", "R-01", 5, 0), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestReplenishQty(tt.pick, tt.reserve))
		})
	}
}

func TestValidateMoveQty(t *testing.T) {
	assert.NoError(t, ValidateMoveQty(1, 50))
	assert.NoError(t, ValidateMoveQty(50, 50))
	assert.ErrorIs(t, ValidateMoveQty(51, 50), ErrInsufficientStock)
	assert.ErrorIs(t, ValidateMoveQty(0, 50), ErrInvalidQuantity)
	assert.ErrorIs(t, ValidateMoveQty(-3, 50), ErrInvalidQuantity)
}

func TestApplyDecrement(t *testing.T) {
	for current := 1; current <= 6; current++ {
		for qty := 1; qty <= current; qty++ {
			d, err := ApplyDecrement(current, qty)
			require.NoError(t, err)
			assert.Equal(t, current-qty, d.Remaining)
			assert.Equal(t, current == qty, d.Delete)
		}
	}

	_, err := ApplyDecrement(3, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestReplenishmentQueueAndSources(t *testing.T) {
	stock := []models.StockRow{
		stockRow("A1", "A-01", 2, 10),
		stockRow("A1", "R-01", 50, 0),
		stockRow("B2", "A-02", 20, 5),
		stockRow("C3", "DOCK_IN", 1, 9),
		{ItemID: "D4", Location: "A-02", ReplenPoint: 5, HasReplenPoint: true},
	}

	queue := ReplenishmentQueue(stock, testLocations)
	require.Len(t, queue, 1)
	assert.Equal(t, "A1", queue[0].ItemID)

	sources := ReserveSources(stock, testLocations, "A1")
	require.Len(t, sources, 1)
	assert.Equal(t, "R-01", sources[0].Location)
	assert.Empty(t, ReserveSources(stock, testLocations, "B2"))
}
