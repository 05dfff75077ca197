package models

import "time"

const (
	// DockIn is the staging location every received row starts at.
	DockIn = "DOCK_IN"
	// OutLocation is the virtual destination of picked stock.
	OutLocation = "OUT"

	StatusPendingPutaway = "Pending Putaway"
	StatusAvailable      = "Available"

	// NoContainer is stored when a receipt has no container or pallet id.
	NoContainer = "-"
)

// StockRow is one quantity of one item at one location.
// SheetRow is the 1-based row number in the stock worksheet.
type StockRow struct {
	SheetRow    int       `json:"sheet_row"`
	ItemID      string    `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Qty         int       `json:"qty"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Container   string    `json:"container"`
	ReplenPoint int       `json:"replen_point"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`

	// HasQty and HasReplenPoint are false when the cell was not numeric.
	HasQty         bool `json:"-"`
	HasReplenPoint bool `json:"-"`
}

// NeedsReplenishment reports whether the row sits at or below its threshold.
func (r StockRow) NeedsReplenishment() bool {
	return r.HasQty && r.HasReplenPoint && r.Qty <= r.ReplenPoint
}
