package models

import "time"

// Item is one row of the item master, keyed by its barcode.
type Item struct {
	Barcode     string    `json:"barcode"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageLink   string    `json:"image_link,omitempty"`
	ReplenPoint int       `json:"replen_point"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// NewItem captures the input of the add-item flow.
type NewItem struct {
	Barcode     string
	Description string
	Category    string
	ReplenPoint int
}
