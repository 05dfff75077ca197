package models

import "time"

// ReplenishmentTask is one pick-face row waiting for stock from reserve.
type ReplenishmentTask struct {
	ItemID      string `bson:"item_id" json:"item_id"`
	ItemName    string `bson:"item_name" json:"item_name"`
	Location    string `bson:"location" json:"location"`
	Qty         int    `bson:"qty" json:"qty"`
	ReplenPoint int    `bson:"replen_point" json:"replen_point"`
	ReserveQty  int    `bson:"reserve_qty" json:"reserve_qty"`
}

// ReplenishmentSnapshot is the archived state of the replenishment queue.
type ReplenishmentSnapshot struct {
	TakenAt   time.Time           `bson:"taken_at" json:"taken_at"`
	Tasks     []ReplenishmentTask `bson:"tasks" json:"tasks"`
	Notified  bool                `bson:"notified" json:"notified"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// OutboundMessageRequest represents a text notification sent to an operator.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}
