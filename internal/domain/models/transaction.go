package models

import "time"

// Action names a transaction log entry.
type Action string

const (
	ActionReceive   Action = "RECEIVE"
	ActionPutAway   Action = "PUT_AWAY"
	ActionReplenish Action = "REPLENISH"
	ActionPicking   Action = "PICKING"
	ActionShipOut   Action = "SHIP_OUT"
)

// TransactionLogEntry is an append-only record of a stock movement.
type TransactionLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	ItemID    string    `json:"item_id"`
	Qty       int       `json:"qty"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Actor     string    `json:"actor"`
}
