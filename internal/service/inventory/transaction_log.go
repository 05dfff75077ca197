package inventory

import (
	"time"

	"github.com/mamadbah2/wms/internal/domain/models"
)

// Column positions of the Transaction_Log worksheet.
const (
	LogColTimestamp = iota + 1
	LogColAction
	LogColItem
	LogColQty
	LogColFrom
	LogColTo
	LogColActor
)

// LogEntryValues is the positional representation appended to the log.
func LogEntryValues(entry models.TransactionLogEntry) []interface{} {
	return []interface{}{
		entry.Timestamp.Format(TimestampLayout),
		string(entry.Action),
		entry.ItemID,
		entry.Qty,
		entry.From,
		entry.To,
		entry.Actor,
	}
}

// ParseLogEntries maps worksheet values to log entries, skipping the header
// and rows whose quantity is not numeric.
func ParseLogEntries(values [][]interface{}, loc *time.Location) []models.TransactionLogEntry {
	if len(values) < 2 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	entries := make([]models.TransactionLogEntry, 0, len(values)-1)
	for _, raw := range values[1:] {
		qty, err := parseInt(cellValue(raw, LogColQty))
		if err != nil {
			continue
		}
		ts, _ := time.ParseInLocation(TimestampLayout, cellString(raw, LogColTimestamp), loc)
		entries = append(entries, models.TransactionLogEntry{
			Timestamp: ts,
			Action:    models.Action(cellString(raw, LogColAction)),
			ItemID:    cellString(raw, LogColItem),
			Qty:       qty,
			From:      cellString(raw, LogColFrom),
			To:        cellString(raw, LogColTo),
			Actor:     cellString(raw, LogColActor),
		})
	}
	return entries
}

// OutboundBalance returns picked minus shipped quantity per item.
func OutboundBalance(entries []models.TransactionLogEntry) map[string]int {
	balance := make(map[string]int)
	for _, e := range entries {
		switch e.Action {
		case models.ActionPicking:
			balance[e.ItemID] += e.Qty
		case models.ActionShipOut:
			balance[e.ItemID] -= e.Qty
		}
	}
	for id, qty := range balance {
		if qty <= 0 {
			delete(balance, id)
		}
	}
	return balance
}
