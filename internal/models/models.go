package models

import (
	"time"

	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// Item represents a sellable catalog entry of one event
type Item struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Price money.Amount `json:"price"`
	Color string       `json:"color"`
}

// LineItem references an item of the owning event by id. The item may have
// been removed since; readers must tolerate a miss.
type LineItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Transaction represents one completed sale
type Transaction struct {
	Timestamp time.Time    `json:"timestamp"`
	Items     []LineItem   `json:"items"`
	Total     money.Amount `json:"total"`
	Received  money.Amount `json:"received"`
	Change    money.Amount `json:"change"`
	Tip       money.Amount `json:"tip"`
}

// Event represents one sales occasion with its own catalog and history
type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CreatedAt    time.Time     `json:"createdAt"`
	Items        []Item        `json:"items"`
	Transactions []Transaction `json:"transactions"`
	Closed       bool          `json:"closed"`
}

// State is the persisted root: every event plus the one open for selling.
// A nil ActiveEventID means no event is active.
type State struct {
	Events        []Event `json:"events"`
	ActiveEventID *string `json:"activeEventId"`
}

// Totals represents the aggregate figures of an event
type Totals struct {
	Revenue          money.Amount `json:"revenue"`
	Tip              money.Amount `json:"tip"`
	TransactionCount int          `json:"transactionCount"`
}

// ItemSales represents how much of one item an event sold
type ItemSales struct {
	ItemID   string       `json:"itemId"`
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Revenue  money.Amount `json:"revenue"`
}

// HourlySales represents the transactions of one clock hour
type HourlySales struct {
	Hour    time.Time    `json:"hour"`
	Label   string       `json:"label"`
	Count   int          `json:"count"`
	Revenue money.Amount `json:"revenue"`
}

// DefaultState returns the state of a first run.
func DefaultState() State {
	return State{Events: []Event{}}
}

// FindEvent returns the index of the event with the given id, or -1.
func (s State) FindEvent(id string) int {
	for i, e := range s.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// IsActive reports whether id is the active event.
func (s State) IsActive(id string) bool {
	return s.ActiveEventID != nil && *s.ActiveEventID == id
}
