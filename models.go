package main

import (
	"encoding/json"
	"time"

	"github.com/Tiliavir/mvw-cashier-app/internal/cart"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// EventSummary represents one row of the event list
type EventSummary struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	Closed    bool          `json:"closed"`
	Active    bool          `json:"active"`
	ItemCount int           `json:"itemCount"`
	Totals    models.Totals `json:"totals"`
}

// ItemRequest represents the request structure for creating or editing an
// item. Price may be a number or a string; unparseable input counts as 0.
type ItemRequest struct {
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price" swaggertype:"string" example:"2.50"`
	Color string          `json:"color" example:"#e67e22"`
}

// CreateEventRequest represents the request structure for creating an event.
// Example seeds the catalog with the preset items when Items is empty; a
// blank name then falls back to the preset's name.
type CreateEventRequest struct {
	Name    string        `json:"name"`
	Items   []ItemRequest `json:"items"`
	Example bool          `json:"example"`
}

// SetActiveRequest represents the request structure for switching events
type SetActiveRequest struct {
	EventID string `json:"eventId"`
}

// ReorderRequest lists every item id of an event in its new order
type ReorderRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// MoveRequest names the item whose position the moved item takes
type MoveRequest struct {
	TargetID string `json:"targetId"`
}

// PaymentRequest represents the amounts typed in at the register. A
// missing or blank tip means no tip was entered; "0" is an entered zero.
type PaymentRequest struct {
	Received json.RawMessage `json:"received" swaggertype:"string" example:"10.00"`
	Tip      json.RawMessage `json:"tip,omitempty" swaggertype:"string" example:"0.50"`
}

// CartLine represents one selected item with its subtotal
type CartLine struct {
	ItemID   string       `json:"itemId"`
	Name     string       `json:"name"`
	Color    string       `json:"color"`
	Price    money.Amount `json:"price"`
	Quantity int          `json:"quantity"`
	Subtotal money.Amount `json:"subtotal"`
}

// RegisterView represents the register screen of the active event
type RegisterView struct {
	EventID   string        `json:"eventId"`
	EventName string        `json:"eventName"`
	Items     []models.Item `json:"items"`
	Cart      cart.Cart     `json:"cart"`
	Lines     []CartLine    `json:"lines"`
	Total     money.Amount  `json:"total"`
	Display   string        `json:"display"`
}

// QuoteView represents the payment figures with their display strings
type QuoteView struct {
	cart.Quote
	Display QuoteDisplay `json:"display"`
}

// QuoteDisplay holds the formatted figures shown to the operator
type QuoteDisplay struct {
	Total   string `json:"total"`
	Change  string `json:"change"`
	Tip     string `json:"tip"`
	Balance string `json:"balance"`
}

// FinalizeResponse represents a recorded sale
type FinalizeResponse struct {
	Transaction models.Transaction `json:"transaction"`
	Quote       QuoteView          `json:"quote"`
}

// EventStats represents the statistics screen of one event
type EventStats struct {
	EventID   string               `json:"eventId"`
	Name      string               `json:"name"`
	Closed    bool                 `json:"closed"`
	Totals    models.Totals        `json:"totals"`
	ItemsSold []models.ItemSales   `json:"itemsSold"`
	Hourly    []models.HourlySales `json:"hourly"`
	Display   StatsDisplay         `json:"display"`
}

// StatsDisplay holds the formatted headline figures
type StatsDisplay struct {
	Revenue string `json:"revenue"`
	Tip     string `json:"tip"`
	Average string `json:"average"`
}
