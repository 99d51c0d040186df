// Package cart holds the selection for the sale currently being rung up
// and turns it into a transaction. A cart is never persisted.
package cart

import (
	"sort"
	"time"

	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// Cart maps item ids to selected quantities. It never holds a zero or
// negative quantity.
type Cart map[string]int

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// Add returns a copy of c with one more of itemID.
func (c Cart) Add(itemID string) Cart {
	next := c.clone()
	next[itemID]++
	return next
}

// DecrementOrRemove returns a copy of c with one less of itemID. The last
// one removes the entry.
func (c Cart) DecrementOrRemove(itemID string) Cart {
	next := c.clone()
	if next[itemID] > 1 {
		next[itemID]--
	} else {
		delete(next, itemID)
	}
	return next
}

// Reset returns an empty cart.
func (c Cart) Reset() Cart {
	return New()
}

// HasItems reports whether any entry has a positive quantity.
func (c Cart) HasItems() bool {
	for _, quantity := range c {
		if quantity > 0 {
			return true
		}
	}
	return false
}

// Count is the number of units selected.
func (c Cart) Count() int {
	n := 0
	for _, quantity := range c {
		if quantity > 0 {
			n += quantity
		}
	}
	return n
}

// Lines lists the positive entries as line items, sorted by item id.
func (c Cart) Lines() []models.LineItem {
	lines := make([]models.LineItem, 0, len(c))
	for itemID, quantity := range c {
		if quantity > 0 {
			lines = append(lines, models.LineItem{ItemID: itemID, Quantity: quantity})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ItemID < lines[j].ItemID
	})
	return lines
}

func (c Cart) clone() Cart {
	next := make(Cart, len(c)+1)
	for id, quantity := range c {
		next[id] = quantity
	}
	return next
}

// Quote holds the figures shown while taking payment.
type Quote struct {
	Total     money.Amount `json:"total"`
	Received  money.Amount `json:"received"`
	Change    money.Amount `json:"change"`
	Tip       money.Amount `json:"tip"`
	Balance   money.Amount `json:"balance"`
	Underpaid bool         `json:"underpaid"`
}

// Calculate prices the cart against prices. A negative received amount
// counts as nothing received. A nil manualTip means the
// operator entered no tip, so change and tip follow automatically. A
// non-nil manualTip, zero included, takes precedence and change becomes
// the residual.
func Calculate(c Cart, prices map[string]money.Amount, received money.Amount, manualTip *money.Amount) Quote {
	total := money.Total(c, prices)
	q := Quote{
		Total:     total,
		Received:  received.NonNegative(),
		Balance:   money.Balance(total, received),
		Underpaid: money.IsUnderpaid(total, received),
	}
	if manualTip != nil {
		q.Tip = manualTip.NonNegative()
		if received.IsNegative() {
			q.Tip = money.Zero
		}
		q.Change = money.ChangeForTip(total, received, q.Tip)
		return q
	}
	q.Change = money.Change(total, received)
	q.Tip = money.Tip(total, received, q.Change)
	return q
}

// Finalize turns the cart into a transaction ready to append to the event.
// It fails with models.ErrEmptyCart when nothing is selected.
func Finalize(c Cart, prices map[string]money.Amount, received money.Amount, manualTip *money.Amount) (models.Transaction, Quote, error) {
	if !c.HasItems() {
		return models.Transaction{}, Quote{}, models.ErrEmptyCart
	}
	q := Calculate(c, prices, received, manualTip)
	tx := models.Transaction{
		Timestamp: time.Now().UTC(),
		Items:     c.Lines(),
		Total:     q.Total,
		Received:  q.Received,
		Change:    q.Change,
		Tip:       q.Tip,
	}
	return tx, q, nil
}
