// Package events covers the lifetime of a sales event and the statistics
// derived from its transaction history.
package events

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/mvw-cashier-app/internal/catalog"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// Create starts an open event with an empty catalog and history.
func Create(name string) (models.Event, error) {
	if strings.TrimSpace(name) == "" {
		return models.Event{}, models.NewValidationError("name", "cannot be empty")
	}
	return models.Event{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		CreatedAt:    time.Now().UTC(),
		Items:        []models.Item{},
		Transactions: []models.Transaction{},
	}, nil
}

// AddTransaction appends tx. Its figures are taken as given.
func AddTransaction(event models.Event, tx models.Transaction) models.Event {
	txs := make([]models.Transaction, 0, len(event.Transactions)+1)
	txs = append(txs, event.Transactions...)
	event.Transactions = append(txs, tx)
	return event
}

// Close marks the event closed. There is no way back.
func Close(event models.Event) models.Event {
	event.Closed = true
	return event
}

// Verify recomputes the total of tx from the event's current prices.
func Verify(event models.Event, tx models.Transaction) error {
	cart := make(map[string]int, len(tx.Items))
	for _, line := range tx.Items {
		cart[line.ItemID] += line.Quantity
	}
	if want := money.Total(cart, catalog.Prices(event.Items)); want != tx.Total {
		return fmt.Errorf("%w: expected %s, got %s", models.ErrTotalMismatch, want, tx.Total)
	}
	return nil
}

// Totals sums revenue and tips over all transactions.
func Totals(event models.Event) models.Totals {
	totals := models.Totals{TransactionCount: len(event.Transactions)}
	for _, tx := range event.Transactions {
		totals.Revenue = totals.Revenue.Add(tx.Total)
		totals.Tip = totals.Tip.Add(tx.Tip)
	}
	return totals
}

// ItemsSold groups sold quantities by item. Lines referencing items that no
// longer exist are skipped. Revenue uses each item's current price, so a
// price edit rewrites past figures too.
func ItemsSold(event models.Event) map[string]models.ItemSales {
	byID := catalog.IndexByID(event.Items)
	sold := make(map[string]models.ItemSales)
	for _, tx := range event.Transactions {
		for _, line := range tx.Items {
			item, ok := byID[line.ItemID]
			if !ok {
				continue
			}
			entry, ok := sold[line.ItemID]
			if !ok {
				entry = models.ItemSales{ItemID: item.ID, Name: item.Name}
			}
			entry.Quantity += line.Quantity
			entry.Revenue = entry.Revenue.Add(item.Price.Mul(line.Quantity))
			sold[line.ItemID] = entry
		}
	}
	return sold
}

// ItemsSoldRanked lists ItemsSold by quantity, best seller first. Ties keep
// catalog order.
func ItemsSoldRanked(event models.Event) []models.ItemSales {
	sold := ItemsSold(event)
	ranked := make([]models.ItemSales, 0, len(sold))
	for _, item := range event.Items {
		if entry, ok := sold[item.ID]; ok {
			ranked = append(ranked, entry)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})
	return ranked
}

// Hourly buckets transactions by UTC clock hour, oldest hour first.
func Hourly(event models.Event) []models.HourlySales {
	buckets := make(map[time.Time]*models.HourlySales)
	for _, tx := range event.Transactions {
		hour := tx.Timestamp.UTC().Truncate(time.Hour)
		bucket, ok := buckets[hour]
		if !ok {
			bucket = &models.HourlySales{Hour: hour, Label: hour.Format("15:04")}
			buckets[hour] = bucket
		}
		bucket.Count++
		bucket.Revenue = bucket.Revenue.Add(tx.Total)
	}

	hourly := make([]models.HourlySales, 0, len(buckets))
	for _, bucket := range buckets {
		hourly = append(hourly, *bucket)
	}
	sort.Slice(hourly, func(i, j int) bool {
		return hourly[i].Hour.Before(hourly[j].Hour)
	})
	return hourly
}

// NewestFirst returns a copy of events sorted by creation time, newest
// first.
func NewestFirst(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
