package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.July, 4, hour, minute, 0, 0, time.UTC)
}

func festEvent() models.Event {
	return models.Event{
		ID:   "fest",
		Name: "Fest",
		Items: []models.Item{
			{ID: "beer", Name: "Bier", Price: 250},
			{ID: "sausage", Name: "Bratwurst", Price: 300},
			{ID: "deposit", Name: "Pfand-", Price: -200},
		},
		Transactions: []models.Transaction{},
	}
}

func TestCreate(t *testing.T) {
	t.Run("starts open and empty", func(t *testing.T) {
		event, err := Create("  Fest ")

		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "Fest", event.Name)
		assert.False(t, event.Closed)
		assert.Empty(t, event.Items)
		assert.Empty(t, event.Transactions)
		assert.NotNil(t, event.Items)
		assert.WithinDuration(t, time.Now(), event.CreatedAt, time.Minute)
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		_, err := Create(" ")

		assert.True(t, models.IsValidation(err))
	})
}

func TestAddTransaction(t *testing.T) {
	event := festEvent()
	tx := models.Transaction{Timestamp: at(18, 0), Items: []models.LineItem{{ItemID: "beer", Quantity: 1}}, Total: 250}

	updated := AddTransaction(event, tx)

	assert.Len(t, updated.Transactions, 1)
	assert.Empty(t, event.Transactions)
}

func TestClose(t *testing.T) {
	event := festEvent()

	closed := Close(event)

	assert.True(t, closed.Closed)
	assert.False(t, event.Closed)
	assert.True(t, Close(closed).Closed)
}

func TestVerify(t *testing.T) {
	event := festEvent()
	lines := []models.LineItem{{ItemID: "beer", Quantity: 2}, {ItemID: "deposit", Quantity: 1}}

	assert.NoError(t, Verify(event, models.Transaction{Items: lines, Total: 300}))

	err := Verify(event, models.Transaction{Items: lines, Total: 500})
	assert.True(t, errors.Is(err, models.ErrTotalMismatch))
}

func TestTotals(t *testing.T) {
	t.Run("empty history yields zeros", func(t *testing.T) {
		assert.Equal(t, models.Totals{}, Totals(festEvent()))
	})

	t.Run("sums totals and tips", func(t *testing.T) {
		event := festEvent()
		event = AddTransaction(event, models.Transaction{Total: 700, Tip: 50})
		event = AddTransaction(event, models.Transaction{Total: 10, Tip: 20})
		event = AddTransaction(event, models.Transaction{Total: 20})

		totals := Totals(event)

		assert.Equal(t, money.Amount(730), totals.Revenue)
		assert.Equal(t, money.Amount(70), totals.Tip)
		assert.Equal(t, 3, totals.TransactionCount)
	})
}

func TestItemsSold(t *testing.T) {
	t.Run("empty history yields an empty mapping", func(t *testing.T) {
		assert.Empty(t, ItemsSold(festEvent()))
	})

	t.Run("groups by item with current prices", func(t *testing.T) {
		event := festEvent()
		event = AddTransaction(event, models.Transaction{Items: []models.LineItem{
			{ItemID: "beer", Quantity: 2}, {ItemID: "sausage", Quantity: 1},
		}})
		event = AddTransaction(event, models.Transaction{Items: []models.LineItem{
			{ItemID: "beer", Quantity: 1}, {ItemID: "deposit", Quantity: 2},
		}})

		sold := ItemsSold(event)

		require.Len(t, sold, 3)
		assert.Equal(t, models.ItemSales{ItemID: "beer", Name: "Bier", Quantity: 3, Revenue: 750}, sold["beer"])
		assert.Equal(t, models.ItemSales{ItemID: "sausage", Name: "Bratwurst", Quantity: 1, Revenue: 300}, sold["sausage"])
		assert.Equal(t, money.Amount(-400), sold["deposit"].Revenue)
	})

	t.Run("price edits apply retroactively", func(t *testing.T) {
		event := festEvent()
		event = AddTransaction(event, models.Transaction{Items: []models.LineItem{{ItemID: "beer", Quantity: 2}}, Total: 500})
		event.Items[0].Price = 300

		assert.Equal(t, money.Amount(600), ItemsSold(event)["beer"].Revenue)
		assert.Equal(t, money.Amount(500), Totals(event).Revenue)
	})

	t.Run("stale item references are skipped", func(t *testing.T) {
		event := festEvent()
		event = AddTransaction(event, models.Transaction{Items: []models.LineItem{
			{ItemID: "removed", Quantity: 4}, {ItemID: "beer", Quantity: 1},
		}})

		var sold map[string]models.ItemSales
		require.NotPanics(t, func() { sold = ItemsSold(event) })
		assert.NotContains(t, sold, "removed")
		assert.Contains(t, sold, "beer")
	})
}

func TestItemsSoldRanked(t *testing.T) {
	event := festEvent()
	event = AddTransaction(event, models.Transaction{Items: []models.LineItem{
		{ItemID: "sausage", Quantity: 3}, {ItemID: "beer", Quantity: 1}, {ItemID: "deposit", Quantity: 1},
	}})

	ranked := ItemsSoldRanked(event)

	require.Len(t, ranked, 3)
	assert.Equal(t, "sausage", ranked[0].ItemID)
	assert.Equal(t, "beer", ranked[1].ItemID)
	assert.Equal(t, "deposit", ranked[2].ItemID)
}

func TestHourly(t *testing.T) {
	t.Run("no transactions yields no buckets", func(t *testing.T) {
		assert.Empty(t, Hourly(festEvent()))
	})

	t.Run("buckets by hour in order", func(t *testing.T) {
		event := festEvent()
		event = AddTransaction(event, models.Transaction{Timestamp: at(19, 45), Total: 250})
		event = AddTransaction(event, models.Transaction{Timestamp: at(18, 5), Total: 300})
		event = AddTransaction(event, models.Transaction{Timestamp: at(18, 59), Total: 110})

		hourly := Hourly(event)

		require.Len(t, hourly, 2)
		assert.Equal(t, "18:00", hourly[0].Label)
		assert.Equal(t, 2, hourly[0].Count)
		assert.Equal(t, money.Amount(410), hourly[0].Revenue)
		assert.Equal(t, "19:00", hourly[1].Label)
		assert.Equal(t, 1, hourly[1].Count)
	})
}

func TestNewestFirst(t *testing.T) {
	list := []models.Event{
		{ID: "old", CreatedAt: at(10, 0)},
		{ID: "new", CreatedAt: at(12, 0)},
		{ID: "mid", CreatedAt: at(11, 0)},
	}

	sorted := NewestFirst(list)

	assert.Equal(t, "new", sorted[0].ID)
	assert.Equal(t, "mid", sorted[1].ID)
	assert.Equal(t, "old", sorted[2].ID)
	assert.Equal(t, "old", list[0].ID)
}
