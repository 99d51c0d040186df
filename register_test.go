package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/mvw-cashier-app/internal/events"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
	"github.com/Tiliavir/mvw-cashier-app/internal/register"
)

// TestSaleFlow walks one sale from item selection to the recorded
// transaction.
func TestSaleFlow(t *testing.T) {
	st := resetTestSession(t, register.Options{VerifyTotals: true})
	event := createTestEvent(t, "Fest")
	a := createTestItem(t, event.ID, "A", 2)
	b := createTestItem(t, event.ID, "B", "3.00")

	for _, id := range []string{a.ID, a.ID, b.ID} {
		resp := makeRequest(http.MethodPost, "/api/register/cart/"+id, nil)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := makeRequest(http.MethodGet, "/api/register", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var view RegisterView
	require.NoError(t, parseJSONResponse(resp, &view))
	assert.Equal(t, money.Amount(700), view.Total)
	assert.Equal(t, "7,00 €", view.Display)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, a.ID, view.Lines[0].ItemID)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, money.Amount(400), view.Lines[0].Subtotal)

	resp = makeJSONRequest(t, http.MethodPost, "/api/register/quote", map[string]interface{}{"received": "10.00"})
	require.Equal(t, http.StatusOK, resp.Code)
	var quote QuoteView
	require.NoError(t, parseJSONResponse(resp, &quote))
	assert.Equal(t, money.Amount(700), quote.Total)
	assert.Equal(t, money.Amount(300), quote.Change)
	assert.Equal(t, money.Amount(0), quote.Tip)
	assert.Equal(t, "3,00 €", quote.Display.Change)

	resp = makeJSONRequest(t, http.MethodPost, "/api/register/finalize", map[string]interface{}{"received": 10})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var result FinalizeResponse
	require.NoError(t, parseJSONResponse(resp, &result))
	assert.Equal(t, money.Amount(700), result.Transaction.Total)
	assert.Equal(t, money.Amount(300), result.Transaction.Change)
	assert.Len(t, result.Transaction.Items, 2)

	current, err := session.Event(event.ID)
	require.NoError(t, err)
	require.Len(t, current.Transactions, 1)
	totals := events.Totals(current)
	assert.Equal(t, money.Amount(700), totals.Revenue)
	assert.Equal(t, 1, totals.TransactionCount)
	assert.Empty(t, session.Cart())

	persisted := st.Load(context.Background())
	require.Len(t, persisted.Events, 1)
	require.Len(t, persisted.Events[0].Transactions, 1)
	assert.Equal(t, money.Amount(700), persisted.Events[0].Transactions[0].Total)
}

// TestPayment tests manual tips and underpayment at the register
func TestPayment(t *testing.T) {
	setup := func(t *testing.T) {
		resetTestSession(t, register.Options{})
		event := createTestEvent(t, "Fest")
		drink := createTestItem(t, event.ID, "Drink", 2.5)
		other := createTestItem(t, event.ID, "Other", 5)
		for _, id := range []string{drink.ID, other.ID} {
			require.Equal(t, http.StatusOK, makeRequest(http.MethodPost, "/api/register/cart/"+id, nil).Code)
		}
	}

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantChange money.Amount
		wantTip    money.Amount
		underpaid  bool
	}{
		{"manual tip", map[string]interface{}{"received": "10", "tip": "0.50"}, 200, 50, false},
		{"manual tip beyond the residual", map[string]interface{}{"received": 8, "tip": 5}, 0, 500, false},
		{"explicit zero tip", map[string]interface{}{"received": 10, "tip": 0}, 250, 0, false},
		{"blank tip means none entered", map[string]interface{}{"received": 10, "tip": ""}, 250, 0, false},
		{"underpaid", map[string]interface{}{"received": 5}, 0, 0, true},
		{"garbage received counts as zero", map[string]interface{}{"received": "abc"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)

			resp := makeJSONRequest(t, http.MethodPost, "/api/register/quote", tt.payload)

			require.Equal(t, http.StatusOK, resp.Code)
			var quote QuoteView
			require.NoError(t, parseJSONResponse(resp, &quote))
			assert.Equal(t, money.Amount(750), quote.Total)
			assert.Equal(t, tt.wantChange, quote.Change)
			assert.Equal(t, tt.wantTip, quote.Tip)
			assert.Equal(t, tt.underpaid, quote.Underpaid)
		})
	}
}

// TestCartEndpoints tests cart editing and its error cases
func TestCartEndpoints(t *testing.T) {
	t.Run("should return 404 without an active event", func(t *testing.T) {
		resetTestSession(t, register.Options{})

		assert.Equal(t, http.StatusNotFound, makeRequest(http.MethodGet, "/api/register", nil).Code)
		assert.Equal(t, http.StatusNotFound, makeRequest(http.MethodPost, "/api/register/cart/any", nil).Code)
		resp := makeJSONRequest(t, http.MethodPost, "/api/register/finalize", map[string]interface{}{"received": 1})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("should return 404 for unknown items", func(t *testing.T) {
		resetTestSession(t, register.Options{})
		createTestEvent(t, "Fest")

		resp := makeRequest(http.MethodPost, "/api/register/cart/missing", nil)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("should decrement and cancel", func(t *testing.T) {
		resetTestSession(t, register.Options{})
		event := createTestEvent(t, "Fest")
		a := createTestItem(t, event.ID, "A", 1)
		makeRequest(http.MethodPost, "/api/register/cart/"+a.ID, nil)
		makeRequest(http.MethodPost, "/api/register/cart/"+a.ID, nil)

		resp := makeRequest(http.MethodDelete, "/api/register/cart/"+a.ID, nil)
		require.Equal(t, http.StatusOK, resp.Code)
		var view RegisterView
		require.NoError(t, parseJSONResponse(resp, &view))
		assert.Equal(t, 1, view.Cart[a.ID])

		resp = makeRequest(http.MethodDelete, "/api/register/cart", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Empty(t, session.Cart())
	})

	t.Run("should refuse to finalize an empty cart", func(t *testing.T) {
		resetTestSession(t, register.Options{})
		event := createTestEvent(t, "Fest")

		resp := makeJSONRequest(t, http.MethodPost, "/api/register/finalize", map[string]interface{}{"received": 10})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		current, err := session.Event(event.ID)
		require.NoError(t, err)
		assert.Empty(t, current.Transactions)
	})
}
