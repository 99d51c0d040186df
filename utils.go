package main

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Tiliavir/mvw-cashier-app/internal/cart"
	"github.com/Tiliavir/mvw-cashier-app/internal/catalog"
	"github.com/Tiliavir/mvw-cashier-app/internal/events"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validation functions

// validateHexColor validates that a color is in hex format (#RRGGBB)
func validateHexColor(color string) error {
	if color == "" {
		return nil // Empty color is allowed
	}
	if !hexColorRegex.MatchString(strings.TrimSpace(color)) {
		return models.NewValidationError("color", "must be in hex format (#RRGGBB)")
	}
	return nil
}

// handleError converts domain errors to appropriate HTTP responses
func handleError(err error) (statusCode int, message string) {
	switch {
	case models.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrInvalidImport):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "Cart is empty"
	case errors.Is(err, models.ErrNoActiveEvent):
		return http.StatusNotFound, "No active event"
	case errors.Is(err, models.ErrEventNotFound):
		return http.StatusNotFound, "Event not found"
	case errors.Is(err, models.ErrItemNotFound):
		return http.StatusNotFound, "Item not found"
	case errors.Is(err, models.ErrEventClosed):
		return http.StatusConflict, "Event is closed"
	case errors.Is(err, models.ErrTotalMismatch):
		return http.StatusConflict, "Transaction total does not match its items"
	}

	// Default to internal server error
	return http.StatusInternalServerError, "Internal server error"
}

// respondError logs unexpected failures and writes the mapped status.
func respondError(c *gin.Context, err error) {
	statusCode, message := handleError(err)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(statusCode, gin.H{"error": message})
}

// Conversion utility functions

// paymentAmounts reads received and the optional manual tip.
func paymentAmounts(request PaymentRequest) (money.Amount, *money.Amount) {
	received, _ := money.ParseRaw(request.Received)
	tip, entered := money.ParseRaw(request.Tip)
	if !entered {
		return received, nil
	}
	return received, &tip
}

// priceText turns the raw price of an ItemRequest into text for the
// lenient parser. A blank price is rejected; anything else entered counts,
// even if it reads as 0.
func priceText(request ItemRequest) (string, error) {
	price, entered := money.ParseRaw(request.Price)
	if !entered {
		return "", models.NewValidationError("price", "cannot be empty")
	}
	return price.String(), nil
}

func eventSummary(state models.State, event models.Event) EventSummary {
	return EventSummary{
		ID:        event.ID,
		Name:      event.Name,
		CreatedAt: event.CreatedAt,
		Closed:    event.Closed,
		Active:    state.IsActive(event.ID),
		ItemCount: len(event.Items),
		Totals:    events.Totals(event),
	}
}

func quoteView(q cart.Quote) QuoteView {
	return QuoteView{
		Quote: q,
		Display: QuoteDisplay{
			Total:   money.Format(q.Total),
			Change:  money.Format(q.Change),
			Tip:     money.Format(q.Tip),
			Balance: money.Format(q.Balance),
		},
	}
}

func registerView(event models.Event, selection cart.Cart) RegisterView {
	prices := catalog.Prices(event.Items)
	lines := make([]CartLine, 0, len(selection))
	// catalog order, as on the register grid
	for _, item := range event.Items {
		quantity := selection[item.ID]
		if quantity <= 0 {
			continue
		}
		lines = append(lines, CartLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Color:    item.Color,
			Price:    item.Price,
			Quantity: quantity,
			Subtotal: item.Price.Mul(quantity),
		})
	}
	total := money.Total(selection, prices)
	return RegisterView{
		EventID:   event.ID,
		EventName: event.Name,
		Items:     event.Items,
		Cart:      selection,
		Lines:     lines,
		Total:     total,
		Display:   money.Format(total),
	}
}

func eventStats(event models.Event) EventStats {
	totals := events.Totals(event)
	average := money.Zero
	if totals.TransactionCount > 0 {
		average = money.FromDecimal(totals.Revenue.Decimal().Div(decimal.NewFromInt(int64(totals.TransactionCount))))
	}
	return EventStats{
		EventID:   event.ID,
		Name:      event.Name,
		Closed:    event.Closed,
		Totals:    totals,
		ItemsSold: events.ItemsSoldRanked(event),
		Hourly:    events.Hourly(event),
		Display: StatsDisplay{
			Revenue: money.Format(totals.Revenue),
			Tip:     money.Format(totals.Tip),
			Average: money.Format(average),
		},
	}
}

func contentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q", fileName)
}
