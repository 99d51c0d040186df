package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/mvw-cashier-app/internal/catalog"
	"github.com/Tiliavir/mvw-cashier-app/internal/events"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
)

// Event handler functions

// @Summary Get state
// @Description Get the whole persisted state: every event and the active event id
// @Tags state
// @Produce json
// @Success 200 {object} models.State "Root state"
// @Router /api/state [get]
func getState(c *gin.Context) {
	c.JSON(http.StatusOK, session.State())
}

// @Summary Reset state
// @Description Delete all events and transactions
// @Tags state
// @Produce json
// @Success 200 {object} models.State "Fresh state"
// @Router /api/state [delete]
func resetState(c *gin.Context) {
	c.JSON(http.StatusOK, session.Reset(c.Request.Context()))
}

// @Summary Get all events
// @Description Retrieve all events, newest first, with their totals
// @Tags events
// @Produce json
// @Success 200 {array} EventSummary "List of events"
// @Router /api/events [get]
func getEvents(c *gin.Context) {
	state := session.State()
	list := events.NewestFirst(state.Events)

	summaries := make([]EventSummary, 0, len(list))
	for _, event := range list {
		summaries = append(summaries, eventSummary(state, event))
	}

	c.JSON(http.StatusOK, summaries)
}

// @Summary Create event
// @Description Create a new event, optionally with a catalog or the example catalog, and make it the active one
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data (name required, items optional)"
// @Success 201 {object} models.Event "Created event"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /api/events [post]
func createEvent(c *gin.Context) {
	var request CreateEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if request.Example && len(request.Items) == 0 {
		example := catalog.ExampleItems()
		items, err := example.Instantiate()
		if err != nil {
			respondError(c, err)
			return
		}
		name := request.Name
		if strings.TrimSpace(name) == "" {
			name = example.Name
		}
		respondCreated(c, name, items)
		return
	}

	items := make([]models.Item, 0, len(request.Items))
	for i, itemRequest := range request.Items {
		color := itemRequest.Color
		if color == "" {
			color = catalog.DefaultColor
		}
		if err := validateHexColor(color); err != nil {
			respondError(c, fmt.Errorf("item %d: %w", i+1, err))
			return
		}
		price, _ := money.ParseRaw(itemRequest.Price)
		item, err := catalog.CreateItem(itemRequest.Name, price.String(), color)
		if err != nil {
			respondError(c, fmt.Errorf("item %d: %w", i+1, err))
			return
		}
		items = append(items, item)
	}

	respondCreated(c, request.Name, items)
}

// respondCreated creates the event and writes it as the response.
func respondCreated(c *gin.Context, name string, items []models.Item) {
	event, err := session.CreateEvent(c.Request.Context(), name, items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// @Summary Import event
// @Description Create a new active event from an exported event file
// @Tags events
// @Accept json
// @Produce json
// @Param file body catalog.Template true "Event file"
// @Success 201 {object} models.Event "Imported event"
// @Failure 400 {object} map[string]interface{} "Invalid import format"
// @Router /api/events/import [post]
func importEvent(c *gin.Context) {
	event, err := session.ImportEvent(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// @Summary Get example catalog
// @Description Get the preset festival catalog as an event file
// @Tags events
// @Produce json
// @Success 200 {object} catalog.Template "Example event file"
// @Router /api/events/example [get]
func getExampleEvent(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.ExampleItems())
}

// @Summary Get active event
// @Description Get the event currently open for selling
// @Tags events
// @Produce json
// @Success 200 {object} models.Event "Active event"
// @Failure 404 {object} map[string]interface{} "No active event"
// @Router /api/events/active [get]
func getActiveEvent(c *gin.Context) {
	event, err := session.ActiveEvent()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Set active event
// @Description Open an existing event for selling
// @Tags events
// @Accept json
// @Produce json
// @Param request body SetActiveRequest true "Event to activate"
// @Success 200 {object} models.Event "Active event"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Failure 409 {object} map[string]interface{} "Event is closed"
// @Router /api/events/active [put]
func setActiveEvent(c *gin.Context) {
	var request SetActiveRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.EventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := session.SetActive(c.Request.Context(), request.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Get event
// @Description Get one event with its catalog and transactions
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Event "Event"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id} [get]
func getEvent(c *gin.Context) {
	event, err := session.Event(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Export event
// @Description Download the catalog of an event as an event file
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} catalog.Template "Event file"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id}/export [get]
func exportEvent(c *gin.Context) {
	event, err := session.Event(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(catalog.ExportFileName(event.Name)))
	c.JSON(http.StatusOK, catalog.Export(event))
}

// @Summary Close event
// @Description Close an event for good; a closed active event leaves no event active
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Event "Closed event"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id}/close [post]
func closeEvent(c *gin.Context) {
	event, err := session.CloseEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Delete event
// @Description Delete an event with its catalog and transactions
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]interface{} "Event deleted successfully"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id} [delete]
func deleteEvent(c *gin.Context) {
	if err := session.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
