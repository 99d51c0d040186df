package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Statistics handler functions

// @Summary Get event statistics
// @Description Get revenue, tips, items sold (best seller first) and sales per hour of an event
// @Tags stats
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} EventStats "Event statistics"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id}/stats [get]
func getEventStats(c *gin.Context) {
	event, err := session.Event(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, eventStats(event))
}
