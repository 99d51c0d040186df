package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Item handler functions

// @Summary Create item
// @Description Add an item to the catalog of an event
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param item body ItemRequest true "Item data (name and price required, color optional)"
// @Success 201 {object} models.Item "Created item"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id}/items [post]
func createItem(c *gin.Context) {
	var request ItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	price, err := itemFields(request)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := session.AddItem(c.Request.Context(), c.Param("id"), request.Name, price, request.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// @Summary Update item
// @Description Change name, price and color of an item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param itemId path string true "Item ID"
// @Param item body ItemRequest true "Item data"
// @Success 200 {object} models.Item "Updated item"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Event or item not found"
// @Router /api/events/{id}/items/{itemId} [put]
func updateItem(c *gin.Context) {
	var request ItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	price, err := itemFields(request)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := session.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), request.Name, price, request.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Summary Delete item
// @Description Remove an item from the catalog; past transactions keep their lines
// @Tags items
// @Produce json
// @Param id path string true "Event ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} map[string]interface{} "Item deleted successfully"
// @Failure 404 {object} map[string]interface{} "Event or item not found"
// @Router /api/events/{id}/items/{itemId} [delete]
func deleteItem(c *gin.Context) {
	if err := session.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// @Summary Reorder items
// @Description Arrange the catalog in a new order; every item id must be listed once
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param order body ReorderRequest true "Item ids in their new order"
// @Success 200 {array} models.Item "Reordered items"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Router /api/events/{id}/items/order [put]
func reorderItems(c *gin.Context) {
	var request ReorderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	items, err := session.ReorderItems(c.Request.Context(), c.Param("id"), request.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Move item
// @Description Drop an item onto the position of another item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param itemId path string true "Item ID"
// @Param target body MoveRequest true "Item whose position to take"
// @Success 200 {array} models.Item "Reordered items"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Event or item not found"
// @Router /api/events/{id}/items/{itemId}/move [post]
func moveItem(c *gin.Context) {
	var request MoveRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	items, err := session.MoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), request.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// itemFields validates the parts of an ItemRequest the catalog does not.
func itemFields(request ItemRequest) (string, error) {
	if err := validateHexColor(request.Color); err != nil {
		return "", err
	}
	return priceText(request)
}
