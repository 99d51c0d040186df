package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register handler functions

// @Summary Get register
// @Description Get the catalog of the active event with the current cart and its total
// @Tags register
// @Produce json
// @Success 200 {object} RegisterView "Register screen"
// @Failure 404 {object} map[string]interface{} "No active event"
// @Router /api/register [get]
func getRegister(c *gin.Context) {
	event, err := session.ActiveEvent()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, registerView(event, session.Cart()))
}

// @Summary Add to cart
// @Description Select one more of an item of the active event
// @Tags register
// @Produce json
// @Param itemId path string true "Item ID"
// @Success 200 {object} RegisterView "Register screen"
// @Failure 404 {object} map[string]interface{} "No active event or item not found"
// @Router /api/register/cart/{itemId} [post]
func addToCart(c *gin.Context) {
	selection, err := session.AddToCart(c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := session.ActiveEvent()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, registerView(event, selection))
}

// @Summary Remove from cart
// @Description Select one less of an item; the last one leaves the cart
// @Tags register
// @Produce json
// @Param itemId path string true "Item ID"
// @Success 200 {object} RegisterView "Register screen"
// @Failure 404 {object} map[string]interface{} "No active event"
// @Router /api/register/cart/{itemId} [delete]
func decrementCart(c *gin.Context) {
	selection := session.DecrementCart(c.Param("itemId"))
	event, err := session.ActiveEvent()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, registerView(event, selection))
}

// @Summary Cancel sale
// @Description Empty the cart without recording anything
// @Tags register
// @Produce json
// @Success 200 {object} map[string]interface{} "Cart cleared"
// @Router /api/register/cart [delete]
func resetCart(c *gin.Context) {
	session.ResetCart()
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// @Summary Quote payment
// @Description Compute total, change and tip for the cart without recording the sale
// @Tags register
// @Accept json
// @Produce json
// @Param payment body PaymentRequest true "Received amount and optional manual tip"
// @Success 200 {object} QuoteView "Payment figures"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "No active event"
// @Router /api/register/quote [post]
func quotePayment(c *gin.Context) {
	var request PaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	received, tip := paymentAmounts(request)
	quote, err := session.Quote(received, tip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quoteView(quote))
}

// @Summary Finalize sale
// @Description Record the cart as a transaction of the active event and clear the cart
// @Tags register
// @Accept json
// @Produce json
// @Param payment body PaymentRequest true "Received amount and optional manual tip"
// @Success 201 {object} FinalizeResponse "Recorded transaction"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "No active event"
// @Failure 409 {object} map[string]interface{} "Total mismatch"
// @Failure 422 {object} map[string]interface{} "Cart is empty"
// @Router /api/register/finalize [post]
func finalizeSale(c *gin.Context) {
	var request PaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	received, tip := paymentAmounts(request)
	tx, quote, err := session.Finalize(c.Request.Context(), received, tip)
	if err != nil {
		respondError(c, err)
		return
	}
	if quote.Underpaid {
		logger.Warn("sale recorded although underpaid",
			zap.Stringer("total", quote.Total),
			zap.Stringer("received", quote.Received))
	}

	c.JSON(http.StatusCreated, FinalizeResponse{Transaction: tx, Quote: quoteView(quote)})
}
