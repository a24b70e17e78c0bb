package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/garghot/food-client/api"
	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/orders"
	"github.com/gin-gonic/gin"
)

// RespondError answers with the status matching err and records err on the
// context for the request logger.
func RespondError(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	var ve orders.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "field": ve.Field, "details": ve.Message})
	case errors.Is(err, api.ErrInvalidID),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrNoUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, cart.ErrItemNotFound), api.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": message})
	case errors.Is(err, cart.ErrAlreadyInCart):
		c.JSON(http.StatusConflict, gin.H{"error": message})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": message})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
	}
}

// ParamID reads a positive integer path parameter. It answers 400 and
// returns false when the parameter is not one.
func ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
