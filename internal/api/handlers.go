package api

import (
	"errors"
	"net/http"

	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

// abortWithServiceError distinguishes validation failures, which carry their
// message to the client, from unexpected internal failures, which do not.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrBelowMinimumDeposit),
		errors.Is(err, service.ErrMissingProof),
		errors.Is(err, service.ErrInvalidWithdrawalMethod),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInsufficientInvestment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateProof):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCooldownActive):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
