package handlers

import (
	"net/http"

	"swiftpos/internal/auth"
	"swiftpos/internal/engine"

	"github.com/gin-gonic/gin"
)

// confirmHeader carries the acting user's current password on requests that
// modify settled history. The check happens here, at the orchestrating
// layer; the engine itself stays free of session concerns.
const confirmHeader = "X-Confirm-Password"

func confirmSecret(c *gin.Context, a *auth.Service) bool {
	if a.VerifySecret(c.GetHeader(confirmHeader)) {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Invalid password."})
	return false
}

// GetTransactions lists the sale ledger, newest first.
func GetTransactions(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Transactions())
	}
}

// UpdateTransaction patches a settled transaction after the password gate.
// Stock and customer totals are deliberately not adjusted.
func UpdateTransaction(e *engine.Engine, a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !confirmSecret(c, a) {
			return
		}
		var patch engine.TransactionPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := e.UpdateTransaction(c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully"})
	}
}

// DeleteTransaction removes a settled transaction after the password gate.
func DeleteTransaction(e *engine.Engine, a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !confirmSecret(c, a) {
			return
		}
		if err := e.DeleteTransaction(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
	}
}
