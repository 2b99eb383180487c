package handlers

import (
	"net/http"

	"swiftpos/internal/auth"
	"swiftpos/internal/engine"

	"github.com/gin-gonic/gin"
)

// GetExpenses lists the expense ledger, newest first.
func GetExpenses(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Expenses())
	}
}

// AddExpense records a new expense entry.
func AddExpense(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engine.ExpenseInput
		if err := c.ShouldBindJSON(&input); err != nil || !input.Category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		expense, err := e.AddExpense(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense"})
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}

// UpdateExpense patches a recorded expense after the password gate.
func UpdateExpense(e *engine.Engine, a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !confirmSecret(c, a) {
			return
		}
		var patch engine.ExpensePatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if patch.Category != nil && !patch.Category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := e.UpdateExpense(c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully"})
	}
}

// DeleteExpense removes an expense after the password gate.
func DeleteExpense(e *engine.Engine, a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !confirmSecret(c, a) {
			return
		}
		if err := e.DeleteExpense(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
	}
}
