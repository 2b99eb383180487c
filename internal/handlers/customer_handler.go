package handlers

import (
	"net/http"

	"swiftpos/internal/engine"

	"github.com/gin-gonic/gin"
)

// GetCustomers lists the customer ledger.
func GetCustomers(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Customers())
	}
}

// AddCustomer creates a customer and returns the record, so checkout can
// attribute the sale it is about to settle.
func AddCustomer(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engine.CustomerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		customer, err := e.AddCustomer(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

// AddCustomersBulk inserts a validated import list in one call.
func AddCustomersBulk(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input []engine.CustomerInput
		if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		customers, err := e.AddCustomers(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import customers"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imported": len(customers), "customers": customers})
	}
}

// UpdateCustomer merges a partial update; an unknown id changes nothing.
func UpdateCustomer(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch engine.CustomerPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := e.UpdateCustomer(c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully"})
	}
}

// DeleteCustomer removes a customer. Their historical transactions keep the
// denormalized name they were settled with.
func DeleteCustomer(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.DeleteCustomer(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
	}
}
