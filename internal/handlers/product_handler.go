package handlers

import (
	"net/http"

	"swiftpos/internal/engine"

	"github.com/gin-gonic/gin"
)

// GetProducts lists the whole catalog.
func GetProducts(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Products())
	}
}

// AddProduct creates a single product.
func AddProduct(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engine.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		product, err := e.AddProduct(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// AddProductsBulk inserts a validated import list in one call. The CSV (or
// any other) parsing happens client-side; this endpoint only takes records.
func AddProductsBulk(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input []engine.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		products, err := e.AddProducts(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imported": len(products), "products": products})
	}
}

// UpdateProduct merges a partial update into an existing product. An unknown
// id is accepted and changes nothing.
func UpdateProduct(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch engine.ProductPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := e.UpdateProduct(c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

// DeleteProduct removes a product. Past sales keep their own snapshot of the
// name and prices, so history is unaffected.
func DeleteProduct(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := e.DeleteProduct(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// SaleRequest defines what the checkout screen sends us
type SaleRequest struct {
	CustomerID string            `json:"customerId"`
	Items      []engine.CartLine `json:"items" binding:"required,min=1,dive"`
}

// ProcessSale settles a cart: stock down, customer total up, one new
// transaction record back.
func ProcessSale(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		transaction, err := e.ProcessSale(req.CustomerID, req.Items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale record"})
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}
