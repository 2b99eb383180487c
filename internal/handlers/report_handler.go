package handlers

import (
	"net/http"
	"time"

	"swiftpos/internal/engine"
	"swiftpos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportData defines the shape of our analytics response
type ReportData struct {
	TotalRevenue  decimal.Decimal      `json:"total_revenue"`
	TotalExpenses decimal.Decimal      `json:"total_expenses"`
	CashInHand    decimal.Decimal      `json:"cash_in_hand"` // revenue minus expenses
	Investment    decimal.Decimal      `json:"investment"`   // stock on hand at cost price
	TotalOrders   int                  `json:"total_orders"`
	RecentSales   []models.Transaction `json:"recent_sales"`
}

// GetSummaryReport computes the dashboard KPIs from the full ledgers.
func GetSummaryReport(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data ReportData
		data.TotalRevenue = decimal.Zero
		data.TotalExpenses = decimal.Zero
		data.Investment = decimal.Zero

		transactions := e.Transactions()
		data.TotalOrders = len(transactions)
		for _, t := range transactions {
			data.TotalRevenue = data.TotalRevenue.Add(t.TotalAmount)
		}
		for _, exp := range e.Expenses() {
			data.TotalExpenses = data.TotalExpenses.Add(exp.Amount)
		}
		for _, p := range e.Products() {
			data.Investment = data.Investment.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
		}
		data.CashInHand = data.TotalRevenue.Sub(data.TotalExpenses)

		// Ledger is newest first, so the head is the recent slice.
		if len(transactions) > 10 {
			transactions = transactions[:10]
		}
		data.RecentSales = transactions

		c.JSON(http.StatusOK, data)
	}
}

// ValuationItem represents a single row in the valuation table
type ValuationItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// CategoryGroup represents one category's table
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// ValuationResponse is the final payload
type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// GetStockValuation calculates the total monetary value of all physical
// inventory, grouped by category.
func GetStockValuation(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		grandTotal := decimal.Zero
		groupedMap := make(map[string]*CategoryGroup)
		var order []string

		for _, p := range e.Products() {
			catName := p.Category
			if catName == "" {
				catName = "Uncategorized"
			}
			group, exists := groupedMap[catName]
			if !exists {
				group = &CategoryGroup{CategoryName: catName, Items: []ValuationItem{}, Subtotal: decimal.Zero}
				groupedMap[catName] = group
				order = append(order, catName)
			}

			itemTotal := p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
			group.Items = append(group.Items, ValuationItem{
				Name:      p.Name,
				Quantity:  p.Stock,
				CostPrice: p.CostPrice,
				TotalCost: itemTotal,
			})
			group.Subtotal = group.Subtotal.Add(itemTotal)
			grandTotal = grandTotal.Add(itemTotal)
		}

		response := ValuationResponse{GrandTotal: grandTotal}
		for _, catName := range order {
			response.Categories = append(response.Categories, *groupedMap[catName])
		}
		c.JSON(http.StatusOK, response)
	}
}

// DayBookResponse is one calendar day of sales and expenses.
type DayBookResponse struct {
	Date     string               `json:"date"`
	Sales    []models.Transaction `json:"sales"`
	Expenses []models.Expense     `json:"expenses"`
}

// GetDayBook filters transactions and expenses down to a single calendar day
// (?date=2026-01-31, defaulting to today, in the server's timezone).
func GetDayBook(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := time.Now()
		if q := c.Query("date"); q != "" {
			parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
				return
			}
			day = parsed
		}
		y, m, d := day.Date()

		resp := DayBookResponse{
			Date:     day.Format("2006-01-02"),
			Sales:    []models.Transaction{},
			Expenses: []models.Expense{},
		}
		for _, t := range e.Transactions() {
			ty, tm, td := t.Date.In(time.Local).Date()
			if ty == y && tm == m && td == d {
				resp.Sales = append(resp.Sales, t)
			}
		}
		for _, exp := range e.Expenses() {
			ey, em, ed := exp.Date.In(time.Local).Date()
			if ey == y && em == m && ed == d {
				resp.Expenses = append(resp.Expenses, exp)
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
