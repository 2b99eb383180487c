package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestCustomerID marks a walk-in sale with no customer record behind it.
const GuestCustomerID = "GUEST"

// GuestCustomerName is the denormalized name stored on walk-in transactions.
const GuestCustomerName = "Walk-in Customer"

// Product - The Inventory
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"costPrice"` // Used for margin and stock valuation
	Stock     int             `json:"stock"`     // May go negative, availability is checked at selection time
	Category  string          `json:"category,omitempty"`
}

// Customer - The ledger of known buyers
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email,omitempty"`
	TotalSpent decimal.Decimal `json:"totalSpent"` // Accrued incrementally at sale time
}

// TransactionItem - One cart line frozen into a settled sale
type TransactionItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"priceAtSale"`
	CostAtSale  decimal.Decimal `json:"costAtSale"` // To track profit history accurately
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Transaction - The sale header plus its denormalized items
type Transaction struct {
	ID           string            `json:"id"`
	CustomerID   string            `json:"customerId"` // "GUEST" for walk-ins
	CustomerName string            `json:"customerName"`
	Date         time.Time         `json:"date"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Items        []TransactionItem `json:"items"`
}

// ExpenseCategory is the closed set of discretionary spend buckets.
type ExpenseCategory string

const (
	ExpenseSalary    ExpenseCategory = "Salary"
	ExpenseRent      ExpenseCategory = "Rent"
	ExpenseUtilities ExpenseCategory = "Utilities"
	ExpenseSupply    ExpenseCategory = "Supply"
	ExpenseOther     ExpenseCategory = "Other"
)

// Valid reports whether c is one of the known expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseSalary, ExpenseRent, ExpenseUtilities, ExpenseSupply, ExpenseOther:
		return true
	}
	return false
}

// Expense - A discretionary spend entry
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
}

// StoreSettings - Singleton store configuration and backup flags
type StoreSettings struct {
	StoreName            string     `json:"storeName"`
	Address              string     `json:"address"`
	Phone                string     `json:"phone"`
	Email                string     `json:"email"`
	FooterMessage        string     `json:"footerMessage"`
	AutoBackup           bool       `json:"autoBackup"`
	GoogleDriveConnected bool       `json:"googleDriveConnected"`
	LastBackupTime       *time.Time `json:"lastBackupTime,omitempty"`
}

// User - The person operating the till. The hash is part of the persisted
// record, handlers must respond with Redacted() instead of the raw struct.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"` // bcrypt, never the raw secret
	Role         string `json:"role"`         // 'admin', 'manager', 'staff'
}

// Redacted returns a copy safe to serialize in API responses.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}
