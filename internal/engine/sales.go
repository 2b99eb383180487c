package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"swiftpos/internal/models"
)

// CartLine is one not-yet-committed product selection during checkout. Name,
// price and cost come from the caller's cart so the transaction freezes what
// the cashier saw, not whatever the catalog says later.
type CartLine struct {
	ProductID string          `json:"productId" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
}

// ProcessSale settles a cart as one logical unit: it accrues the customer's
// total spent, decrements stock for every referenced product and prepends an
// immutable transaction record, which it returns.
//
// customerID may be empty for a walk-in; the transaction then carries the
// GUEST sentinel and no customer record is created or touched. An unknown
// customerID is treated the same way.
//
// Stock is allowed to go negative here: availability is a selection-time
// concern, not an invariant of the ledger.
func (e *Engine) ProcessSale(customerID string, lines []CartLine) (models.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	totalAmount := decimal.Zero
	for _, line := range lines {
		totalAmount = totalAmount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	name := models.GuestCustomerName
	resolvedID := models.GuestCustomerID
	customerTouched := false
	if customerID != "" {
		for i := range e.customers {
			if e.customers[i].ID == customerID {
				name = e.customers[i].Name
				resolvedID = e.customers[i].ID
				e.customers[i].TotalSpent = e.customers[i].TotalSpent.Add(totalAmount)
				customerTouched = true
				break
			}
		}
	}

	for _, line := range lines {
		for i := range e.products {
			if e.products[i].ID == line.ProductID {
				e.products[i].Stock -= line.Quantity
				break
			}
		}
	}

	items := make([]models.TransactionItem, len(lines))
	for i, line := range lines {
		cost := line.UnitCost
		if !cost.IsPositive() {
			cost = line.UnitPrice.Mul(costPriceRatio)
		}
		items[i] = models.TransactionItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			PriceAtSale: line.UnitPrice,
			CostAtSale:  cost,
			Subtotal:    line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
	}

	transaction := models.Transaction{
		ID:           e.ids.Next(),
		CustomerID:   resolvedID,
		CustomerName: name,
		Date:         time.Now(),
		TotalAmount:  totalAmount,
		Items:        items,
	}
	// Newest first is the canonical order of the sale ledger.
	e.transactions = append([]models.Transaction{transaction}, e.transactions...)

	if err := e.store.SaveProducts(e.products); err != nil {
		return models.Transaction{}, err
	}
	if customerTouched {
		if err := e.store.SaveCustomers(e.customers); err != nil {
			return models.Transaction{}, err
		}
	}
	if err := e.store.SaveTransactions(e.transactions); err != nil {
		return models.Transaction{}, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"customer_id":    transaction.CustomerID,
		"total":          transaction.TotalAmount.String(),
		"items":          len(items),
	}).Info("Sale processed")
	e.notifyChange()
	return transaction, nil
}

// TransactionPatch holds a partial update of a settled transaction; nil
// fields are left unchanged.
type TransactionPatch struct {
	CustomerName *string                  `json:"customerName"`
	Date         *time.Time               `json:"date"`
	TotalAmount  *decimal.Decimal         `json:"totalAmount"`
	Items        []models.TransactionItem `json:"items"`
}

// UpdateTransaction patches a settled transaction in place. It does not
// adjust stock or the customer's total spent: callers that need financial
// correctness after an edit must apply compensating changes themselves.
// A missing id is a silent no-op.
func (e *Engine) UpdateTransaction(id string, patch TransactionPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.transactions {
		if e.transactions[i].ID != id {
			continue
		}
		t := &e.transactions[i]
		if patch.CustomerName != nil {
			t.CustomerName = *patch.CustomerName
		}
		if patch.Date != nil {
			t.Date = *patch.Date
		}
		if patch.TotalAmount != nil {
			t.TotalAmount = *patch.TotalAmount
		}
		if patch.Items != nil {
			t.Items = patch.Items
		}
		if err := e.store.SaveTransactions(e.transactions); err != nil {
			return err
		}
		logrus.WithField("transaction_id", id).Warn("Settled transaction edited")
		e.notifyChange()
		return nil
	}
	return nil
}

// DeleteTransaction removes a settled transaction. Stock and customer totals
// are not restored, same as UpdateTransaction. A missing id is a silent no-op.
func (e *Engine) DeleteTransaction(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.transactions {
		if e.transactions[i].ID != id {
			continue
		}
		e.transactions = append(e.transactions[:i], e.transactions[i+1:]...)
		if err := e.store.SaveTransactions(e.transactions); err != nil {
			return err
		}
		logrus.WithField("transaction_id", id).Warn("Settled transaction deleted")
		e.notifyChange()
		return nil
	}
	return nil
}
