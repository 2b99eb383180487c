package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"swiftpos/internal/models"
)

// ExpenseInput carries the caller-supplied fields of a new expense.
type ExpenseInput struct {
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    models.ExpenseCategory `json:"category" binding:"required"`
	Date        time.Time              `json:"date"`
}

// ExpensePatch holds a partial update; nil fields are left unchanged.
type ExpensePatch struct {
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	Category    *models.ExpenseCategory `json:"category"`
	Date        *time.Time              `json:"date"`
}

// AddExpense prepends a new expense entry; the ledger is kept newest first.
// A zero date defaults to now.
func (e *Engine) AddExpense(in ExpenseInput) (models.Expense, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	expense := models.Expense{
		ID:          e.ids.Next(),
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        date,
	}
	e.expenses = append([]models.Expense{expense}, e.expenses...)
	if err := e.store.SaveExpenses(e.expenses); err != nil {
		return models.Expense{}, err
	}
	logrus.WithFields(logrus.Fields{
		"expense_id": expense.ID,
		"category":   expense.Category,
		"amount":     expense.Amount.String(),
	}).Info("Expense recorded")
	e.notifyChange()
	return expense, nil
}

// UpdateExpense merges the patch into the matching expense. A missing id is
// a silent no-op.
func (e *Engine) UpdateExpense(id string, patch ExpensePatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.expenses {
		if e.expenses[i].ID != id {
			continue
		}
		exp := &e.expenses[i]
		if patch.Description != nil {
			exp.Description = *patch.Description
		}
		if patch.Amount != nil {
			exp.Amount = *patch.Amount
		}
		if patch.Category != nil {
			exp.Category = *patch.Category
		}
		if patch.Date != nil {
			exp.Date = *patch.Date
		}
		if err := e.store.SaveExpenses(e.expenses); err != nil {
			return err
		}
		e.notifyChange()
		return nil
	}
	return nil
}

// DeleteExpense removes an expense by id; a missing id is a silent no-op.
func (e *Engine) DeleteExpense(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.expenses {
		if e.expenses[i].ID != id {
			continue
		}
		e.expenses = append(e.expenses[:i], e.expenses[i+1:]...)
		if err := e.store.SaveExpenses(e.expenses); err != nil {
			return err
		}
		logrus.WithField("expense_id", id).Info("Expense deleted")
		e.notifyChange()
		return nil
	}
	return nil
}
