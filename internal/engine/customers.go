package engine

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"swiftpos/internal/models"
)

// CustomerInput carries the caller-supplied fields of a new customer.
type CustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

// CustomerPatch holds a partial update; nil fields are left unchanged.
// TotalSpent is not patchable, it only moves through sales.
type CustomerPatch struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// AddCustomer appends a new customer with a zero spend history and returns
// the created record, so checkout can attribute a sale to it immediately.
func (e *Engine) AddCustomer(in CustomerInput) (models.Customer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	customer := models.Customer{
		ID:         e.ids.Next(),
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		TotalSpent: decimal.Zero,
	}
	e.customers = append(e.customers, customer)
	if err := e.store.SaveCustomers(e.customers); err != nil {
		return models.Customer{}, err
	}
	logrus.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"name":        customer.Name,
	}).Info("Customer added")
	e.notifyChange()
	return customer, nil
}

// AddCustomers bulk-inserts validated import records, each starting at zero
// total spent.
func (e *Engine) AddCustomers(in []CustomerInput) ([]models.Customer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.ids.Bulk(len(in))
	created := make([]models.Customer, len(in))
	for i, c := range in {
		created[i] = models.Customer{
			ID:         ids[i],
			Name:       c.Name,
			Phone:      c.Phone,
			Email:      c.Email,
			TotalSpent: decimal.Zero,
		}
	}
	e.customers = append(e.customers, created...)
	if err := e.store.SaveCustomers(e.customers); err != nil {
		return nil, err
	}
	logrus.WithField("count", len(created)).Info("Customers imported")
	e.notifyChange()
	return created, nil
}

// UpdateCustomer merges the patch into the matching customer. A missing id
// is a silent no-op. Transactions keep the name they were settled with.
func (e *Engine) UpdateCustomer(id string, patch CustomerPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.customers {
		if e.customers[i].ID != id {
			continue
		}
		c := &e.customers[i]
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if err := e.store.SaveCustomers(e.customers); err != nil {
			return err
		}
		e.notifyChange()
		return nil
	}
	return nil
}

// DeleteCustomer removes a customer by id; a missing id is a silent no-op.
func (e *Engine) DeleteCustomer(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.customers {
		if e.customers[i].ID != id {
			continue
		}
		e.customers = append(e.customers[:i], e.customers[i+1:]...)
		if err := e.store.SaveCustomers(e.customers); err != nil {
			return err
		}
		logrus.WithField("customer_id", id).Info("Customer deleted")
		e.notifyChange()
		return nil
	}
	return nil
}
