package engine

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"swiftpos/internal/models"
)

// ProductInput carries the caller-supplied fields of a new product.
// Bulk import adapters hand the engine lists of these, already validated.
type ProductInput struct {
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
}

// ProductPatch holds a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name      *string          `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	CostPrice *decimal.Decimal `json:"costPrice"`
	Stock     *int             `json:"stock"`
	Category  *string          `json:"category"`
}

// AddProduct appends a new product with a fresh id and returns it.
func (e *Engine) AddProduct(in ProductInput) (models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	product := models.Product{
		ID:        e.ids.Next(),
		Name:      in.Name,
		Price:     in.Price,
		CostPrice: in.CostPrice,
		Stock:     in.Stock,
		Category:  in.Category,
	}
	e.products = append(e.products, product)
	if err := e.store.SaveProducts(e.products); err != nil {
		return models.Product{}, err
	}
	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product added")
	e.notifyChange()
	return product, nil
}

// AddProducts inserts every item in one call. Ids share a time base but stay
// pairwise distinct even within a single millisecond.
func (e *Engine) AddProducts(in []ProductInput) ([]models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.ids.Bulk(len(in))
	created := make([]models.Product, len(in))
	for i, p := range in {
		created[i] = models.Product{
			ID:        ids[i],
			Name:      p.Name,
			Price:     p.Price,
			CostPrice: p.CostPrice,
			Stock:     p.Stock,
			Category:  p.Category,
		}
	}
	e.products = append(e.products, created...)
	if err := e.store.SaveProducts(e.products); err != nil {
		return nil, err
	}
	logrus.WithField("count", len(created)).Info("Products imported")
	e.notifyChange()
	return created, nil
}

// UpdateProduct merges the patch into the matching product. A missing id is
// a silent no-op.
func (e *Engine) UpdateProduct(id string, patch ProductPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.products {
		if e.products[i].ID != id {
			continue
		}
		p := &e.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.CostPrice != nil {
			p.CostPrice = *patch.CostPrice
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if err := e.store.SaveProducts(e.products); err != nil {
			return err
		}
		e.notifyChange()
		return nil
	}
	return nil
}

// DeleteProduct removes a product by id. Historical transactions keep their
// own denormalized name and prices, so nothing cascades. A missing id is a
// silent no-op.
func (e *Engine) DeleteProduct(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.products {
		if e.products[i].ID != id {
			continue
		}
		e.products = append(e.products[:i], e.products[i+1:]...)
		if err := e.store.SaveProducts(e.products); err != nil {
			return err
		}
		logrus.WithField("product_id", id).Info("Product deleted")
		e.notifyChange()
		return nil
	}
	return nil
}
