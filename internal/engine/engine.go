// Package engine owns the transactional state of the store: product stock,
// customer balances, settled sales, expenses and settings. Every mutation
// runs to completion under one lock and writes through to the record store,
// so the collections are never observed mid-update.
package engine

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"swiftpos/internal/ids"
	"swiftpos/internal/models"
	"swiftpos/internal/store"
)

// costPriceRatio is the assumed cost share of the selling price, used when a
// product or cart line has no usable cost of its own.
var costPriceRatio = decimal.NewFromFloat(0.75)

// Engine is the single-writer state engine. Construct it with New and share
// one instance per process.
type Engine struct {
	mu    sync.Mutex
	store *store.Store
	ids   *ids.Generator

	products     []models.Product
	customers    []models.Customer
	transactions []models.Transaction
	expenses     []models.Expense
	settings     models.StoreSettings

	scheduler *Scheduler // nil until AttachScheduler, backups disabled without it
}

// New loads all collections from the record store and applies the one-time
// cost price migration for legacy products. The initial load never arms the
// backup scheduler: only mutations do.
func New(st *store.Store) (*Engine, error) {
	e := &Engine{store: st, ids: ids.NewGenerator()}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) load() error {
	products, err := e.store.GetProducts()
	if err != nil {
		return err
	}
	migrated := migrateCostPrices(products)
	if migrated > 0 {
		if err := e.store.SaveProducts(products); err != nil {
			return err
		}
		logrus.WithField("count", migrated).Info("Migrated legacy products without a cost price")
	}
	e.products = products

	if e.customers, err = e.store.GetCustomers(); err != nil {
		return err
	}
	if e.transactions, err = e.store.GetTransactions(); err != nil {
		return err
	}
	if e.expenses, err = e.store.GetExpenses(); err != nil {
		return err
	}
	if e.settings, err = e.store.GetSettings(); err != nil {
		return err
	}
	return nil
}

// migrateCostPrices backfills costPrice as 75% of the selling price, rounded
// to cents. Returns how many records were touched.
func migrateCostPrices(products []models.Product) int {
	migrated := 0
	for i := range products {
		if products[i].CostPrice.IsZero() && !products[i].Price.IsZero() {
			products[i].CostPrice = products[i].Price.Mul(costPriceRatio).Round(2)
			migrated++
		}
	}
	return migrated
}

// AttachScheduler wires the backup scheduler that mutations will arm.
func (e *Engine) AttachScheduler(s *Scheduler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduler = s
}

// notifyChange arms the backup scheduler after a qualifying mutation.
// Callers must hold e.mu.
func (e *Engine) notifyChange() {
	if e.scheduler == nil {
		return
	}
	e.scheduler.Notify(e.settings.AutoBackup && e.settings.GoogleDriveConnected)
}

// stampLastBackup records a completed sync. It deliberately does not count
// as a change, otherwise every backup would arm the next one.
func (e *Engine) stampLastBackup(t time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.LastBackupTime = &t
	return e.store.SaveSettings(e.settings)
}

// Export snapshots the whole store into a backup envelope.
func (e *Engine) Export() (store.Envelope, error) {
	return e.store.ExportAll()
}

// Restore replaces collections from an exported envelope and reloads the
// in-memory state. A restore behaves like a fresh start: it does not arm
// the backup scheduler.
func (e *Engine) Restore(raw []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Restore(raw); err != nil {
		return err
	}
	return e.load()
}

// Products returns a copy of the catalog in insertion order.
func (e *Engine) Products() []models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Product, len(e.products))
	copy(out, e.products)
	return out
}

// Customers returns a copy of the customer ledger in insertion order.
func (e *Engine) Customers() []models.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Customer, len(e.customers))
	copy(out, e.customers)
	return out
}

// Transactions returns a copy of the sale ledger, newest first.
func (e *Engine) Transactions() []models.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Transaction, len(e.transactions))
	copy(out, e.transactions)
	return out
}

// Expenses returns a copy of the expense ledger, newest first.
func (e *Engine) Expenses() []models.Expense {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Expense, len(e.expenses))
	copy(out, e.expenses)
	return out
}
