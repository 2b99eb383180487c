package store

import (
	"encoding/json"
	"errors"
	"time"

	"swiftpos/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Fixed keys, one persisted entry per collection.
const (
	keyProducts     = "swiftpos_products"
	keyCustomers    = "swiftpos_customers"
	keyTransactions = "swiftpos_transactions"
	keyExpenses     = "swiftpos_expenses"
	keySettings     = "swiftpos_settings"
	keyUsers        = "swiftpos_users"
	keySession      = "swiftpos_session"
)

// record is a single key/value row. Every collection is one JSON document.
type record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

// Store is the durable record store. It holds no business logic: it loads and
// saves whole collections, falling back to built-in seed data when a key has
// never been written.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database file and prepares the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// getRaw returns the stored document for key, or ok=false when the key has
// never been written.
func (s *Store) getRaw(key string) ([]byte, bool, error) {
	var rec record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

// putRaw upserts the document for key.
func (s *Store) putRaw(key string, value []byte) error {
	rec := record{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (s *Store) deleteRaw(key string) error {
	return s.db.Delete(&record{}, "key = ?", key).Error
}

// getCollection unmarshals the stored document into dest, or copies the seed
// when the key is absent.
func getCollection[T any](s *Store, key string, seed func() []T) ([]T, error) {
	raw, ok, err := s.getRaw(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		if seed != nil {
			return seed(), nil
		}
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func saveCollection[T any](s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.putRaw(key, raw)
}

// GetProducts returns the catalog, seeding the starter catalog on first run.
func (s *Store) GetProducts() ([]models.Product, error) {
	return getCollection(s, keyProducts, seedProducts)
}

func (s *Store) SaveProducts(products []models.Product) error {
	return saveCollection(s, keyProducts, products)
}

// GetCustomers returns the customer ledger, seeding it on first run.
func (s *Store) GetCustomers() ([]models.Customer, error) {
	return getCollection(s, keyCustomers, seedCustomers)
}

func (s *Store) SaveCustomers(customers []models.Customer) error {
	return saveCollection(s, keyCustomers, customers)
}

func (s *Store) GetTransactions() ([]models.Transaction, error) {
	return getCollection[models.Transaction](s, keyTransactions, nil)
}

func (s *Store) SaveTransactions(transactions []models.Transaction) error {
	return saveCollection(s, keyTransactions, transactions)
}

func (s *Store) GetExpenses() ([]models.Expense, error) {
	return getCollection[models.Expense](s, keyExpenses, nil)
}

func (s *Store) SaveExpenses(expenses []models.Expense) error {
	return saveCollection(s, keyExpenses, expenses)
}

// GetUsers returns the user roster, seeding the default admin and manager
// accounts on first run.
func (s *Store) GetUsers() ([]models.User, error) {
	return getCollection(s, keyUsers, seedUsers)
}

func (s *Store) SaveUsers(users []models.User) error {
	return saveCollection(s, keyUsers, users)
}

// GetSettings merges the stored settings over the defaults so fields
// introduced after the document was written still get their default value.
func (s *Store) GetSettings() (models.StoreSettings, error) {
	settings := DefaultSettings()
	raw, ok, err := s.getRaw(keySettings)
	if err != nil {
		return settings, err
	}
	if !ok {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.StoreSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.putRaw(keySettings, raw)
}

// GetSession returns the logged-in user, or nil when nobody is logged in.
func (s *Store) GetSession() (*models.User, error) {
	raw, ok, err := s.getRaw(keySession)
	if err != nil || !ok {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveSession persists the logged-in user; nil clears the session.
func (s *Store) SaveSession(user *models.User) error {
	if user == nil {
		return s.deleteRaw(keySession)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.putRaw(keySession, raw)
}
