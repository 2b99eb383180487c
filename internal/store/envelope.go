package store

import (
	"encoding/json"
	"errors"
	"time"

	"swiftpos/internal/models"
)

// EnvelopeVersion is the schema version stamped into every export.
const EnvelopeVersion = "1.0"

// Envelope is the export/import snapshot of the whole store.
type Envelope struct {
	Products     []models.Product     `json:"products"`
	Customers    []models.Customer    `json:"customers"`
	Transactions []models.Transaction `json:"transactions"`
	Expenses     []models.Expense     `json:"expenses"`
	Settings     models.StoreSettings `json:"settings"`
	Users        []models.User        `json:"users"`
	BackupDate   time.Time            `json:"backupDate"`
	Version      string               `json:"version"`
}

// ErrBadEnvelope is returned by Restore when the input is not a JSON object.
var ErrBadEnvelope = errors.New("store: restore input is not a structured snapshot")

// ExportAll snapshots every collection plus settings into one envelope.
func (s *Store) ExportAll() (Envelope, error) {
	var env Envelope
	var err error

	if env.Products, err = s.GetProducts(); err != nil {
		return env, err
	}
	if env.Customers, err = s.GetCustomers(); err != nil {
		return env, err
	}
	if env.Transactions, err = s.GetTransactions(); err != nil {
		return env, err
	}
	if env.Expenses, err = s.GetExpenses(); err != nil {
		return env, err
	}
	if env.Settings, err = s.GetSettings(); err != nil {
		return env, err
	}
	if env.Users, err = s.GetUsers(); err != nil {
		return env, err
	}
	env.BackupDate = time.Now()
	env.Version = EnvelopeVersion
	return env, nil
}

// Restore overwrites collections from a previously exported envelope. Any
// subset of the fields may be present; absent fields leave the corresponding
// collection untouched. Input that is not a JSON object is rejected outright.
func (s *Store) Restore(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ErrBadEnvelope
	}
	if fields == nil {
		// "null" decodes into a nil map without error
		return ErrBadEnvelope
	}

	// Validate every present field before writing anything.
	var (
		products     []models.Product
		customers    []models.Customer
		transactions []models.Transaction
		expenses     []models.Expense
		users        []models.User
		settings     = DefaultSettings()
	)
	if v, ok := fields["products"]; ok {
		if err := json.Unmarshal(v, &products); err != nil {
			return ErrBadEnvelope
		}
	}
	if v, ok := fields["customers"]; ok {
		if err := json.Unmarshal(v, &customers); err != nil {
			return ErrBadEnvelope
		}
	}
	if v, ok := fields["transactions"]; ok {
		if err := json.Unmarshal(v, &transactions); err != nil {
			return ErrBadEnvelope
		}
	}
	if v, ok := fields["expenses"]; ok {
		if err := json.Unmarshal(v, &expenses); err != nil {
			return ErrBadEnvelope
		}
	}
	if v, ok := fields["users"]; ok {
		if err := json.Unmarshal(v, &users); err != nil {
			return ErrBadEnvelope
		}
	}
	if v, ok := fields["settings"]; ok {
		if err := json.Unmarshal(v, &settings); err != nil {
			return ErrBadEnvelope
		}
	}

	if _, ok := fields["products"]; ok {
		if err := s.SaveProducts(products); err != nil {
			return err
		}
	}
	if _, ok := fields["customers"]; ok {
		if err := s.SaveCustomers(customers); err != nil {
			return err
		}
	}
	if _, ok := fields["transactions"]; ok {
		if err := s.SaveTransactions(transactions); err != nil {
			return err
		}
	}
	if _, ok := fields["expenses"]; ok {
		if err := s.SaveExpenses(expenses); err != nil {
			return err
		}
	}
	if _, ok := fields["users"]; ok {
		if err := s.SaveUsers(users); err != nil {
			return err
		}
	}
	if _, ok := fields["settings"]; ok {
		if err := s.SaveSettings(settings); err != nil {
			return err
		}
	}
	return nil
}
