package store

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"swiftpos/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "swiftpos.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return st
}

func TestFirstRunYieldsSeedData(t *testing.T) {
	st := newTestStore(t)

	products, err := st.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts() failed: %v", err)
	}
	if len(products) != 29 {
		t.Errorf("seed catalog has %d products, want 29", len(products))
	}

	customers, err := st.GetCustomers()
	if err != nil {
		t.Fatalf("GetCustomers() failed: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "C1" {
		t.Errorf("seed customers = %+v, want exactly C1", customers)
	}

	users, err := st.GetUsers()
	if err != nil {
		t.Fatalf("GetUsers() failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("seed users = %d, want 2", len(users))
	}
	for _, u := range users {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DefaultSeedPassword)); err != nil {
			t.Errorf("seed user %s hash does not match the default secret", u.Username)
		}
	}

	transactions, err := st.GetTransactions()
	if err != nil {
		t.Fatalf("GetTransactions() failed: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("fresh store has %d transactions, want 0", len(transactions))
	}
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	st := newTestStore(t)

	want := []models.Customer{
		{ID: "X1", Name: "Alice", Phone: "1"},
		{ID: "X2", Name: "Bob", Phone: "2"},
	}
	if err := st.SaveCustomers(want); err != nil {
		t.Fatalf("SaveCustomers() failed: %v", err)
	}
	got, err := st.GetCustomers()
	if err != nil {
		t.Fatalf("GetCustomers() failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "X1" || got[1].Name != "Bob" {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestSettingsMergeOverDefaults(t *testing.T) {
	st := newTestStore(t)

	// A document written by an older version that knew fewer fields.
	if err := st.putRaw(keySettings, []byte(`{"storeName":"Corner Shop","autoBackup":true}`)); err != nil {
		t.Fatalf("putRaw failed: %v", err)
	}

	settings, err := st.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.StoreName != "Corner Shop" {
		t.Errorf("stored field lost: storeName = %q", settings.StoreName)
	}
	if !settings.AutoBackup {
		t.Error("stored field lost: autoBackup = false")
	}
	if settings.FooterMessage != DefaultSettings().FooterMessage {
		t.Errorf("missing field did not default: footerMessage = %q", settings.FooterMessage)
	}
}

func TestSessionSaveAndClear(t *testing.T) {
	st := newTestStore(t)

	if got, err := st.GetSession(); err != nil || got != nil {
		t.Fatalf("fresh session = (%v, %v), want (nil, nil)", got, err)
	}

	user := models.User{ID: "1", Username: "admin", Role: "admin"}
	if err := st.SaveSession(&user); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	got, err := st.GetSession()
	if err != nil || got == nil || got.Username != "admin" {
		t.Fatalf("GetSession() = (%+v, %v), want the saved admin", got, err)
	}

	if err := st.SaveSession(nil); err != nil {
		t.Fatalf("SaveSession(nil) failed: %v", err)
	}
	if got, err := st.GetSession(); err != nil || got != nil {
		t.Fatalf("session after clear = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestRestoreRejectsNonObjects(t *testing.T) {
	st := newTestStore(t)

	for _, tc := range []struct {
		name string
		raw  string
	}{
		{"null", `null`},
		{"array", `[1,2,3]`},
		{"string", `"backup"`},
		{"garbage", `not json at all`},
		{"wrong field type", `{"products": "nope"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := st.Restore([]byte(tc.raw)); err == nil {
				t.Errorf("Restore(%s) succeeded, want rejection", tc.raw)
			}
		})
	}
}

func TestRestoreEmptyObjectTouchesNothing(t *testing.T) {
	st := newTestStore(t)
	if err := st.SaveCustomers([]models.Customer{{ID: "K1", Name: "Keep"}}); err != nil {
		t.Fatalf("SaveCustomers() failed: %v", err)
	}

	if err := st.Restore([]byte(`{}`)); err != nil {
		t.Fatalf("Restore({}) failed: %v", err)
	}

	customers, err := st.GetCustomers()
	if err != nil {
		t.Fatalf("GetCustomers() failed: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "K1" {
		t.Errorf("Restore({}) modified customers: %+v", customers)
	}
}

func TestRestoreAppliesPresentFieldsOnly(t *testing.T) {
	st := newTestStore(t)
	if err := st.SaveExpenses([]models.Expense{{ID: "E1", Description: "rent"}}); err != nil {
		t.Fatalf("SaveExpenses() failed: %v", err)
	}

	raw := []byte(`{"customers":[{"id":"R1","name":"Restored","phone":"9","totalSpent":"0"}],"version":"1.0"}`)
	if err := st.Restore(raw); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	customers, _ := st.GetCustomers()
	if len(customers) != 1 || customers[0].ID != "R1" {
		t.Errorf("customers not overwritten: %+v", customers)
	}
	expenses, _ := st.GetExpenses()
	if len(expenses) != 1 || expenses[0].ID != "E1" {
		t.Errorf("absent field clobbered expenses: %+v", expenses)
	}
}

func TestExportAllEnvelope(t *testing.T) {
	st := newTestStore(t)

	env, err := st.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() failed: %v", err)
	}
	if env.Version != EnvelopeVersion {
		t.Errorf("envelope version = %q, want %q", env.Version, EnvelopeVersion)
	}
	if env.BackupDate.IsZero() {
		t.Error("envelope backupDate is zero")
	}
	if len(env.Products) != 29 || len(env.Users) != 2 {
		t.Errorf("envelope holds %d products and %d users, want the seeds", len(env.Products), len(env.Users))
	}
}
