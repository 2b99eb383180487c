package auth

import (
	"path/filepath"
	"testing"

	"swiftpos/internal/models"
	"swiftpos/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "swiftpos.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	s, err := NewService(st)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return s, st
}

func TestLoginWithSeededAccount(t *testing.T) {
	s, st := newTestService(t)

	user, err := s.Login("admin", store.DefaultSeedPassword)
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("logged-in role = %q, want admin", user.Role)
	}
	if cur := s.Current(); cur == nil || cur.ID != user.ID {
		t.Error("Current() does not reflect the login")
	}

	// The session survives a restart through the record store.
	persisted, err := st.GetSession()
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if persisted == nil || persisted.ID != user.ID {
		t.Error("session was not persisted")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s, _ := newTestService(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "hunter2"},
		{"unknown user", "nobody", store.DefaultSeedPassword},
		{"empty password", "manager", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Login(tc.username, tc.password); err != ErrInvalidCredentials {
				t.Errorf("Login(%q, %q) = %v, want ErrInvalidCredentials", tc.username, tc.password, err)
			}
		})
	}
	if s.Current() != nil {
		t.Error("failed logins left a session behind")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s, st := newTestService(t)

	if _, err := s.Login("manager", store.DefaultSeedPassword); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	if s.Current() != nil {
		t.Error("Current() still set after logout")
	}
	persisted, err := st.GetSession()
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if persisted != nil {
		t.Error("persisted session survived logout")
	}
}

func TestVerifySecretRequiresSession(t *testing.T) {
	s, _ := newTestService(t)

	if s.VerifySecret(store.DefaultSeedPassword) {
		t.Error("VerifySecret() passed with no session")
	}

	if _, err := s.Login("admin", store.DefaultSeedPassword); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if !s.VerifySecret(store.DefaultSeedPassword) {
		t.Error("VerifySecret() rejected the session user's own secret")
	}
	if s.VerifySecret("hunter2") {
		t.Error("VerifySecret() passed a wrong secret")
	}
}

func TestAddUserHashesSecret(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.AddUser(UserInput{
		Name:     "Cashier One",
		Username: "cashier1",
		Password: "till-key",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("AddUser() failed: %v", err)
	}
	if user.PasswordHash == "till-key" {
		t.Fatal("secret stored in the clear")
	}

	if _, err := s.Login("cashier1", "till-key"); err != nil {
		t.Errorf("new account cannot log in: %v", err)
	}
}

func TestUpdateUserRefreshesOwnSession(t *testing.T) {
	s, st := newTestService(t)

	user, err := s.Login("admin", store.DefaultSeedPassword)
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	name := "Renamed Admin"
	password := "new-secret"
	if err := s.UpdateUser(user.ID, UserPatch{Name: &name, Password: &password}); err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}

	cur := s.Current()
	if cur == nil || cur.Name != "Renamed Admin" {
		t.Error("session did not pick up the rename")
	}
	if !s.VerifySecret("new-secret") {
		t.Error("VerifySecret() still checks against the old hash")
	}
	if s.VerifySecret(store.DefaultSeedPassword) {
		t.Error("old secret still accepted after the change")
	}

	persisted, err := st.GetSession()
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if persisted == nil || persisted.Name != "Renamed Admin" {
		t.Error("persisted session missed the update")
	}
}

func TestUserMutationsOnMissingIDAreNoOps(t *testing.T) {
	s, _ := newTestService(t)
	before := len(s.Users())

	if err := s.UpdateUser("no-such-id", UserPatch{Name: ptr("Ghost")}); err != nil {
		t.Fatalf("UpdateUser() on missing id failed: %v", err)
	}
	if err := s.DeleteUser("no-such-id"); err != nil {
		t.Fatalf("DeleteUser() on missing id failed: %v", err)
	}
	if got := len(s.Users()); got != before {
		t.Errorf("roster size changed: %d -> %d", before, got)
	}
}

func TestReloadPicksUpExternalRosterChanges(t *testing.T) {
	s, st := newTestService(t)

	// A restore rewrites the users collection behind the service's back.
	if err := st.SaveUsers([]models.User{{ID: "9", Name: "Restored", Username: "restored", Role: "admin"}}); err != nil {
		t.Fatalf("SaveUsers() failed: %v", err)
	}

	if got := s.Users(); len(got) != 2 {
		t.Fatalf("cache unexpectedly refreshed itself: %+v", got)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	got := s.Users()
	if len(got) != 1 || got[0].Username != "restored" {
		t.Errorf("roster after reload = %+v, want only the restored account", got)
	}
}

func TestDeleteUserRemovesAccount(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.AddUser(UserInput{Name: "Temp", Username: "temp", Password: "temp-key", Role: "staff"})
	if err != nil {
		t.Fatalf("AddUser() failed: %v", err)
	}
	if err := s.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}
	if _, err := s.Login("temp", "temp-key"); err != ErrInvalidCredentials {
		t.Errorf("deleted account can still log in: %v", err)
	}
}

func ptr(s string) *string { return &s }
