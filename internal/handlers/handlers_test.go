package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"swiftpos/internal/auth"
	"swiftpos/internal/engine"
	"swiftpos/internal/middleware"
	"swiftpos/internal/models"
	"swiftpos/internal/store"
)

var testSecret = []byte("test-secret")

// newTestRouter wires the same route tree the server mounts, on a fresh
// temp database.
func newTestRouter(t *testing.T) (*gin.Engine, *engine.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "swiftpos.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	eng, err := engine.New(st)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	authSvc, err := auth.NewService(st)
	if err != nil {
		t.Fatalf("auth.NewService() failed: %v", err)
	}
	scheduler := engine.NewScheduler(eng, time.Hour,
		engine.StubTransport(0), engine.StubTransport(0))
	t.Cleanup(scheduler.Stop)

	r := gin.New()
	r.POST("/login", Login(authSvc, testSecret))

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(testSecret))
	api.GET("/products", GetProducts(eng))
	api.POST("/checkout", ProcessSale(eng))
	api.GET("/transactions", GetTransactions(eng))

	admin := api.Group("/")
	admin.Use(middleware.RequireRole("admin"))
	admin.DELETE("/transactions/:id", DeleteTransaction(eng, authSvc))
	admin.POST("/backup/trigger", TriggerBackup(scheduler))
	admin.POST("/backup/restore", RestoreData(eng, authSvc))
	admin.GET("/users", ListUsers(authSvc))
	admin.DELETE("/users/:id", DeleteUser(authSvc))

	return r, eng, authSvc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string, extra map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + store.DefaultSeedPassword + `"}`
	w := doJSON(t, r, http.MethodPost, "/login", "", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login as %q: status %d, body %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response had no token: %s", w.Body.String())
	}
	return resp.Token
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/login", "", `{"username":"admin","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/products", "", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestCheckoutSettlesSale(t *testing.T) {
	r, eng, _ := newTestRouter(t)
	token := loginAs(t, r, "admin")

	body := `{"customerId":"","items":[
		{"productId":"HH164-3243-0","name":"FILTER(CARTRIDGE,OIL)","unitPrice":"18.50","unitCost":"13.00","quantity":2}
	]}`
	w := doJSON(t, r, http.MethodPost, "/api/checkout", token, body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID           string `json:"id"`
		CustomerName string `json:"customerName"`
		TotalAmount  string `json:"totalAmount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding sale response: %v", err)
	}
	if resp.CustomerName != "Walk-in Customer" {
		t.Errorf("customerName = %q, want Walk-in Customer", resp.CustomerName)
	}
	if resp.TotalAmount != "37" {
		t.Errorf("totalAmount = %q, want 37", resp.TotalAmount)
	}

	found := false
	for _, p := range eng.Products() {
		if p.ID == "HH164-3243-0" {
			found = true
			if p.Stock != 48 {
				t.Errorf("stock = %d, want 48", p.Stock)
			}
		}
	}
	if !found {
		t.Error("sold product missing from the catalog")
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	r, _, _ := newTestRouter(t)
	token := loginAs(t, r, "admin")

	w := doJSON(t, r, http.MethodPost, "/api/checkout", token, `{"customerId":"","items":[]}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHistoryEditNeedsPasswordHeader(t *testing.T) {
	r, eng, _ := newTestRouter(t)
	token := loginAs(t, r, "admin")

	sale, err := eng.ProcessSale("", []engine.CartLine{{
		ProductID: "HH164-3243-0",
		Name:      "FILTER(CARTRIDGE,OIL)",
		Quantity:  1,
	}})
	if err != nil {
		t.Fatalf("ProcessSale() failed: %v", err)
	}

	// No header: the role alone is not enough.
	w := doJSON(t, r, http.MethodDelete, "/api/transactions/"+sale.ID, token, "", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status without header = %d, want 403", w.Code)
	}
	if len(eng.Transactions()) != 1 {
		t.Fatal("gated delete went through anyway")
	}

	// Wrong password: same refusal.
	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+sale.ID, token, "",
		map[string]string{"X-Confirm-Password": "nope"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status with wrong password = %d, want 403", w.Code)
	}

	// Correct password: delete succeeds.
	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+sale.ID, token, "",
		map[string]string{"X-Confirm-Password": store.DefaultSeedPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("status with password = %d, body %s", w.Code, w.Body.String())
	}
	if len(eng.Transactions()) != 0 {
		t.Error("transaction still present after gated delete")
	}
}

func TestAdminRoutesBlockOtherRoles(t *testing.T) {
	r, _, _ := newTestRouter(t)
	token := loginAs(t, r, "manager")

	w := doJSON(t, r, http.MethodPost, "/api/backup/restore", token, `{}`, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRestoreRejectsBadEnvelope(t *testing.T) {
	r, _, _ := newTestRouter(t)
	token := loginAs(t, r, "admin")

	for _, body := range []string{"null", `"backup"`, "[1,2,3]", "{not json"} {
		w := doJSON(t, r, http.MethodPost, "/api/backup/restore", token, body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Restore(%s): status = %d, want 400", body, w.Code)
		}
	}
}

func TestRestoreReplacesUserRoster(t *testing.T) {
	r, _, authSvc := newTestRouter(t)
	token := loginAs(t, r, "admin")

	// Borrow a real hash so the restored account can log in with the
	// default secret.
	var adminHash string
	for _, u := range authSvc.Users() {
		if u.Username == "admin" {
			adminHash = u.PasswordHash
		}
	}
	if adminHash == "" {
		t.Fatal("seed admin not found")
	}

	envelope, err := json.Marshal(map[string][]models.User{
		"users": {{ID: "9", Name: "Restored Owner", Username: "restored", PasswordHash: adminHash, Role: "admin"}},
	})
	if err != nil {
		t.Fatalf("building envelope: %v", err)
	}
	w := doJSON(t, r, http.MethodPost, "/api/backup/restore", token, string(envelope), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restore status = %d, body %s", w.Code, w.Body.String())
	}

	// The auth service must serve the restored roster, not its startup cache.
	users := authSvc.Users()
	if len(users) != 1 || users[0].Username != "restored" {
		t.Fatalf("roster after restore = %+v, want only the restored account", users)
	}

	if w := doJSON(t, r, http.MethodPost, "/login", "", `{"username":"restored","password":"`+store.DefaultSeedPassword+`"}`, nil); w.Code != http.StatusOK {
		t.Errorf("restored account cannot log in: status %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/login", "", `{"username":"manager","password":"`+store.DefaultSeedPassword+`"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("pre-restore account still logs in: status %d", w.Code)
	}

	// A roster mutation after the restore must not resurrect the old
	// accounts by writing a stale cache back.
	if w := doJSON(t, r, http.MethodDelete, "/api/users/2", token, "", nil); w.Code != http.StatusOK {
		t.Fatalf("user delete status = %d", w.Code)
	}
	listed := doJSON(t, r, http.MethodGet, "/api/users", token, "", nil)
	var roster []models.User
	if err := json.Unmarshal(listed.Body.Bytes(), &roster); err != nil {
		t.Fatalf("decoding roster: %v", err)
	}
	if len(roster) != 1 || roster[0].Username != "restored" {
		t.Errorf("roster after no-op delete = %+v, want only the restored account", roster)
	}
}

func TestManualBackupConflictsWhenDisconnected(t *testing.T) {
	r, _, _ := newTestRouter(t)
	token := loginAs(t, r, "admin")

	w := doJSON(t, r, http.MethodPost, "/api/backup/trigger", token, "", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}
