package main

import (
	"time"

	"swiftpos/internal/auth"
	"swiftpos/internal/config"
	"swiftpos/internal/engine"
	"swiftpos/internal/handlers"
	"swiftpos/internal/middleware"
	"swiftpos/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to open record store: %v", err)
	}

	eng, err := engine.New(st)
	if err != nil {
		logrus.Fatalf("failed to load state engine: %v", err)
	}

	authSvc, err := auth.NewService(st)
	if err != nil {
		logrus.Fatalf("failed to load auth service: %v", err)
	}

	// The upload transports are timed stubs; real cloud sync is out of scope.
	scheduler := engine.NewScheduler(eng, cfg.BackupDebounce,
		engine.StubTransport(cfg.AutoSyncDelay),
		engine.StubTransport(cfg.ManualSyncDelay))
	defer scheduler.Stop()

	secret := []byte(cfg.JWTSecret)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // Allow the React client
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Confirm-Password"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login(authSvc, secret))

	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", handlers.Register(authSvc))
		logrus.Warn("Registration route is OPEN. Disable this in production!")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(secret))
	{
		// PUBLIC TO STAFF & ADMIN
		api.POST("/logout", handlers.Logout(authSvc))
		api.GET("/products", handlers.GetProducts(eng))
		api.GET("/customers", handlers.GetCustomers(eng))
		api.POST("/customers", handlers.AddCustomer(eng)) // checkout creates customers inline
		api.POST("/checkout", handlers.ProcessSale(eng))
		api.GET("/transactions", handlers.GetTransactions(eng))
		api.GET("/expenses", handlers.GetExpenses(eng))
		api.GET("/settings", handlers.GetSettings(eng))
		api.GET("/backup/status", handlers.BackupStatus(eng, scheduler))

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/products", handlers.AddProduct(eng))
			admin.POST("/products/bulk", handlers.AddProductsBulk(eng))
			admin.PUT("/products/:id", handlers.UpdateProduct(eng))
			admin.DELETE("/products/:id", handlers.DeleteProduct(eng))

			admin.POST("/customers/bulk", handlers.AddCustomersBulk(eng))
			admin.PUT("/customers/:id", handlers.UpdateCustomer(eng))
			admin.DELETE("/customers/:id", handlers.DeleteCustomer(eng))

			// Editing settled history also requires the password gate inside
			// the handler, on top of the admin role.
			admin.PUT("/transactions/:id", handlers.UpdateTransaction(eng, authSvc))
			admin.DELETE("/transactions/:id", handlers.DeleteTransaction(eng, authSvc))

			admin.POST("/expenses", handlers.AddExpense(eng))
			admin.PUT("/expenses/:id", handlers.UpdateExpense(eng, authSvc))
			admin.DELETE("/expenses/:id", handlers.DeleteExpense(eng, authSvc))

			admin.PUT("/settings", handlers.UpdateSettings(eng))
			admin.POST("/backup/trigger", handlers.TriggerBackup(scheduler))
			admin.GET("/backup/export", handlers.ExportData(eng))
			admin.POST("/backup/restore", handlers.RestoreData(eng, authSvc))

			admin.GET("/reports/summary", handlers.GetSummaryReport(eng))
			admin.GET("/reports/valuation", handlers.GetStockValuation(eng))
			admin.GET("/reports/daybook", handlers.GetDayBook(eng))

			admin.GET("/users", handlers.ListUsers(authSvc))
			admin.POST("/users", handlers.AddUser(authSvc))
			admin.PUT("/users/:id", handlers.UpdateUser(authSvc))
			admin.DELETE("/users/:id", handlers.DeleteUser(authSvc))
		}
	}

	logrus.Info("Server starting on :" + cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
