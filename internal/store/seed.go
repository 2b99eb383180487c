package store

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"swiftpos/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedProducts is the starter catalog written on first run.
func seedProducts() []models.Product {
	return []models.Product{
		{ID: "HH164-3243-0", Name: "FILTER(CARTRIDGE,OIL)", Price: dec("18.50"), CostPrice: dec("13.00"), Stock: 50, Category: "Filters"},
		{ID: "1J884-3708-0", Name: "CONNECTOR", Price: dec("5.25"), CostPrice: dec("3.50"), Stock: 100, Category: "Parts"},
		{ID: "01754-50875", Name: "BOLT,FLANGE", Price: dec("1.50"), CostPrice: dec("0.80"), Stock: 200, Category: "Hardware"},
		{ID: "1J883-7301-0", Name: "THERMOSTAT,ASSY", Price: dec("45.00"), CostPrice: dec("32.00"), Stock: 15, Category: "Engine"},
		{ID: "5H400-2675-0", Name: "FILTER", Price: dec("12.00"), CostPrice: dec("8.50"), Stock: 40, Category: "Filters"},
		{ID: "5H476-2671-2", Name: "COMP.TANK,FUEL", Price: dec("250.00"), CostPrice: dec("190.00"), Stock: 5, Category: "Fuel System"},
		{ID: "5H487-5140-0", Name: "SEPARATOR,WATER", Price: dec("35.00"), CostPrice: dec("25.00"), Stock: 10, Category: "Fuel System"},
		{ID: "5T057-2560-0", Name: "ASSY FILTER,FUEL", Price: dec("28.50"), CostPrice: dec("20.00"), Stock: 20, Category: "Fuel System"},
		{ID: "5T057-2610-3", Name: "CLEANER,AIR", Price: dec("32.00"), CostPrice: dec("22.50"), Stock: 15, Category: "Filters"},
		{ID: "5T051-2621-0", Name: "COVER", Price: dec("25.00"), CostPrice: dec("18.00"), Stock: 10, Category: "Body"},
		{ID: "5T051-2622-0", Name: "BODY", Price: dec("150.00"), CostPrice: dec("110.00"), Stock: 4, Category: "Body"},
		{ID: "5T051-2625-0", Name: "NUT,KNOB", Price: dec("3.00"), CostPrice: dec("1.50"), Stock: 50, Category: "Hardware"},
		{ID: "17111-9701-0", Name: "BELT,V", Price: dec("15.75"), CostPrice: dec("10.00"), Stock: 30, Category: "Engine"},
		{ID: "5H669-4250-3", Name: "ASSY ALTERNATOR", Price: dec("185.00"), CostPrice: dec("140.00"), Stock: 3, Category: "Electrical"},
		{ID: "17123-6301-6", Name: "ASSY STARTER", Price: dec("195.00"), CostPrice: dec("145.00"), Stock: 3, Category: "Electrical"},
		{ID: "5T101-4125-2", Name: "RELAY", Price: dec("12.50"), CostPrice: dec("8.00"), Stock: 40, Category: "Electrical"},
		{ID: "5H492-4211-0", Name: "ECU (MAIN)", Price: dec("450.00"), CostPrice: dec("350.00"), Stock: 2, Category: "Electrical"},
		{ID: "54352-3136-0", Name: "SWITCH", Price: dec("8.50"), CostPrice: dec("5.00"), Stock: 35, Category: "Electrical"},
		{ID: "5T089-7530-0", Name: "SWITCH,ASSY(HAND-OPERAT.)", Price: dec("22.00"), CostPrice: dec("15.00"), Stock: 12, Category: "Electrical"},
		{ID: "5H601-7320-2", Name: "ASSY MOTOR", Price: dec("120.00"), CostPrice: dec("85.00"), Stock: 5, Category: "Electrical"},
		{ID: "1G171-5966-0", Name: "SENSOR(REVOLUTION)", Price: dec("45.00"), CostPrice: dec("30.00"), Stock: 8, Category: "Sensors"},
		{ID: "5T057-4213-2", Name: "SENSOR,GRAIN", Price: dec("55.00"), CostPrice: dec("38.00"), Stock: 6, Category: "Sensors"},
		{ID: "52200-9951-0", Name: "SWITCH", Price: dec("9.00"), CostPrice: dec("5.50"), Stock: 30, Category: "Electrical"},
		{ID: "5T057-4224-2", Name: "SWITCH,CONB", Price: dec("14.50"), CostPrice: dec("9.00"), Stock: 20, Category: "Electrical"},
		{ID: "5H476-4121-0", Name: "ASSY METER", Price: dec("85.00"), CostPrice: dec("60.00"), Stock: 5, Category: "Electrical"},
		{ID: "5H484-3138-3", Name: "ASSY LAMP,ELECTRIC", Price: dec("28.00"), CostPrice: dec("19.00"), Stock: 15, Category: "Electrical"},
		{ID: "5H484-3139-2", Name: "BULB", Price: dec("2.50"), CostPrice: dec("1.00"), Stock: 100, Category: "Electrical"},
		{ID: "5H492-4295-0", Name: "FUSE(MINI,25A)", Price: dec("0.75"), CostPrice: dec("0.25"), Stock: 200, Category: "Electrical"},
		{ID: "5H492-4294-0", Name: "FUSE(MINI,20A)", Price: dec("0.75"), CostPrice: dec("0.25"), Stock: 200, Category: "Electrical"},
	}
}

func seedCustomers() []models.Customer {
	return []models.Customer{
		{ID: "C1", Name: "John Doe", Phone: "555-0123", Email: "john@example.com", TotalSpent: decimal.Zero},
	}
}

// DefaultSeedPassword is the shared secret both seed accounts start with.
// Operators are expected to change it after the first login.
const DefaultSeedPassword = "password"

// seedUsers creates the default admin and manager accounts. The shared
// default secret is hashed here rather than stored in source as a digest.
func seedUsers() []models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on an out-of-range cost, which DefaultCost is not
		panic(err)
	}
	return []models.User{
		{ID: "1", Name: "Owner", Username: "admin", PasswordHash: string(hash), Role: "admin"},
		{ID: "2", Name: "Manager", Username: "manager", PasswordHash: string(hash), Role: "manager"},
	}
}

// DefaultSettings is the baseline configuration merged under whatever has
// been persisted.
func DefaultSettings() models.StoreSettings {
	return models.StoreSettings{
		StoreName:            "SM International",
		Address:              "123 Business Road, Dhaka, Bangladesh",
		Phone:                "+880 1700-000000",
		Email:                "info@sminternational.com",
		FooterMessage:        "Thank you for your business! Please come again.",
		AutoBackup:           false,
		GoogleDriveConnected: false,
	}
}
