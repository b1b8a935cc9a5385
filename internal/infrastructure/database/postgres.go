package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/config"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff and access control
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Catalog and stock
		&entity.Category{},
		&entity.Product{},
		&entity.InventoryAdjustment{},

		// Contacts
		&entity.Customer{},
		&entity.Supplier{},

		// Ledger
		&entity.ExchangeRate{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.CustomerCredit{},
		&entity.CreditPayment{},
		&entity.SupplierOrder{},
		&entity.SupplierOrderItem{},
		&entity.Expense{},
		&entity.DailyClose{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Permissions checked by the HTTP routes
var defaultPermissions = []string{
	"manage-exchange-rates",
	"manage-products",
	"manage-sales",
	"manage-credits",
	"manage-customers",
	"manage-suppliers",
	"manage-supplier-orders",
	"manage-expenses",
	"manage-daily-close",
	"view-dashboard",
	"manage-users",
}

// Role name to permission names. A nil list grants every permission.
var defaultRoles = []struct {
	name        string
	permissions []string
}{
	{name: "owner"},
	{name: "admin", permissions: []string{
		"manage-exchange-rates",
		"manage-products",
		"manage-sales",
		"manage-credits",
		"manage-customers",
		"manage-suppliers",
		"manage-supplier-orders",
		"manage-expenses",
		"manage-daily-close",
		"view-dashboard",
	}},
	{name: "cashier", permissions: []string{
		"manage-sales",
		"manage-credits",
	}},
}

// SeedDefaultData seeds permissions, roles and the owner account. Existing
// rows are left untouched.
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	log.Println("Seeding default data...")

	byName := make(map[string]entity.Permission, len(defaultPermissions))
	for _, name := range defaultPermissions {
		permission := entity.Permission{Name: name, GuardName: "web"}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&permission).Error; err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
		byName[name] = permission
	}

	for _, def := range defaultRoles {
		var role entity.Role
		err := db.Where("name = ?", def.name).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up role %s: %w", def.name, err)
		}

		role = entity.Role{Name: def.name, GuardName: "web"}
		if def.permissions == nil {
			for _, name := range defaultPermissions {
				role.Permissions = append(role.Permissions, byName[name])
			}
		} else {
			for _, name := range def.permissions {
				role.Permissions = append(role.Permissions, byName[name])
			}
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", def.name, err)
		}
		log.Printf("Role created: %s", def.name)
	}

	if err := seedOwner(db, admin); err != nil {
		return err
	}

	log.Println("Default data seeding completed")
	return nil
}

// seedOwner creates the owner account from ADMIN_EMAIL and ADMIN_PASSWORD
func seedOwner(db *gorm.DB, admin *config.AdminConfig) error {
	if admin == nil || admin.Email == "" || admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		log.Printf("Admin user already exists: %s", admin.Email)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	var ownerRole entity.Role
	if err := db.Where("name = ?", "owner").First(&ownerRole).Error; err != nil {
		return fmt.Errorf("failed to load owner role: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Store Owner"
	}
	firstName, lastName, _ := strings.Cut(name, " ")

	user := entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Username:  admin.Email,
		Email:     admin.Email,
		Password:  string(hashedPassword),
		IsActive:  true,
		Roles:     []entity.Role{ownerRole},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Admin user created: %s", admin.Email)
	return nil
}
