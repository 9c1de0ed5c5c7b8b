// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Catalog - base tables
		&product.ProductRecord{},

		// Order domain - dependent tables
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_paid_delivered ON orders(is_paid, is_delivered)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("Database indexes created successfully")
	return nil
}

// SeedInitialData seeds a small demo catalog in development
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.ProductRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil // Already seeded
	}

	log.Println("Seeding demo catalog...")

	products := []product.ProductRecord{
		{Name: "Wireless Headphones", Brand: "Aurora", Image: "/images/headphones.jpg", Price: 249900, CountInStock: 12},
		{Name: "Mechanical Keyboard", Brand: "KeyForge", Image: "/images/keyboard.jpg", Price: 119900, CountInStock: 30},
		{Name: "USB-C Charger", Brand: "VoltX", Image: "/images/charger.jpg", Price: 39900, CountInStock: 80},
		{Name: "Smartwatch", Brand: "Aurora", Image: "/images/watch.jpg", Price: 499900, CountInStock: 5},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}

	log.Printf("Seeded %d demo products", len(products))
	return nil
}
