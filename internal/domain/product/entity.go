// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// ProductRecord represents a catalog product as the storefront core sees it.
// The catalog itself (search index, categories, reviews) is an external
// collaborator; this record carries only what cart pricing and stock
// validation need.
type ProductRecord struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Brand        string         `gorm:"size:100" json:"brand"`
	Image        string         `gorm:"size:500" json:"image"`
	Price        int64          `gorm:"not null" json:"price"` // Unit price in minor currency units
	CountInStock int            `gorm:"default:0" json:"count_in_stock"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (ProductRecord) TableName() string {
	return "products"
}

// InStock reports whether the requested quantity is currently available
func (p *ProductRecord) InStock(quantity int) bool {
	return quantity <= p.CountInStock
}
