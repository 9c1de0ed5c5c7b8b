// internal/domain/product/catalog.go
package product

import (
	"fmt"

	"gorm.io/gorm"
)

// Catalog is the product collaborator consumed by the cart and order services.
type Catalog interface {
	GetProduct(id uint) (*ProductRecord, error)
	ListProducts() ([]ProductRecord, error)
	DecrementStock(tx *gorm.DB, id uint, quantity int) error
	RestoreStock(tx *gorm.DB, id uint, quantity int) error
}

// Service is the GORM-backed catalog implementation
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*ProductRecord, error) {
	var record ProductRecord
	result := s.db.Where("id = ?", id).First(&record)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve product %d: %w", id, result.Error)
	}
	return &record, nil
}

// ListProducts retrieves all catalog products
func (s *Service) ListProducts() ([]ProductRecord, error) {
	var records []ProductRecord
	if err := s.db.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return records, nil
}

// DecrementStock reduces the available stock for a product within a transaction
func (s *Service) DecrementStock(tx *gorm.DB, id uint, quantity int) error {
	result := tx.Model(&ProductRecord{}).
		Where("id = ? AND count_in_stock >= ?", id, quantity).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", quantity))

	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock for product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for product %d", id)
	}
	return nil
}

// RestoreStock returns reserved stock to a product within a transaction
func (s *Service) RestoreStock(tx *gorm.DB, id uint, quantity int) error {
	result := tx.Model(&ProductRecord{}).
		Where("id = ?", id).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock + ?", quantity))

	if result.Error != nil {
		return fmt.Errorf("failed to restore stock for product %d: %w", id, result.Error)
	}
	return nil
}
