// internal/domain/product/catalog_test.go
package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront/internal/domain/product"
)

func setupCatalog(t *testing.T) (*product.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&product.ProductRecord{}))

	require.NoError(t, db.Create(&product.ProductRecord{
		Name:         "Shirt",
		Brand:        "Acme",
		Price:        1000,
		CountInStock: 5,
	}).Error)

	return product.NewService(db), db
}

func TestGetProduct(t *testing.T) {
	catalog, _ := setupCatalog(t)

	p, err := catalog.GetProduct(1)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", p.Name)
	assert.True(t, p.InStock(5))
	assert.False(t, p.InStock(6))

	_, err = catalog.GetProduct(404)
	assert.Error(t, err)
}

func TestDecrementStock(t *testing.T) {
	catalog, db := setupCatalog(t)

	require.NoError(t, catalog.DecrementStock(db, 1, 3))

	var p product.ProductRecord
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 2, p.CountInStock)
}

func TestDecrementStockInsufficient(t *testing.T) {
	catalog, db := setupCatalog(t)

	err := catalog.DecrementStock(db, 1, 6)
	require.Error(t, err)

	// The stock is untouched by the rejected decrement
	var p product.ProductRecord
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 5, p.CountInStock)
}

func TestRestoreStock(t *testing.T) {
	catalog, db := setupCatalog(t)

	require.NoError(t, catalog.DecrementStock(db, 1, 3))
	require.NoError(t, catalog.RestoreStock(db, 1, 3))

	var p product.ProductRecord
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 5, p.CountInStock)
}
