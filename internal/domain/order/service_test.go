// internal/domain/order/service_test.go
package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
)

func setupService(t *testing.T) (*order.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&product.ProductRecord{}, &order.Order{}, &order.OrderItem{}))

	require.NoError(t, db.Create(&product.ProductRecord{
		Name:         "Shirt",
		Brand:        "Acme",
		Price:        1000,
		CountInStock: 5,
	}).Error)

	catalog := product.NewService(db)
	return order.NewService(db, catalog), db
}

func validPayload() *order.CreateOrderPayload {
	return &order.CreateOrderPayload{
		UserID: 1,
		Items: []order.OrderItem{
			{ProductID: 1, Name: "Shirt", Brand: "Acme", Quantity: 2, Price: 1000},
		},
		ShippingAddress: order.ShippingAddress{
			Address:    "221B Baker Street",
			City:       "London",
			PostalCode: "NW1 6XE",
			Country:    "UK",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    2000,
		ShippingPrice: 100,
		TaxPrice:      300,
		TotalPrice:    2400,
	}
}

func completedResult() order.PaymentResult {
	now := time.Now().UTC()
	return order.PaymentResult{
		Reference:  "5O190127TN364715T",
		Status:     order.ResultStatusCompleted,
		UpdateTime: &now,
		Source:     "PayPal",
		PayerEmail: "buyer@example.com",
	}
}

func TestCreate(t *testing.T) {
	svc, db := setupService(t)

	o, err := svc.Create(validPayload())
	require.NoError(t, err)

	assert.NotZero(t, o.ID)
	assert.NotEmpty(t, o.OrderNumber)
	assert.Equal(t, order.StatusCreated, o.Status())
	assert.Len(t, o.Items, 1)
	assert.Equal(t, int64(2000), o.Items[0].TotalPrice)

	// Stock was reserved for the snapshot
	var p product.ProductRecord
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 3, p.CountInStock)
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	svc, _ := setupService(t)

	payload := validPayload()
	payload.Items = nil
	payload.ItemsPrice = 0
	payload.TotalPrice = 400

	_, err := svc.Create(payload)
	assert.Error(t, err)
}

func TestCreateRejectsMismatchedTotals(t *testing.T) {
	svc, _ := setupService(t)

	payload := validPayload()
	payload.TotalPrice = 9999

	_, err := svc.Create(payload)
	assert.Error(t, err)
}

func TestCreateRollsBackOnInsufficientStock(t *testing.T) {
	svc, db := setupService(t)

	payload := validPayload()
	payload.Items[0].Quantity = 6
	payload.ItemsPrice = 6000
	payload.TotalPrice = 6400

	_, err := svc.Create(payload)
	require.Error(t, err)

	// Nothing was written
	var count int64
	require.NoError(t, db.Model(&order.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	var p product.ProductRecord
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 5, p.CountInStock)
}

func TestPay(t *testing.T) {
	svc, _ := setupService(t)

	o, err := svc.Create(validPayload())
	require.NoError(t, err)

	paid, err := svc.Pay(o.ID, completedResult())
	require.NoError(t, err)

	assert.True(t, paid.IsPaid)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, order.StatusPaid, paid.Status())
	assert.Equal(t, "5O190127TN364715T", paid.PaymentResult.Reference)
	assert.Equal(t, "buyer@example.com", paid.PaymentResult.PayerEmail)
}

func TestPayAlreadyPaidIsNoOp(t *testing.T) {
	svc, _ := setupService(t)

	o, err := svc.Create(validPayload())
	require.NoError(t, err)

	_, err = svc.Pay(o.ID, completedResult())
	require.NoError(t, err)

	second := completedResult()
	second.Reference = "SECOND_ATTEMPT"

	paid, err := svc.Pay(o.ID, second)
	require.NoError(t, err)

	// The first settlement is retained
	assert.Equal(t, "5O190127TN364715T", paid.PaymentResult.Reference)
}

func TestPayRejectsIncompleteResult(t *testing.T) {
	svc, _ := setupService(t)

	o, err := svc.Create(validPayload())
	require.NoError(t, err)

	result := completedResult()
	result.Status = "PENDING"

	_, err = svc.Pay(o.ID, result)
	assert.Error(t, err)

	reloaded, err := svc.Get(o.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsPaid)
}

func TestDeliverRequiresPaid(t *testing.T) {
	svc, _ := setupService(t)

	o, err := svc.Create(validPayload())
	require.NoError(t, err)

	_, err = svc.Deliver(o.ID)
	assert.ErrorIs(t, err, order.ErrNotPaid)
}

func TestDeliver(t *testing.T) {
	svc, _ := setupService(t)

	o, err := svc.Create(validPayload())
	require.NoError(t, err)

	_, err = svc.Pay(o.ID, completedResult())
	require.NoError(t, err)

	delivered, err := svc.Deliver(o.ID)
	require.NoError(t, err)

	assert.True(t, delivered.IsDelivered)
	assert.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, order.StatusDelivered, delivered.Status())

	// Delivering again is a no-op
	again, err := svc.Deliver(o.ID)
	require.NoError(t, err)
	assert.Equal(t, delivered.DeliveredAt.Unix(), again.DeliveredAt.Unix())
}

func TestListUserOrders(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(validPayload())
	require.NoError(t, err)

	second := validPayload()
	second.Items[0].Quantity = 1
	second.ItemsPrice = 1000
	second.TotalPrice = 1400
	_, err = svc.Create(second)
	require.NoError(t, err)

	orders, err := svc.ListUserOrders(1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	other, err := svc.ListUserOrders(2)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGetUnknownOrder(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Get(404)
	assert.Error(t, err)
}
