// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/pkg/invoice"
)

// SetupRoutes wires the storefront services and registers all API routes.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	log := newLogger(cfg)

	engine := pricing.NewEngine(
		pricing.FreeAboveThreshold(cfg.Pricing.FreeShippingThreshold, cfg.Pricing.FlatShippingRate),
		pricing.PercentTax(cfg.Pricing.TaxRateBps),
	)

	catalog := product.NewService(db)
	orders := order.NewService(db, catalog)

	rates := payment.RateConfig{
		Source:             pricing.NewFixedRate(cfg.Payment.DisplayCcy, cfg.Payment.SettlementCcy, cfg.Payment.ConversionRate),
		DisplayCurrency:    cfg.Payment.DisplayCcy,
		SettlementCurrency: cfg.Payment.SettlementCcy,
	}
	payments := payment.NewAdapter(payment.NewPayPalClient(cfg.Payment), rates)

	invoices := invoice.NewService(cfg)
	authorizer := handlers.NewTokenDeliverAuthorizer(cfg.Security.AdminAPIToken)

	productHandler := handlers.NewProductHandler(catalog)
	cartHandler := handlers.NewCartHandler(redisClient, catalog, engine, cfg)
	favoritesHandler := handlers.NewFavoritesHandler(redisClient, catalog, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(redisClient, orders, engine, cfg, log)
	orderHandler := handlers.NewOrderHandler(orders, payments, authorizer, log)
	invoiceHandler := handlers.NewInvoiceHandler(orders, invoices, log)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	carts := rg.Group("/cart")
	{
		carts.GET("", cartHandler.GetCart)
		carts.DELETE("", cartHandler.ClearCart)
		carts.POST("/items", cartHandler.AddToCart)
		carts.PUT("/items/:id", cartHandler.UpdateCartItem)
		carts.DELETE("/items/:id", cartHandler.RemoveCartItem)
	}

	favorites := rg.Group("/favorites")
	{
		favorites.GET("", favoritesHandler.ListFavorites)
		favorites.DELETE("", favoritesHandler.ClearFavorites)
		favorites.PUT("/:id", favoritesHandler.AddFavorite)
		favorites.DELETE("/:id", favoritesHandler.RemoveFavorite)
	}

	checkouts := rg.Group("/checkout")
	{
		checkouts.GET("/state", checkoutHandler.GetState)
		checkouts.PUT("/shipping-address", checkoutHandler.SetShippingAddress)
		checkouts.PUT("/payment-method", checkoutHandler.SetPaymentMethod)
		checkouts.POST("/place-order", checkoutHandler.PlaceOrder)
	}

	orderRoutes := rg.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.ListMyOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrder)
		orderRoutes.POST("/:id/pay", orderHandler.PayOrder)
		orderRoutes.POST("/:id/deliver", orderHandler.DeliverOrder)
		orderRoutes.GET("/:id/invoice", invoiceHandler.DownloadInvoice)
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
