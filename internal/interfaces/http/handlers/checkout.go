// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints. Flows are kept per session so
// the placement guard spans requests from the same visitor.
type CheckoutHandler struct {
	redisClient *redis.Client
	placer      checkout.OrderPlacer
	engine      *pricing.Engine
	config      *config.Config
	log         *logrus.Logger

	mu    sync.Mutex
	flows map[string]*checkout.Flow
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(redisClient *redis.Client, placer checkout.OrderPlacer, engine *pricing.Engine, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		redisClient: redisClient,
		placer:      placer,
		engine:      engine,
		config:      cfg,
		log:         log,
		flows:       make(map[string]*checkout.Flow),
	}
}

func (h *CheckoutHandler) flowFor(c *gin.Context) *checkout.Flow {
	sessionID := middleware.SessionID(c)

	h.mu.Lock()
	defer h.mu.Unlock()

	if flow, ok := h.flows[sessionID]; ok {
		return flow
	}

	key := cart.CartKey + ":" + sessionID
	persistence := cart.NewRedisPersistence(h.redisClient, key, h.config.Security.SessionTTL)
	store := cart.NewStore(persistence, h.engine)
	flow := checkout.NewFlow(store, h.placer, h.engine, h.log)
	h.flows[sessionID] = flow
	return flow
}

// ShippingAddressRequest is the body for PUT /checkout/shipping-address
type ShippingAddressRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentMethodRequest is the body for PUT /checkout/payment-method
type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// GetState handles GET /checkout/state
func (h *CheckoutHandler) GetState(c *gin.Context) {
	state, err := h.flowFor(c).Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to determine checkout state",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout state retrieved successfully",
		"data":    gin.H{"state": state},
	})
}

// SetShippingAddress handles PUT /checkout/shipping-address
func (h *CheckoutHandler) SetShippingAddress(c *gin.Context) {
	var req ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	addr := cart.ShippingAddress{
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}

	if err := h.flowFor(c).SetShippingAddress(c.Request.Context(), addr); err != nil {
		var validation *checkout.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validation.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save shipping address",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping address saved successfully",
	})
}

// SetPaymentMethod handles PUT /checkout/payment-method
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := h.flowFor(c).SetPaymentMethod(c.Request.Context(), cart.PaymentMethod(req.Method))
	if err != nil {
		var validation *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment method",
			})
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validation.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save payment method",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method saved successfully",
	})
}

// PlaceOrder handles POST /checkout/place-order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	placed, err := h.flowFor(c).PlaceOrder(c.Request.Context(), requestUserID(c))
	if err != nil {
		var validation *checkout.ValidationError
		var creation *checkout.OrderCreationFailure
		switch {
		case errors.Is(err, checkout.ErrPlacementInFlight):
			// A duplicate submission is dropped, not failed. The first
			// attempt is still running and will produce the order.
			c.JSON(http.StatusAccepted, gin.H{
				"message": "Order placement already in progress",
			})
		case errors.Is(err, checkout.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment method",
			})
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validation.Error(),
			})
		case errors.As(err, &creation):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Order could not be created, please try again",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// requestUserID resolves the acting user from the X-User-ID header. The
// storefront has no account system; the header is an integration hook.
func requestUserID(c *gin.Context) uint {
	if raw := c.GetHeader("X-User-ID"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return uint(id)
		}
	}
	return 0
}
