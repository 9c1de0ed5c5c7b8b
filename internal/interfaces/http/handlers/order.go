// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
)

// DeliverAuthorizer gates the mark-delivered transition. It is a capability
// check, not an account system.
type DeliverAuthorizer interface {
	CanDeliver(c *gin.Context) bool
}

// TokenDeliverAuthorizer grants delivery when the request presents the
// configured admin token. An empty configured token denies everyone.
type TokenDeliverAuthorizer struct {
	token string
}

// NewTokenDeliverAuthorizer creates a token-based deliver authorizer.
func NewTokenDeliverAuthorizer(token string) *TokenDeliverAuthorizer {
	return &TokenDeliverAuthorizer{token: token}
}

// CanDeliver reports whether the request carries the admin token.
func (a *TokenDeliverAuthorizer) CanDeliver(c *gin.Context) bool {
	if a.token == "" {
		return false
	}
	return c.GetHeader("X-Admin-Token") == a.token
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	orders     *order.Service
	payments   *payment.Adapter
	authorizer DeliverAuthorizer
	log        *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *order.Service, payments *payment.Adapter, authorizer DeliverAuthorizer, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orders:     orders,
		payments:   payments,
		authorizer: authorizer,
		log:        log,
	}
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// ListMyOrders handles GET /orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.orders.ListUserOrders(requestUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// PayOrder handles POST /orders/:id/pay. Payment collection and the paid
// transition happen in one request; paying an already paid order is a
// no-op that returns the order with its original settlement.
func (h *OrderHandler) PayOrder(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}

	if o.IsPaid {
		c.JSON(http.StatusOK, gin.H{
			"message": "Order is already paid",
			"data":    o,
		})
		return
	}

	var req payment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.payments.Collect(c.Request.Context(), o, req)
	if err != nil {
		var validation *payment.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validation.Error(),
			})
			return
		}
		h.log.WithError(err).WithField("order_id", o.ID).Error("Payment collection failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment could not be collected",
		})
		return
	}

	paid, err := h.orders.Pay(o.ID, *result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to record payment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order paid successfully",
		"data":    paid,
	})
}

// DeliverOrder handles POST /orders/:id/deliver
func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	if !h.authorizer.CanDeliver(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized to mark orders delivered",
		})
		return
	}

	o, ok := h.loadOrder(c)
	if !ok {
		return
	}

	delivered, err := h.orders.Deliver(o.ID)
	if err != nil {
		if errors.Is(err, order.ErrNotPaid) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order cannot be delivered before it is paid",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark order delivered",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order marked as delivered",
		"data":    delivered,
	})
}

func (h *OrderHandler) loadOrder(c *gin.Context) (*order.Order, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return nil, false
	}

	o, err := h.orders.Get(uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return nil, false
	}
	return o, true
}
