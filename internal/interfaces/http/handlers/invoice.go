// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/pkg/invoice"
)

// InvoiceHandler serves PDF receipts for paid orders
type InvoiceHandler struct {
	orders   *order.Service
	invoices *invoice.Service
	log      *logrus.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orders *order.Service, invoices *invoice.Service, log *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		orders:   orders,
		invoices: invoices,
		log:      log,
	}
}

// DownloadInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) DownloadInvoice(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orders.Get(uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	if !o.IsPaid {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invoice is available once the order is paid",
		})
		return
	}

	pdf, err := h.invoices.GenerateInvoice(o)
	if err != nil {
		h.log.WithError(err).WithField("order_id", o.ID).Error("Invoice generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}
