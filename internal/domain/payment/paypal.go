// internal/domain/payment/paypal.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// RateConfig binds a conversion source to the currency pair used when a
// provider settles in a different currency than prices are displayed in.
type RateConfig struct {
	Source             pricing.RateSource
	DisplayCurrency    string
	SettlementCurrency string
}

// Capture is the provider's view of a completed payment.
type Capture struct {
	ID          string
	Status      string
	PayerEmail  string
	CompletedAt time.Time
}

// Provider abstracts the external payment gateway so order placement and
// tests never touch the network.
type Provider interface {
	// CreateProviderOrder opens a payment intent for the given minor-unit
	// amount and returns the provider's order reference.
	CreateProviderOrder(ctx context.Context, amount int64, currency string) (string, error)
	// CaptureOrder settles a previously created provider order.
	CaptureOrder(ctx context.Context, providerOrderID string) (*Capture, error)
}

// PayPalClient talks to the PayPal Orders v2 REST API.
type PayPalClient struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
}

// NewPayPalClient creates a PayPal API client from payment configuration.
func NewPayPalClient(cfg config.PaymentConfig) *PayPalClient {
	return &PayPalClient{
		baseURL:  cfg.PayPalBaseURL,
		clientID: cfg.PayPalClientID,
		secret:   cfg.PayPalSecret,
		httpClient: &http.Client{
			Timeout: cfg.ProviderTimeout,
		},
	}
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	Amount paypalAmount `json:"amount"`
}

type paypalOrderRequest struct {
	Intent        string               `json:"intent"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type paypalCaptureResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// CreateProviderOrder opens a CAPTURE-intent order for the amount.
func (c *PayPalClient) CreateProviderOrder(ctx context.Context, amount int64, currency string) (string, error) {
	payload := paypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{
			{Amount: paypalAmount{CurrencyCode: currency, Value: formatMinor(amount)}},
		},
	}

	var resp paypalOrderResponse
	if err := c.makeAPICall(ctx, http.MethodPost, "/v2/checkout/orders", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to create provider order: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("provider returned empty order id")
	}
	return resp.ID, nil
}

// CaptureOrder settles the provider order and returns the capture details.
func (c *PayPalClient) CaptureOrder(ctx context.Context, providerOrderID string) (*Capture, error) {
	endpoint := fmt.Sprintf("/v2/checkout/orders/%s/capture", providerOrderID)

	var resp paypalCaptureResponse
	if err := c.makeAPICall(ctx, http.MethodPost, endpoint, struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("failed to capture provider order: %w", err)
	}

	completedAt := time.Now()
	if resp.UpdateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, resp.UpdateTime); err == nil {
			completedAt = parsed
		}
	}

	return &Capture{
		ID:          resp.ID,
		Status:      resp.Status,
		PayerEmail:  resp.Payer.EmailAddress,
		CompletedAt: completedAt,
	}, nil
}

func (c *PayPalClient) makeAPICall(ctx context.Context, method, endpoint string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// formatMinor renders a minor-currency amount as the decimal string the
// provider API expects.
func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// PayPalCollector settles an order through the external provider. The
// provider settles in the configured settlement currency, so the display
// amount is converted exactly once before the provider order is created.
type PayPalCollector struct {
	provider   Provider
	rates      RateConfig
	payerEmail string
}

// NewPayPalCollector creates the provider-backed collector.
func NewPayPalCollector(provider Provider, rates RateConfig, payerEmail string) *PayPalCollector {
	return &PayPalCollector{
		provider:   provider,
		rates:      rates,
		payerEmail: payerEmail,
	}
}

// Collect creates and captures a provider order for the full order total.
func (p *PayPalCollector) Collect(ctx context.Context, o *order.Order) (*order.PaymentResult, error) {
	rate, err := p.rates.Source.Rate(p.rates.DisplayCurrency, p.rates.SettlementCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversion rate: %w", err)
	}
	amount := pricing.ConvertMinor(o.TotalPrice, rate)

	providerOrderID, err := p.provider.CreateProviderOrder(ctx, amount, p.rates.SettlementCurrency)
	if err != nil {
		return nil, err
	}

	capture, err := p.provider.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		return nil, err
	}
	if capture.Status != order.ResultStatusCompleted {
		return nil, fmt.Errorf("provider capture not completed: status %s", capture.Status)
	}

	updateTime := capture.CompletedAt
	payerEmail := capture.PayerEmail
	if payerEmail == "" {
		payerEmail = p.payerEmail
	}

	return &order.PaymentResult{
		Reference:  capture.ID,
		Status:     capture.Status,
		UpdateTime: &updateTime,
		Source:     "PayPal",
		PayerEmail: payerEmail,
	}, nil
}
