// Package razorpay adapts the Razorpay payment gateway to the
// port.PaymentGateway contract. Sessions are created with the order amount in
// minor currency units; client proofs are the hex HMAC of
// "<order_ref>|<payment_ref>"; webhooks are signed over the raw body.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/govalues/decimal"
	"github.com/parulcreation/projectshop/internal/adapter/config"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"github.com/parulcreation/projectshop/internal/core/sign"
	"go.uber.org/zap"
)

const signatureHeader = "X-Razorpay-Signature"

type Client struct {
	logger        *zap.Logger
	baseURL       string
	keyID         string
	secretKey     string
	webhookSecret string
	currency      string
	http          *http.Client
}

func NewClient(cfg *config.Razorpay, payments *config.Payments, log *zap.Logger) (*Client, error) {
	if cfg.KeyID == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("razorpay credentials are not configured")
	}
	return &Client{
		logger:        log,
		baseURL:       cfg.BaseURL,
		keyID:         cfg.KeyID,
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		currency:      payments.Currency,
		http:          &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type paymentResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// minorUnits converts a two-decimal currency amount to its integer minor-unit
// representation (paise for INR).
func minorUnits(amount decimal.Decimal) (int64, error) {
	whole, frac, ok := amount.Int64(2)
	if !ok {
		return 0, fmt.Errorf("amount %s does not fit in minor units", amount)
	}
	return whole*100 + frac, nil
}

func (c *Client) CreateSession(ctx context.Context, order *domain.Order) (*port.PaymentSession, error) {
	amount, err := minorUnits(order.Amount)
	if err != nil {
		return nil, err
	}

	payload := createOrderRequest{
		Amount:   amount,
		Currency: c.currency,
		Receipt:  order.Reference,
		Notes: map[string]string{
			"customer_name":  order.CustomerName,
			"customer_email": order.CustomerEmail,
			"customer_phone": order.CustomerPhone,
			"project_id":     order.ProjectID.String(),
			"project_title":  order.ProjectTitle,
		},
	}

	var resp createOrderResponse
	if err := c.call(ctx, http.MethodPost, "/orders", &payload, &resp); err != nil {
		return nil, err
	}

	return &port.PaymentSession{
		GatewayOrderRef: resp.ID,
		KeyID:           c.keyID,
	}, nil
}

func (c *Client) FetchStatus(ctx context.Context, gatewayOrderRef string, gatewayPaymentRef string) (port.GatewayPaymentState, error) {
	if gatewayPaymentRef != "" {
		var resp paymentResponse
		if err := c.call(ctx, http.MethodGet, "/payments/"+gatewayPaymentRef, nil, &resp); err != nil {
			return port.GatewayPaymentPending, err
		}
		switch resp.Status {
		case "captured":
			return port.GatewayPaymentCaptured, nil
		case "failed":
			return port.GatewayPaymentFailed, nil
		default:
			return port.GatewayPaymentPending, nil
		}
	}

	var resp orderResponse
	if err := c.call(ctx, http.MethodGet, "/orders/"+gatewayOrderRef, nil, &resp); err != nil {
		return port.GatewayPaymentPending, err
	}
	if resp.Status == "paid" {
		return port.GatewayPaymentCaptured, nil
	}
	return port.GatewayPaymentPending, nil
}

func (c *Client) VerifyClientProof(proof *port.ClientProof) error {
	if proof == nil || proof.GatewayOrderRef == "" || proof.GatewayPaymentRef == "" {
		return domain.ErrInvalidProof
	}
	message := proof.GatewayOrderRef + "|" + proof.GatewayPaymentRef
	if !sign.ValidHex([]byte(message), proof.Signature, []byte(c.secretKey)) {
		return domain.ErrInvalidProof
	}
	return nil
}

func (c *Client) VerifyWebhook(body []byte, headers http.Header) error {
	signature := headers.Get(signatureHeader)
	if !sign.ValidHex(body, signature, []byte(c.webhookSecret)) {
		return domain.ErrInvalidProof
	}
	return nil
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (c *Client) ParseWebhook(body []byte) (*port.WebhookEvent, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadRequest, err)
	}

	event := port.WebhookEvent{
		RawType:           envelope.Event,
		GatewayOrderRef:   envelope.Payload.Payment.Entity.OrderID,
		GatewayPaymentRef: envelope.Payload.Payment.Entity.ID,
	}
	switch envelope.Event {
	case "payment.captured", "payment.authorized":
		event.Kind = port.EventPaymentCaptured
	case "payment.failed":
		event.Kind = port.EventPaymentFailed
	default:
		event.Kind = port.EventUnknown
	}
	return &event, nil
}

func (c *Client) call(ctx context.Context, method, path string, payload, result any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error building request %s: %w", path, err)
	}
	req.SetBasicAuth(c.keyID, c.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("razorpay request failed", zap.String("path", path), zap.Error(err))
		return domain.ErrGatewayUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("razorpay rejected request",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return domain.ErrGatewayRejected
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error on response decode: %w", err)
	}
	return nil
}
