// Package cashfree adapts the Cashfree payment gateway. Cashfree issues no
// client-side payment proof, so the polling path relies solely on the
// authenticated order-status call; webhooks are signed with a base64 HMAC
// over timestamp + raw body.
package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/parulcreation/projectshop/internal/adapter/config"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"github.com/parulcreation/projectshop/internal/core/sign"
	"go.uber.org/zap"
)

const (
	apiVersion      = "2023-08-01"
	signatureHeader = "x-webhook-signature"
	timestampHeader = "x-webhook-timestamp"
)

type Client struct {
	logger        *zap.Logger
	baseURL       string
	appID         string
	secretKey     string
	webhookSecret string
	currency      string
	http          *http.Client
}

func NewClient(cfg *config.Cashfree, payments *config.Payments, log *zap.Logger) (*Client, error) {
	if cfg.AppID == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("cashfree credentials are not configured")
	}
	return &Client{
		logger:        log,
		baseURL:       cfg.BaseURL,
		appID:         cfg.AppID,
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		currency:      payments.Currency,
		http:          &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     json.Number     `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type createOrderResponse struct {
	CFOrderID        string `json:"cf_order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

type orderStatusResponse struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
}

func (c *Client) CreateSession(ctx context.Context, order *domain.Order) (*port.PaymentSession, error) {
	payload := createOrderRequest{
		OrderID:       order.Reference,
		OrderAmount:   json.Number(order.Amount.String()),
		OrderCurrency: c.currency,
		CustomerDetails: customerDetails{
			CustomerID:    order.ID.String(),
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			CustomerPhone: order.CustomerPhone,
		},
	}

	var resp createOrderResponse
	if err := c.call(ctx, http.MethodPost, "/orders", &payload, &resp); err != nil {
		return nil, err
	}

	// Cashfree keys its records by our reference, not by an id of its own.
	return &port.PaymentSession{
		GatewayOrderRef: order.Reference,
		SessionToken:    resp.PaymentSessionID,
		KeyID:           c.appID,
	}, nil
}

func (c *Client) FetchStatus(ctx context.Context, gatewayOrderRef string, _ string) (port.GatewayPaymentState, error) {
	var resp orderStatusResponse
	if err := c.call(ctx, http.MethodGet, "/orders/"+gatewayOrderRef, nil, &resp); err != nil {
		return port.GatewayPaymentPending, err
	}

	switch resp.OrderStatus {
	case "PAID":
		return port.GatewayPaymentCaptured, nil
	case "EXPIRED", "TERMINATED":
		return port.GatewayPaymentFailed, nil
	default:
		return port.GatewayPaymentPending, nil
	}
}

func (c *Client) VerifyClientProof(_ *port.ClientProof) error {
	return domain.ErrProofUnsupported
}

func (c *Client) VerifyWebhook(body []byte, headers http.Header) error {
	signature := headers.Get(signatureHeader)
	timestamp := headers.Get(timestampHeader)
	if timestamp == "" {
		return domain.ErrInvalidProof
	}

	message := append([]byte(timestamp), body...)
	if !sign.ValidBase64(message, signature, []byte(c.webhookSecret)) {
		return domain.ErrInvalidProof
	}
	return nil
}

type webhookEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Order struct {
			OrderID string `json:"order_id"`
		} `json:"order"`
		Payment struct {
			CFPaymentID json.Number `json:"cf_payment_id"`
		} `json:"payment"`
	} `json:"data"`
}

func (c *Client) ParseWebhook(body []byte) (*port.WebhookEvent, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadRequest, err)
	}

	event := port.WebhookEvent{
		RawType:           envelope.Type,
		GatewayOrderRef:   envelope.Data.Order.OrderID,
		GatewayPaymentRef: envelope.Data.Payment.CFPaymentID.String(),
	}
	switch envelope.Type {
	case "PAYMENT_SUCCESS_WEBHOOK":
		event.Kind = port.EventPaymentCaptured
	case "PAYMENT_FAILED_WEBHOOK", "PAYMENT_USER_DROPPED_WEBHOOK":
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
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)
	req.Header.Set("x-api-version", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("cashfree request failed", zap.String("path", path), zap.Error(err))
		return domain.ErrGatewayUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("cashfree rejected request",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return domain.ErrGatewayRejected
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error on response decode: %w", err)
	}
	return nil
}
