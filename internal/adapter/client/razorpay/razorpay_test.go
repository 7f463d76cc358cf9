package razorpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/govalues/decimal"
	"github.com/parulcreation/projectshop/internal/adapter/client/razorpay"
	"github.com/parulcreation/projectshop/internal/adapter/config"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"github.com/parulcreation/projectshop/internal/core/sign"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testKeyID         = "rzp_test_key"
	testSecret        = "rzp_test_secret"
	testWebhookSecret = "whsec_test"
)

func newTestClient(t *testing.T, baseURL string) *razorpay.Client {
	t.Helper()

	logger, _ := zap.NewDevelopment()
	client, err := razorpay.NewClient(&config.Razorpay{
		KeyID:         testKeyID,
		SecretKey:     testSecret,
		BaseURL:       baseURL,
		WebhookSecret: testWebhookSecret,
	}, &config.Payments{Currency: "INR"}, logger)
	require.NoError(t, err)
	return client
}

func TestClient_CreateSession(t *testing.T) {
	order := &domain.Order{
		Reference:     "ORD_20260829120000_deadbeef",
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		Amount:        decimal.MustParse("499.00"),
	}

	t.Run("Session created", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, testKeyID, user)
			assert.Equal(t, testSecret, pass)

			var req struct {
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
				Receipt  string `json:"receipt"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(49900), req.Amount)
			assert.Equal(t, "INR", req.Currency)
			assert.Equal(t, order.Reference, req.Receipt)

			_ = json.NewEncoder(w).Encode(map[string]string{"id": "order_Nxyz123"})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		session, err := client.CreateSession(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, "order_Nxyz123", session.GatewayOrderRef)
		assert.Equal(t, testKeyID, session.KeyID)
	})

	t.Run("Gateway rejects", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.CreateSession(context.Background(), order)
		assert.ErrorIs(t, err, domain.ErrGatewayRejected)
	})

	t.Run("Gateway unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.CreateSession(context.Background(), order)
		assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	})
}

func TestClient_FetchStatus(t *testing.T) {
	tests := []struct {
		name       string
		paymentRef string
		path       string
		body       map[string]string
		expState   port.GatewayPaymentState
	}{
		{
			name:       "Payment captured",
			paymentRef: "pay_Mabc456",
			path:       "/payments/pay_Mabc456",
			body:       map[string]string{"id": "pay_Mabc456", "status": "captured"},
			expState:   port.GatewayPaymentCaptured,
		},
		{
			name:       "Payment failed",
			paymentRef: "pay_Mabc456",
			path:       "/payments/pay_Mabc456",
			body:       map[string]string{"id": "pay_Mabc456", "status": "failed"},
			expState:   port.GatewayPaymentFailed,
		},
		{
			name:       "Payment still authorized counts as pending",
			paymentRef: "pay_Mabc456",
			path:       "/payments/pay_Mabc456",
			body:       map[string]string{"id": "pay_Mabc456", "status": "authorized"},
			expState:   port.GatewayPaymentPending,
		},
		{
			name:     "Order paid without a payment ref",
			path:     "/orders/order_Nxyz123",
			body:     map[string]string{"id": "order_Nxyz123", "status": "paid"},
			expState: port.GatewayPaymentCaptured,
		},
		{
			name:     "Order still open",
			path:     "/orders/order_Nxyz123",
			body:     map[string]string{"id": "order_Nxyz123", "status": "created"},
			expState: port.GatewayPaymentPending,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, test.path, r.URL.Path)
				_ = json.NewEncoder(w).Encode(test.body)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			state, err := client.FetchStatus(context.Background(), "order_Nxyz123", test.paymentRef)
			require.NoError(t, err)
			assert.Equal(t, test.expState, state)
		})
	}
}

func TestClient_VerifyClientProof(t *testing.T) {
	client := newTestClient(t, "http://unused")

	validSig := sign.HMACHex([]byte("order_Nxyz123|pay_Mabc456"), []byte(testSecret))

	tests := []struct {
		name     string
		proof    *port.ClientProof
		expError error
	}{
		{
			name: "Valid proof",
			proof: &port.ClientProof{
				GatewayOrderRef:   "order_Nxyz123",
				GatewayPaymentRef: "pay_Mabc456",
				Signature:         validSig,
			},
		},
		{
			name: "Signature for different payment",
			proof: &port.ClientProof{
				GatewayOrderRef:   "order_Nxyz123",
				GatewayPaymentRef: "pay_other",
				Signature:         validSig,
			},
			expError: domain.ErrInvalidProof,
		},
		{
			name: "Garbage signature",
			proof: &port.ClientProof{
				GatewayOrderRef:   "order_Nxyz123",
				GatewayPaymentRef: "pay_Mabc456",
				Signature:         "not-hex",
			},
			expError: domain.ErrInvalidProof,
		},
		{
			name:     "Missing fields",
			proof:    &port.ClientProof{Signature: validSig},
			expError: domain.ErrInvalidProof,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := client.VerifyClientProof(test.proof)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_VerifyWebhook(t *testing.T) {
	client := newTestClient(t, "http://unused")

	body := []byte(`{"event":"payment.captured"}`)
	headers := http.Header{}
	headers.Set("X-Razorpay-Signature", sign.HMACHex(body, []byte(testWebhookSecret)))

	assert.NoError(t, client.VerifyWebhook(body, headers))

	tampered := []byte(`{"event":"payment.captured","extra":1}`)
	assert.ErrorIs(t, client.VerifyWebhook(tampered, headers), domain.ErrInvalidProof)

	assert.ErrorIs(t, client.VerifyWebhook(body, http.Header{}), domain.ErrInvalidProof)
}

func TestClient_ParseWebhook(t *testing.T) {
	client := newTestClient(t, "http://unused")

	tests := []struct {
		name    string
		body    string
		expKind port.WebhookEventKind
	}{
		{
			name:    "Captured",
			body:    `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_Mabc456","order_id":"order_Nxyz123"}}}}`,
			expKind: port.EventPaymentCaptured,
		},
		{
			name:    "Authorized maps to captured",
			body:    `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_Mabc456","order_id":"order_Nxyz123"}}}}`,
			expKind: port.EventPaymentCaptured,
		},
		{
			name:    "Failed",
			body:    `{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_Mabc456","order_id":"order_Nxyz123"}}}}`,
			expKind: port.EventPaymentFailed,
		},
		{
			name:    "Unrelated event",
			body:    `{"event":"refund.processed"}`,
			expKind: port.EventUnknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			event, err := client.ParseWebhook([]byte(test.body))
			require.NoError(t, err)
			assert.Equal(t, test.expKind, event.Kind)
			if event.Kind != port.EventUnknown {
				assert.Equal(t, "order_Nxyz123", event.GatewayOrderRef)
				assert.Equal(t, "pay_Mabc456", event.GatewayPaymentRef)
			}
		})
	}

	t.Run("Malformed payload", func(t *testing.T) {
		_, err := client.ParseWebhook([]byte("{"))
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})
}
