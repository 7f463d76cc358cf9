package port

import (
	"context"
	"net/http"

	"github.com/parulcreation/projectshop/internal/core/domain"
)

type GatewayPaymentState string

const (
	GatewayPaymentPending  GatewayPaymentState = "PENDING"
	GatewayPaymentCaptured GatewayPaymentState = "CAPTURED"
	GatewayPaymentFailed   GatewayPaymentState = "FAILED"
)

type WebhookEventKind int

const (
	EventUnknown WebhookEventKind = iota
	EventPaymentCaptured
	EventPaymentFailed
)

// WebhookEvent is a gateway notification reduced to a tagged variant. RawType
// keeps the provider's literal event name for logging.
type WebhookEvent struct {
	Kind              WebhookEventKind
	RawType           string
	GatewayOrderRef   string
	GatewayPaymentRef string
}

// PaymentSession is the result of a session creation round trip.
type PaymentSession struct {
	GatewayOrderRef string
	SessionToken    string
	KeyID           string
}

// ClientProof is a payment confirmation handed to the client by an in-page
// payment widget and relayed back to us. It is never trusted unverified.
type ClientProof struct {
	GatewayOrderRef   string
	GatewayPaymentRef string
	Signature         string
}

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	CreateSession(ctx context.Context, order *domain.Order) (*PaymentSession, error)
	FetchStatus(ctx context.Context, gatewayOrderRef string, gatewayPaymentRef string) (GatewayPaymentState, error)
	// VerifyClientProof returns domain.ErrInvalidProof on mismatch and
	// domain.ErrProofUnsupported when the provider issues no client proofs.
	VerifyClientProof(proof *ClientProof) error
	VerifyWebhook(body []byte, headers http.Header) error
	ParseWebhook(body []byte) (*WebhookEvent, error)
}
