package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	ProjectID     string `json:"project_id" binding:"required"`
}

type createOrderResponse struct {
	OrderReference  string          `json:"order_reference"`
	GatewayOrderRef string          `json:"gateway_order_ref"`
	Amount          decimal.Decimal `json:"amount"`
	ProjectTitle    string          `json:"project_title"`
	SessionToken    string          `json:"session_token,omitempty"`
	KeyID           string          `json:"key_id,omitempty"`
}

func (ph *PaymentHandler) CreatePaymentOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		ph.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	order := &domain.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ProjectID:     projectID,
	}

	newOrder, session, err := ph.service.CreatePaymentOrder(ctx, order)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, createOrderResponse{
		OrderReference:  newOrder.Reference,
		GatewayOrderRef: newOrder.GatewayOrderRef,
		Amount:          newOrder.Amount,
		ProjectTitle:    newOrder.ProjectTitle,
		SessionToken:    session.SessionToken,
		KeyID:           session.KeyID,
	})
}

// Webhook ingests gateway notifications. The gateway retries indefinitely on
// non-2xx, so the endpoint acknowledges every delivery; failures are logged
// and reconciled through the polling path instead.
func (ph *PaymentHandler) Webhook(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ph.logger.Warn("webhook body read failed", zap.Error(err))
		ctx.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	if err := ph.service.HandleWebhook(ctx, body, ctx.Request.Header); err != nil {
		ph.logger.Warn("webhook processing failed", zap.Error(err))
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "received"})
}

type verifyPaymentRequest struct {
	OrderReference    string `json:"order_reference"`
	GatewayOrderRef   string `json:"razorpay_order_id"`
	GatewayPaymentRef string `json:"razorpay_payment_id"`
	Signature         string `json:"razorpay_signature"`
}

type orderResponse struct {
	Reference         string          `json:"order_reference"`
	CustomerName      string          `json:"customer_name"`
	CustomerEmail     string          `json:"customer_email"`
	ProjectTitle      string          `json:"project_title"`
	SubjectName       string          `json:"subject_name"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	GatewayOrderRef   string          `json:"gateway_order_ref,omitempty"`
	GatewayPaymentRef string          `json:"gateway_payment_ref,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		Reference:         order.Reference,
		CustomerName:      order.CustomerName,
		CustomerEmail:     order.CustomerEmail,
		ProjectTitle:      order.ProjectTitle,
		SubjectName:       order.SubjectName,
		Amount:            order.Amount,
		Status:            string(order.Status),
		GatewayOrderRef:   order.GatewayOrderRef,
		GatewayPaymentRef: order.GatewayPaymentRef,
		CreatedAt:         order.CreatedAt,
	}
}

func (ph *PaymentHandler) VerifyPayment(ctx *gin.Context) {
	req := verifyPaymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	var proof *port.ClientProof
	if req.GatewayPaymentRef != "" || req.Signature != "" {
		proof = &port.ClientProof{
			GatewayOrderRef:   req.GatewayOrderRef,
			GatewayPaymentRef: req.GatewayPaymentRef,
			Signature:         req.Signature,
		}
	}

	order, err := ph.service.VerifyPayment(ctx, req.OrderReference, proof)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newOrderResponse(order))
}
