package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

type FulfillmentState string

const (
	FulfillmentNotSent FulfillmentState = "NOT_SENT"
	FulfillmentSent    FulfillmentState = "SENT"
	FulfillmentFailed  FulfillmentState = "FAILED"
)

// TransitionResult is the outcome of an attempt to move an order out of
// PENDING. AlreadyInState is the dedup path for repeated confirmations and is
// a success, not an error.
type TransitionResult int

const (
	TransitionApplied TransitionResult = iota
	TransitionAlreadyInState
	TransitionRejected
)

// Order is a single purchase attempt. Status and Fulfillment are the only
// fields mutated after creation, both through conditional updates.
type Order struct {
	ID                uuid.UUID
	Reference         string
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	ProjectID         uuid.UUID
	ProjectTitle      string
	SubjectName       string
	Amount            decimal.Decimal
	Status            OrderStatus
	Fulfillment       FulfillmentState
	GatewayOrderRef   string
	GatewayPaymentRef string
	CreatedAt         time.Time
}
