package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid username or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrAdminExists                = errors.New("admin account already set up")

	// * Payment errors.
	ErrGatewayUnavailable  = errors.New("payment gateway is unreachable")
	ErrGatewayRejected     = errors.New("payment gateway rejected the request")
	ErrInvalidProof        = errors.New("payment proof signature mismatch")
	ErrProofUnsupported    = errors.New("provider does not issue client-side payment proofs")
	ErrTransitionConflict  = errors.New("order is already in a different terminal state")
	ErrPaymentNotCompleted = errors.New("payment is not completed for the order")
	ErrDeliveryFailed      = errors.New("fulfillment delivery attempts exhausted")
)
