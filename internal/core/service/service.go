package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	gateway      port.PaymentGateway
	fulfillment  port.FulfillmentDispatcher
	tokenService port.TokenService
	files        port.FileStore
	logger       *zap.Logger
}

func NewService(repo port.Repository, gateway port.PaymentGateway,
	fulfillment port.FulfillmentDispatcher, tokenService port.TokenService,
	files port.FileStore, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		gateway:      gateway,
		fulfillment:  fulfillment,
		tokenService: tokenService,
		files:        files,
		logger:       logger,
	}, nil
}

// newReference builds the human-facing order reference used as the join key
// with gateway-side records.
func newReference(now time.Time, id uuid.UUID) string {
	return fmt.Sprintf("ORD_%s_%s", now.Format("20060102150405"), id.String()[:8])
}

// CreatePaymentOrder registers a purchase attempt and opens a payment session
// with the gateway. The amount is always copied from the catalog price; client
// input never sets it.
func (s *Service) CreatePaymentOrder(ctx context.Context, order *domain.Order) (*domain.Order, *port.PaymentSession, error) {
	project, err := s.repo.ReadProject(ctx, order.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, nil, err
		}
		s.logger.Error("Read project", zap.Error(err))
		return nil, nil, domain.ErrInternal
	}

	now := time.Now()
	order.ID = uuid.New()
	order.Reference = newReference(now, order.ID)
	order.ProjectTitle = project.Title
	order.SubjectName = project.SubjectName
	order.Amount = project.Price
	order.Status = domain.OrderStatusPending
	order.Fulfillment = domain.FulfillmentNotSent
	order.CreatedAt = now

	session, err := s.gateway.CreateSession(ctx, order)
	if err != nil {
		s.logger.Error("Create payment session",
			zap.String("order", order.Reference), zap.Error(err))
		return nil, nil, err
	}
	order.GatewayOrderRef = session.GatewayOrderRef

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, nil, domain.ErrInternal
	}

	return newOrder, session, nil
}

// HandleWebhook reconciles one gateway notification. Callers are expected to
// acknowledge the gateway regardless of the returned error; the error exists
// for logging and tests.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, headers http.Header) error {
	if err := s.gateway.VerifyWebhook(body, headers); err != nil {
		s.logger.Warn("webhook signature rejected, possible tampering", zap.Error(err))
		return domain.ErrInvalidProof
	}

	event, err := s.gateway.ParseWebhook(body)
	if err != nil {
		s.logger.Warn("webhook payload malformed", zap.Error(err))
		return domain.ErrBadRequest
	}

	var target domain.OrderStatus
	switch event.Kind {
	case port.EventPaymentCaptured:
		target = domain.OrderStatusPaid
	case port.EventPaymentFailed:
		target = domain.OrderStatusFailed
	default:
		s.logger.Debug("ignoring webhook event", zap.String("type", event.RawType))
		return nil
	}

	order, err := s.repo.OrderByGatewayRef(ctx, event.GatewayOrderRef)
	if err != nil {
		s.logger.Warn("webhook for unknown order",
			zap.String("gateway_order", event.GatewayOrderRef), zap.Error(err))
		return err
	}

	_, err = s.transition(ctx, order, target, event.GatewayPaymentRef)
	return err
}

// VerifyPayment services a client-initiated status check. A supplied proof is
// verified before being trusted; otherwise a still-pending order falls back to
// the authenticated gateway status call.
func (s *Service) VerifyPayment(ctx context.Context, reference string, proof *port.ClientProof) (*domain.Order, error) {
	order, err := s.lookupOrder(ctx, reference, proof)
	if err != nil {
		return nil, err
	}

	proofTrusted := false
	if proof != nil {
		err := s.gateway.VerifyClientProof(proof)
		switch {
		case err == nil:
			if proof.GatewayOrderRef != order.GatewayOrderRef {
				s.logger.Warn("payment proof references another order",
					zap.String("order", order.Reference))
				return nil, domain.ErrInvalidProof
			}
			proofTrusted = true
		case errors.Is(err, domain.ErrProofUnsupported):
			// Provider issues no client proofs; fall through to FetchStatus.
		default:
			s.logger.Warn("payment proof rejected, possible tampering",
				zap.String("order", order.Reference), zap.Error(err))
			return nil, domain.ErrInvalidProof
		}
	}

	if proofTrusted {
		if _, err := s.transition(ctx, order, domain.OrderStatusPaid, proof.GatewayPaymentRef); err != nil {
			return nil, err
		}
	} else if order.Status == domain.OrderStatusPending {
		state, err := s.gateway.FetchStatus(ctx, order.GatewayOrderRef, order.GatewayPaymentRef)
		if err != nil {
			s.logger.Error("gateway status fetch failed",
				zap.String("order", order.Reference), zap.Error(err))
			return nil, err
		}

		switch state {
		case port.GatewayPaymentCaptured:
			if _, err := s.transition(ctx, order, domain.OrderStatusPaid, ""); err != nil {
				return nil, err
			}
		case port.GatewayPaymentFailed:
			if _, err := s.transition(ctx, order, domain.OrderStatusFailed, ""); err != nil {
				return nil, err
			}
		}
	}

	current, err := s.repo.OrderByReference(ctx, order.Reference)
	if err != nil {
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return current, nil
}

func (s *Service) lookupOrder(ctx context.Context, reference string, proof *port.ClientProof) (*domain.Order, error) {
	if reference != "" {
		return s.repo.OrderByReference(ctx, reference)
	}
	if proof != nil && proof.GatewayOrderRef != "" {
		return s.repo.OrderByGatewayRef(ctx, proof.GatewayOrderRef)
	}
	return nil, domain.ErrBadRequest
}

// transition drives the PENDING -> target compare-and-set. Exactly one caller
// across the webhook and polling paths observes Applied; only that caller
// enqueues fulfillment.
func (s *Service) transition(ctx context.Context, order *domain.Order,
	target domain.OrderStatus, gatewayPaymentRef string) (domain.TransitionResult, error) {
	applied, err := s.repo.UpdateOrderStatusIfPending(ctx, order.Reference, target, gatewayPaymentRef)
	if err != nil {
		s.logger.Error("Update order status", zap.Error(err))
		return domain.TransitionRejected, domain.ErrInternal
	}

	if applied {
		s.logger.Info("order transitioned",
			zap.String("order", order.Reference), zap.String("status", string(target)))
		if target == domain.OrderStatusPaid {
			s.fulfillment.Dispatch(order.Reference)
		}
		return domain.TransitionApplied, nil
	}

	current, err := s.repo.OrderByReference(ctx, order.Reference)
	if err != nil {
		return domain.TransitionRejected, err
	}
	if current.Status == target {
		// Duplicate confirmation signal; success, nothing to re-dispatch.
		return domain.TransitionAlreadyInState, nil
	}

	s.logger.Warn("order transition rejected",
		zap.String("order", order.Reference),
		zap.String("current", string(current.Status)),
		zap.String("target", string(target)))
	return domain.TransitionRejected, domain.ErrTransitionConflict
}

func (s *Service) GetOrder(ctx context.Context, reference string) (*domain.Order, error) {
	order, err := s.repo.OrderByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	list, err := s.repo.ListOrders(ctx, 100)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

// DownloadArtifact streams the purchased PDF, gated on a completed payment.
func (s *Service) DownloadArtifact(ctx context.Context, reference string) (*domain.Project, io.ReadCloser, error) {
	order, err := s.repo.OrderByReference(ctx, reference)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != domain.OrderStatusPaid {
		return nil, nil, domain.ErrPaymentNotCompleted
	}

	project, err := s.repo.ReadProject(ctx, order.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.files.Open(project.FileName)
	if err != nil {
		s.logger.Error("Open project file",
			zap.String("project", project.ID.String()), zap.Error(err))
		return nil, nil, domain.ErrDataNotFound
	}

	return project, file, nil
}
