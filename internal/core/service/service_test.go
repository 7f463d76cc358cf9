package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"github.com/parulcreation/projectshop/internal/core/port/mock"
	"github.com/parulcreation/projectshop/internal/core/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher)

func newTestService(t *testing.T, ctrl *gomock.Controller, prepare prepareMocks) (*service.Service,
	*mock.MockRepository, *mock.MockPaymentGateway, *mock.MockFulfillmentDispatcher) {
	t.Helper()

	repo := mock.NewMockRepository(ctrl)
	gateway := mock.NewMockPaymentGateway(ctrl)
	fulfillment := mock.NewMockFulfillmentDispatcher(ctrl)
	ts := mock.NewMockTokenService(ctrl)
	files := mock.NewMockFileStore(ctrl)
	if prepare != nil {
		prepare(repo, gateway, fulfillment)
	}

	logger, _ := zap.NewDevelopment()
	s, err := service.NewService(repo, gateway, fulfillment, ts, files, logger)
	assert.NoError(t, err)

	return s, repo, gateway, fulfillment
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:              uuid.New(),
		Reference:       "ORD_20260829120000_deadbeef",
		CustomerName:    "Asha Verma",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "9999999999",
		ProjectID:       uuid.New(),
		ProjectTitle:    "Library Management System",
		SubjectName:     "Computer Science",
		Amount:          decimal.MustParse("499.00"),
		Status:          domain.OrderStatusPending,
		Fulfillment:     domain.FulfillmentNotSent,
		GatewayOrderRef: "order_Nxyz123",
		CreatedAt:       time.Now(),
	}
}

func TestService_CreatePaymentOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	projectID := uuid.New()
	project := &domain.Project{
		ID:          projectID,
		Title:       "Library Management System",
		SubjectName: "Computer Science",
		Price:       decimal.MustParse("499.00"),
		FileName:    projectID.String() + ".pdf",
	}

	tests := []struct {
		name     string
		order    domain.Order
		mock     prepareMocks
		expError error
	}{
		{
			name: "Create good",
			order: domain.Order{
				CustomerName:  "Asha Verma",
				CustomerEmail: "asha@example.com",
				ProjectID:     projectID,
				// Client-supplied amount must be ignored.
				Amount: decimal.MustParse("1.00"),
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().ReadProject(gomock.Any(), projectID).Return(project, nil)
				gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*port.PaymentSession, error) {
						assert.Equal(t, project.Price, o.Amount)
						assert.Equal(t, domain.OrderStatusPending, o.Status)
						assert.NotEmpty(t, o.Reference)
						return &port.PaymentSession{GatewayOrderRef: "order_Nxyz123", KeyID: "rzp_test_key"}, nil
					})
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, "order_Nxyz123", o.GatewayOrderRef)
						return o, nil
					})
			},
			expError: nil,
		},
		{
			name:  "Project not found",
			order: domain.Order{CustomerEmail: "asha@example.com", ProjectID: projectID},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().ReadProject(gomock.Any(), projectID).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name:  "Gateway rejected",
			order: domain.Order{CustomerEmail: "asha@example.com", ProjectID: projectID},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().ReadProject(gomock.Any(), projectID).Return(project, nil)
				gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil, domain.ErrGatewayRejected)
			},
			expError: domain.ErrGatewayRejected,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			order, session, err := s.CreatePaymentOrder(context.Background(), &test.order)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, order)
				assert.Nil(t, session)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, project.Price, order.Amount)
			assert.Equal(t, project.Title, order.ProjectTitle)
			assert.Equal(t, "order_Nxyz123", session.GatewayOrderRef)
		})
	}
}

func TestService_VerifyPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	order := sampleOrder()
	paid := *order
	paid.Status = domain.OrderStatusPaid
	paid.GatewayPaymentRef = "pay_Mabc456"
	failed := *order
	failed.Status = domain.OrderStatusFailed

	goodProof := &port.ClientProof{
		GatewayOrderRef:   order.GatewayOrderRef,
		GatewayPaymentRef: "pay_Mabc456",
		Signature:         "ab12",
	}

	tests := []struct {
		name      string
		reference string
		proof     *port.ClientProof
		mock      prepareMocks
		expError  error
		expStatus domain.OrderStatus
	}{
		{
			name:      "Valid proof applies transition and dispatches once",
			reference: order.Reference,
			proof:     goodProof,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().VerifyClientProof(goodProof).Return(nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "pay_Mabc456").Return(true, nil)
				fulfillment.EXPECT().Dispatch(order.Reference).Times(1)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
			},
			expStatus: domain.OrderStatusPaid,
		},
		{
			name:      "Forged proof is rejected without touching the order",
			reference: order.Reference,
			proof: &port.ClientProof{
				GatewayOrderRef:   order.GatewayOrderRef,
				GatewayPaymentRef: "pay_Mabc456",
				Signature:         "ffff",
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().VerifyClientProof(gomock.Any()).Return(domain.ErrInvalidProof)
			},
			expError: domain.ErrInvalidProof,
		},
		{
			name:      "Proof for another order is rejected",
			reference: order.Reference,
			proof: &port.ClientProof{
				GatewayOrderRef:   "order_other",
				GatewayPaymentRef: "pay_Mabc456",
				Signature:         "ab12",
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().VerifyClientProof(gomock.Any()).Return(nil)
			},
			expError: domain.ErrInvalidProof,
		},
		{
			name:      "Duplicate confirmation is a no-op",
			reference: order.Reference,
			proof:     goodProof,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
				gateway.EXPECT().VerifyClientProof(goodProof).Return(nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "pay_Mabc456").Return(false, nil)
				// CAS miss: re-read shows the order already PAID, no dispatch.
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil).Times(2)
			},
			expStatus: domain.OrderStatusPaid,
		},
		{
			name:      "No proof and gateway still pending leaves order untouched",
			reference: order.Reference,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().FetchStatus(gomock.Any(), order.GatewayOrderRef, "").
					Return(port.GatewayPaymentPending, nil)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
			},
			expStatus: domain.OrderStatusPending,
		},
		{
			name:      "No proof and gateway captured transitions to paid",
			reference: order.Reference,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().FetchStatus(gomock.Any(), order.GatewayOrderRef, "").
					Return(port.GatewayPaymentCaptured, nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "").Return(true, nil)
				fulfillment.EXPECT().Dispatch(order.Reference).Times(1)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
			},
			expStatus: domain.OrderStatusPaid,
		},
		{
			name:      "No proof and gateway failed transitions to failed",
			reference: order.Reference,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().FetchStatus(gomock.Any(), order.GatewayOrderRef, "").
					Return(port.GatewayPaymentFailed, nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusFailed, "").Return(true, nil)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&failed, nil)
			},
			expStatus: domain.OrderStatusFailed,
		},
		{
			name:      "Gateway unavailable propagates",
			reference: order.Reference,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().FetchStatus(gomock.Any(), order.GatewayOrderRef, "").
					Return(port.GatewayPaymentPending, domain.ErrGatewayUnavailable)
			},
			expError: domain.ErrGatewayUnavailable,
		},
		{
			name:      "Provider without client proofs falls back to status fetch",
			reference: order.Reference,
			proof:     goodProof,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
				gateway.EXPECT().VerifyClientProof(goodProof).Return(domain.ErrProofUnsupported)
				gateway.EXPECT().FetchStatus(gomock.Any(), order.GatewayOrderRef, "").
					Return(port.GatewayPaymentCaptured, nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "").Return(true, nil)
				fulfillment.EXPECT().Dispatch(order.Reference).Times(1)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
			},
			expStatus: domain.OrderStatusPaid,
		},
		{
			name:  "Lookup by gateway ref when reference is empty",
			proof: goodProof,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByGatewayRef(gomock.Any(), order.GatewayOrderRef).Return(order, nil)
				gateway.EXPECT().VerifyClientProof(goodProof).Return(nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "pay_Mabc456").Return(true, nil)
				fulfillment.EXPECT().Dispatch(order.Reference).Times(1)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
			},
			expStatus: domain.OrderStatusPaid,
		},
		{
			name:     "No reference and no proof",
			mock:     nil,
			expError: domain.ErrBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			result, err := s.VerifyPayment(context.Background(), test.reference, test.proof)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expStatus, result.Status)
		})
	}
}

func TestService_HandleWebhook(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	order := sampleOrder()
	paid := *order
	paid.Status = domain.OrderStatusPaid

	body := []byte(`{"event":"payment.captured"}`)
	headers := http.Header{"X-Razorpay-Signature": []string{"ab12"}}

	capturedEvent := &port.WebhookEvent{
		Kind:              port.EventPaymentCaptured,
		RawType:           "payment.captured",
		GatewayOrderRef:   order.GatewayOrderRef,
		GatewayPaymentRef: "pay_Mabc456",
	}

	tests := []struct {
		name     string
		mock     prepareMocks
		expError error
	}{
		{
			name: "Captured event transitions and dispatches once",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				gateway.EXPECT().VerifyWebhook(body, headers).Return(nil)
				gateway.EXPECT().ParseWebhook(body).Return(capturedEvent, nil)
				repo.EXPECT().OrderByGatewayRef(gomock.Any(), order.GatewayOrderRef).Return(order, nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "pay_Mabc456").Return(true, nil)
				fulfillment.EXPECT().Dispatch(order.Reference).Times(1)
			},
		},
		{
			name: "Redelivered event does not dispatch again",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				gateway.EXPECT().VerifyWebhook(body, headers).Return(nil)
				gateway.EXPECT().ParseWebhook(body).Return(capturedEvent, nil)
				repo.EXPECT().OrderByGatewayRef(gomock.Any(), order.GatewayOrderRef).Return(&paid, nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusPaid, "pay_Mabc456").Return(false, nil)
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
			},
		},
		{
			name: "Tampered signature never reaches the payload",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				gateway.EXPECT().VerifyWebhook(body, headers).Return(domain.ErrInvalidProof)
			},
			expError: domain.ErrInvalidProof,
		},
		{
			name: "Malformed payload",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				gateway.EXPECT().VerifyWebhook(body, headers).Return(nil)
				gateway.EXPECT().ParseWebhook(body).Return(nil, domain.ErrBadRequest)
			},
			expError: domain.ErrBadRequest,
		},
		{
			name: "Unrelated event is acknowledged and ignored",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				gateway.EXPECT().VerifyWebhook(body, headers).Return(nil)
				gateway.EXPECT().ParseWebhook(body).Return(&port.WebhookEvent{
					Kind:    port.EventUnknown,
					RawType: "refund.processed",
				}, nil)
			},
		},
		{
			name: "Failed event marks the order failed without dispatch",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				gateway.EXPECT().VerifyWebhook(body, headers).Return(nil)
				gateway.EXPECT().ParseWebhook(body).Return(&port.WebhookEvent{
					Kind:              port.EventPaymentFailed,
					RawType:           "payment.failed",
					GatewayOrderRef:   order.GatewayOrderRef,
					GatewayPaymentRef: "pay_Mabc456",
				}, nil)
				repo.EXPECT().OrderByGatewayRef(gomock.Any(), order.GatewayOrderRef).Return(order, nil)
				repo.EXPECT().UpdateOrderStatusIfPending(gomock.Any(), order.Reference,
					domain.OrderStatusFailed, "pay_Mabc456").Return(true, nil)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _, _ := newTestService(t, mockCtrl, test.mock)

			err := s.HandleWebhook(context.Background(), body, headers)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_DownloadArtifact(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	order := sampleOrder()
	paid := *order
	paid.Status = domain.OrderStatusPaid

	project := &domain.Project{
		ID:       order.ProjectID,
		Title:    order.ProjectTitle,
		FileName: order.ProjectID.String() + ".pdf",
	}

	t.Run("Pending order is gated", func(t *testing.T) {
		s, _, _, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, fulfillment *mock.MockFulfillmentDispatcher) {
				repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
			})

		_, _, err := s.DownloadArtifact(context.Background(), order.Reference)
		assert.ErrorIs(t, err, domain.ErrPaymentNotCompleted)
	})

	t.Run("Paid order streams the file", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		fulfillment := mock.NewMockFulfillmentDispatcher(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		files := mock.NewMockFileStore(mockCtrl)

		repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(&paid, nil)
		repo.EXPECT().ReadProject(gomock.Any(), order.ProjectID).Return(project, nil)
		files.EXPECT().Open(project.FileName).Return(http.NoBody, nil)

		logger, _ := zap.NewDevelopment()
		s, err := service.NewService(repo, gateway, fulfillment, ts, files, logger)
		assert.NoError(t, err)

		got, reader, err := s.DownloadArtifact(context.Background(), order.Reference)
		assert.NoError(t, err)
		assert.Equal(t, project, got)
		assert.NotNil(t, reader)
	})
}
