package fulfillment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestDispatcher(t *testing.T, ctrl *gomock.Controller) (*Dispatcher,
	*mock.MockRepository, *mock.MockMailer, *mock.MockFileStore) {
	t.Helper()

	repo := mock.NewMockRepository(ctrl)
	mailer := mock.NewMockMailer(ctrl)
	files := mock.NewMockFileStore(ctrl)

	logger, _ := zap.NewDevelopment()
	d, err := NewDispatcher(repo, mailer, files, logger)
	assert.NoError(t, err)
	d.backoff = time.Millisecond

	return d, repo, mailer, files
}

func paidOrder() *domain.Order {
	return &domain.Order{
		ID:            uuid.New(),
		Reference:     "ORD_20260829120000_deadbeef",
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		ProjectID:     uuid.New(),
		Status:        domain.OrderStatusPaid,
		Fulfillment:   domain.FulfillmentNotSent,
	}
}

func TestDispatcher_ProcessDelivers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d, repo, mailer, files := newTestDispatcher(t, ctrl)
	order := paidOrder()
	project := &domain.Project{
		ID:       order.ProjectID,
		Title:    "Library Management System",
		FileName: order.ProjectID.String() + ".pdf",
	}

	repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
	repo.EXPECT().ReadProject(gomock.Any(), order.ProjectID).Return(project, nil)
	files.EXPECT().Path(project.FileName).Return("uploads/" + project.FileName)
	mailer.EXPECT().SendArtifact(order.CustomerEmail, order.CustomerName,
		project.Title, "uploads/"+project.FileName).Return(nil)
	repo.EXPECT().UpdateFulfillmentState(gomock.Any(), order.Reference,
		domain.FulfillmentSent).Return(true, nil)

	d.process(context.Background(), order.Reference)
}

func TestDispatcher_ProcessSkipsUnpaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d, repo, _, _ := newTestDispatcher(t, ctrl)
	order := paidOrder()
	order.Status = domain.OrderStatusPending

	repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)

	// No mailer expectations: delivery for an unpaid order must be a no-op.
	d.process(context.Background(), order.Reference)
}

func TestDispatcher_ProcessSkipsDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d, repo, _, _ := newTestDispatcher(t, ctrl)
	order := paidOrder()
	order.Fulfillment = domain.FulfillmentSent

	repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)

	d.process(context.Background(), order.Reference)
}

func TestDispatcher_ProcessRetriesThenRecordsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d, repo, mailer, files := newTestDispatcher(t, ctrl)
	order := paidOrder()
	project := &domain.Project{
		ID:       order.ProjectID,
		Title:    "Library Management System",
		FileName: order.ProjectID.String() + ".pdf",
	}

	repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
	repo.EXPECT().ReadProject(gomock.Any(), order.ProjectID).Return(project, nil)
	files.EXPECT().Path(project.FileName).Return("uploads/" + project.FileName)
	mailer.EXPECT().SendArtifact(order.CustomerEmail, order.CustomerName,
		project.Title, gomock.Any()).Return(errors.New("smtp: connection refused")).Times(d.attempts)
	repo.EXPECT().UpdateFulfillmentState(gomock.Any(), order.Reference,
		domain.FulfillmentFailed).Return(true, nil)

	d.process(context.Background(), order.Reference)
}

func TestDispatcher_ProcessRecoversOnSecondAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d, repo, mailer, files := newTestDispatcher(t, ctrl)
	order := paidOrder()
	project := &domain.Project{
		ID:       order.ProjectID,
		Title:    "Library Management System",
		FileName: order.ProjectID.String() + ".pdf",
	}

	repo.EXPECT().OrderByReference(gomock.Any(), order.Reference).Return(order, nil)
	repo.EXPECT().ReadProject(gomock.Any(), order.ProjectID).Return(project, nil)
	files.EXPECT().Path(project.FileName).Return("uploads/" + project.FileName)
	gomock.InOrder(
		mailer.EXPECT().SendArtifact(order.CustomerEmail, order.CustomerName,
			project.Title, gomock.Any()).Return(errors.New("smtp: timeout")),
		mailer.EXPECT().SendArtifact(order.CustomerEmail, order.CustomerName,
			project.Title, gomock.Any()).Return(nil),
	)
	repo.EXPECT().UpdateFulfillmentState(gomock.Any(), order.Reference,
		domain.FulfillmentSent).Return(true, nil)

	d.process(context.Background(), order.Reference)
}

func TestDispatcher_DispatchDeduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d, _, _, _ := newTestDispatcher(t, ctrl)

	// No workers are draining the queue, so the reference stays in flight.
	d.Dispatch("ORD_20260829120000_deadbeef")
	d.Dispatch("ORD_20260829120000_deadbeef")
	d.Dispatch("ORD_20260829120000_other111")

	assert.Equal(t, 2, len(d.queue))
}
