package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	OrderByReference(ctx context.Context, reference string) (*domain.Order, error)
	OrderByGatewayRef(ctx context.Context, gatewayOrderRef string) (*domain.Order, error)
	ListOrders(ctx context.Context, limit uint64) ([]*domain.Order, error)
	ListUnfulfilledOrders(ctx context.Context) ([]*domain.Order, error)
	// UpdateOrderStatusIfPending applies the PENDING -> status transition as a
	// single conditional update and reports whether a row was changed.
	UpdateOrderStatusIfPending(ctx context.Context, reference string,
		status domain.OrderStatus, gatewayPaymentRef string) (bool, error)
	// UpdateFulfillmentState never moves an order out of SENT.
	UpdateFulfillmentState(ctx context.Context, reference string,
		state domain.FulfillmentState) (bool, error)

	// Catalog
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)
	ReadSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error)
	CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	UpdateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	DeleteSubject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, subjectID uuid.UUID) ([]*domain.Project, error)
	ReadProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error)
	UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	// Admin
	CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
