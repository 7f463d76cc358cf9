package port

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	// Payments
	CreatePaymentOrder(ctx context.Context, order *domain.Order) (*domain.Order, *PaymentSession, error)
	HandleWebhook(ctx context.Context, body []byte, headers http.Header) error
	VerifyPayment(ctx context.Context, reference string, proof *ClientProof) (*domain.Order, error)

	// Orders
	GetOrder(ctx context.Context, reference string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	DownloadArtifact(ctx context.Context, reference string) (*domain.Project, io.ReadCloser, error)

	// Catalog
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)
	GetSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error)
	CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	UpdateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	DeleteSubject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, subjectID uuid.UUID) ([]*domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	CreateProject(ctx context.Context, project *domain.Project, file io.Reader, originalName string) (*domain.Project, error)
	UpdateProject(ctx context.Context, project *domain.Project, file io.Reader, originalName string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	// Admin
	SetupAdmin(ctx context.Context, username string, password string) (*domain.Admin, error)
	LoginAdmin(ctx context.Context, username string, password string) (string, error)
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}
