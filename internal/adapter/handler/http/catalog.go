package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	Handler
	service port.Service
}

func NewCatalogHandler(service port.Service, logger *zap.Logger) (*CatalogHandler, error) {
	return &CatalogHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type subjectResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	ProjectCount int       `json:"project_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func newSubjectResponse(subject *domain.Subject) subjectResponse {
	return subjectResponse{
		ID:           subject.ID,
		Name:         subject.Name,
		Description:  subject.Description,
		Icon:         subject.Icon,
		ProjectCount: subject.ProjectCount,
		CreatedAt:    subject.CreatedAt,
	}
}

func (ch *CatalogHandler) ListSubjects(ctx *gin.Context) {
	list, err := ch.service.ListSubjects(ctx)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	result := make([]subjectResponse, 0, len(list))
	for _, subject := range list {
		result = append(result, newSubjectResponse(subject))
	}

	ch.handleSuccess(ctx, result)
}

func (ch *CatalogHandler) GetSubject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ch.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	subject, err := ch.service.GetSubject(ctx, id)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newSubjectResponse(subject))
}

// projectResponse deliberately omits the stored file name: the artifact is
// reachable only through the payment-gated download route.
type projectResponse struct {
	ID          uuid.UUID       `json:"id"`
	SubjectID   uuid.UUID       `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newProjectResponse(project *domain.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		SubjectID:   project.SubjectID,
		SubjectName: project.SubjectName,
		Title:       project.Title,
		Description: project.Description,
		Price:       project.Price,
		CreatedAt:   project.CreatedAt,
	}
}

func (ch *CatalogHandler) ListProjects(ctx *gin.Context) {
	subjectID := uuid.Nil
	if raw := ctx.Query("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ch.handleValidationError(ctx, err)
			return
		}
		subjectID = id
	}

	list, err := ch.service.ListProjects(ctx, subjectID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	result := make([]projectResponse, 0, len(list))
	for _, project := range list {
		result = append(result, newProjectResponse(project))
	}

	ch.handleSuccess(ctx, result)
}

func (ch *CatalogHandler) GetProject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ch.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	project, err := ch.service.GetProject(ctx, id)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newProjectResponse(project))
}
