package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Handler
	service port.Service
}

func NewAdminHandler(service port.Service, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type adminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ah *AdminHandler) Setup(ctx *gin.Context) {
	req := adminRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	admin, err := ah.service.SetupAdmin(ctx, req.Username, req.Password)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccessWithStatus(ctx, gin.H{"username": admin.Username}, http.StatusCreated)
}

func (ah *AdminHandler) Login(ctx *gin.Context) {
	req := adminRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	token, err := ah.service.LoginAdmin(ctx, req.Username, req.Password)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, gin.H{"token": token})
}

func (ah *AdminHandler) Verify(ctx *gin.Context) {
	payload := getAuthPayload(ctx)
	ah.handleSuccess(ctx, gin.H{"username": payload.Username})
}

type dashboardResponse struct {
	TotalOrders  int64           `json:"total_orders"`
	PaidOrders   int64           `json:"paid_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Subjects     int64           `json:"subjects"`
	Projects     int64           `json:"projects"`
}

func (ah *AdminHandler) Dashboard(ctx *gin.Context) {
	stats, err := ah.service.Dashboard(ctx)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, dashboardResponse{
		TotalOrders:  stats.TotalOrders,
		PaidOrders:   stats.PaidOrders,
		TotalRevenue: stats.TotalRevenue,
		Subjects:     stats.Subjects,
		Projects:     stats.Projects,
	})
}

type subjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (ah *AdminHandler) CreateSubject(ctx *gin.Context) {
	req := subjectRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	subject, err := ah.service.CreateSubject(ctx, &domain.Subject{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccessWithStatus(ctx, newSubjectResponse(subject), http.StatusCreated)
}

func (ah *AdminHandler) UpdateSubject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ah.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	req := subjectRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	subject, err := ah.service.UpdateSubject(ctx, &domain.Subject{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, newSubjectResponse(subject))
}

func (ah *AdminHandler) DeleteSubject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ah.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	if err := ah.service.DeleteSubject(ctx, id); err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, gin.H{"message": "Subject deleted"})
}

// CreateProject accepts a multipart form: title, description, subject_id,
// price and the PDF file itself.
func (ah *AdminHandler) CreateProject(ctx *gin.Context) {
	project, ok := ah.bindProjectForm(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ah.handleValidationError(ctx, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		ah.handleError(ctx, domain.ErrInternal)
		return
	}
	defer func() { _ = file.Close() }()

	newProject, err := ah.service.CreateProject(ctx, project, file, fileHeader.Filename)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccessWithStatus(ctx, newProjectResponse(newProject), http.StatusCreated)
}

func (ah *AdminHandler) UpdateProject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ah.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	project, ok := ah.bindProjectForm(ctx)
	if !ok {
		return
	}
	project.ID = id

	updated := func() (*domain.Project, error) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			// File is optional on update.
			return ah.service.UpdateProject(ctx, project, nil, "")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, domain.ErrInternal
		}
		defer func() { _ = file.Close() }()
		return ah.service.UpdateProject(ctx, project, file, fileHeader.Filename)
	}

	result, err := updated()
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, newProjectResponse(result))
}

func (ah *AdminHandler) DeleteProject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ah.handleError(ctx, domain.ErrDataNotFound)
		return
	}

	if err := ah.service.DeleteProject(ctx, id); err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, gin.H{"message": "Project deleted"})
}

func (ah *AdminHandler) bindProjectForm(ctx *gin.Context) (*domain.Project, bool) {
	subjectID, err := uuid.Parse(ctx.PostForm("subject_id"))
	if err != nil {
		ah.handleValidationError(ctx, err)
		return nil, false
	}

	price, err := decimal.Parse(ctx.PostForm("price"))
	if err != nil {
		ah.handleValidationError(ctx, err)
		return nil, false
	}

	title := ctx.PostForm("title")
	if title == "" {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return nil, false
	}

	return &domain.Project{
		SubjectID:   subjectID,
		Title:       title,
		Description: ctx.PostForm("description"),
		Price:       price,
	}, true
}
