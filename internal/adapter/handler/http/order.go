package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parulcreation/projectshop/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, err := oh.service.GetOrder(ctx, ctx.Param("reference"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	list, err := oh.service.ListOrders(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, order := range list {
		result = append(result, newOrderResponse(order))
	}

	oh.handleSuccess(ctx, result)
}

// Download streams the purchased PDF for a paid order.
func (oh *OrderHandler) Download(ctx *gin.Context) {
	project, file, err := oh.service.DownloadArtifact(ctx, ctx.Param("reference"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	defer func() { _ = file.Close() }()

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, project.Title))
	ctx.Header("Content-Type", "application/pdf")
	ctx.Status(http.StatusOK)

	if _, err := io.Copy(ctx.Writer, file); err != nil {
		oh.logger.Error("download stream failed",
			zap.String("project", project.ID.String()), zap.Error(err))
	}
}
