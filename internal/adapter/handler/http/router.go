package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parulcreation/projectshop/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	tokenService port.TokenService,
	paymentHandler *PaymentHandler,
	orderHandler *OrderHandler,
	catalogHandler *CatalogHandler,
	adminHandler *AdminHandler) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		api.GET("/subjects", catalogHandler.ListSubjects)
		api.GET("/subjects/:id", catalogHandler.GetSubject)
		api.GET("/projects", catalogHandler.ListProjects)
		api.GET("/projects/:id", catalogHandler.GetProject)

		payments := api.Group("/payments")
		{
			payments.POST("/create-order", paymentHandler.CreatePaymentOrder)
			payments.POST("/webhook", paymentHandler.Webhook)
			payments.POST("/verify-payment", paymentHandler.VerifyPayment)
		}

		api.GET("/orders/:reference", orderHandler.GetOrder)
		api.GET("/download/:reference", orderHandler.Download)

		admin := api.Group("/admin")
		{
			admin.POST("/setup", adminHandler.Setup)
			admin.POST("/login", adminHandler.Login)
		}

		authorized := api.Group("")
		{
			authorized.Use(authCheck(&adminHandler.Handler, tokenService))
			authorized.GET("/admin/verify", adminHandler.Verify)
			authorized.GET("/admin/dashboard", adminHandler.Dashboard)
			authorized.GET("/orders", orderHandler.ListOrders)

			authorized.POST("/subjects", adminHandler.CreateSubject)
			authorized.PUT("/subjects/:id", adminHandler.UpdateSubject)
			authorized.DELETE("/subjects/:id", adminHandler.DeleteSubject)

			authorized.POST("/projects", adminHandler.CreateProject)
			authorized.PUT("/projects/:id", adminHandler.UpdateProject)
			authorized.DELETE("/projects/:id", adminHandler.DeleteProject)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
