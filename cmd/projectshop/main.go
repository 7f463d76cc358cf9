package main

import (
	"context"
	"fmt"

	"github.com/parulcreation/projectshop/internal/adapter/auth"
	"github.com/parulcreation/projectshop/internal/adapter/client/cashfree"
	"github.com/parulcreation/projectshop/internal/adapter/client/razorpay"
	"github.com/parulcreation/projectshop/internal/adapter/config"
	"github.com/parulcreation/projectshop/internal/adapter/filestore"
	"github.com/parulcreation/projectshop/internal/adapter/fulfillment"
	"github.com/parulcreation/projectshop/internal/adapter/handler/http"
	"github.com/parulcreation/projectshop/internal/adapter/logger"
	"github.com/parulcreation/projectshop/internal/adapter/mailer"
	"github.com/parulcreation/projectshop/internal/adapter/storage"
	"github.com/parulcreation/projectshop/internal/adapter/storage/repository"
	"github.com/parulcreation/projectshop/internal/core/port"
	"github.com/parulcreation/projectshop/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	files, err := filestore.NewStore(conf.Files)
	if err != nil {
		log.Error("file store creating error", zap.Error(err))
		return
	}

	smtp, err := mailer.NewSMTPMailer(conf.Email, log.Named("Mailer"))
	if err != nil {
		log.Error("mailer creating error", zap.Error(err))
		return
	}

	var gateway port.PaymentGateway
	switch conf.Payments.Provider {
	case "cashfree":
		gateway, err = cashfree.NewClient(conf.Cashfree, conf.Payments, log.Named("Cashfree"))
	default:
		gateway, err = razorpay.NewClient(conf.Razorpay, conf.Payments, log.Named("Razorpay"))
	}
	if err != nil {
		log.Error("gateway client creating error", zap.Error(err))
		return
	}

	dispatcher, err := fulfillment.NewDispatcher(repo, smtp, files, log.Named("Fulfillment"))
	if err != nil {
		log.Error("fulfillment dispatcher creating error", zap.Error(err))
		return
	}
	dispatcher.StartWorkers(ctx, 2)

	svc, err := service.NewService(repo, gateway, dispatcher, tokenService, files, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	err = fulfillment.RecallUnsent(ctx, repo, dispatcher)
	if err != nil {
		log.Error("fulfillment recall error", zap.Error(err))
		return
	}

	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	catalogHandler, err := http.NewCatalogHandler(svc, log.Named("Catalog handler"))
	if err != nil {
		log.Error("catalog handler creating error", zap.Error(err))
		return
	}
	adminHandler, err := http.NewAdminHandler(svc, log.Named("Admin handler"))
	if err != nil {
		log.Error("admin handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(tokenService, paymentHandler, orderHandler, catalogHandler, adminHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
