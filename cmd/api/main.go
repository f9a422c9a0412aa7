package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"petcare/internal/config"
	"petcare/internal/database"
	"petcare/internal/gateway/vnpay"
	"petcare/internal/middleware"
	"petcare/internal/modules/auth"
	"petcare/internal/modules/booking"
	"petcare/internal/modules/notification"
	"petcare/internal/modules/payment"
	jwtsvc "petcare/internal/pkg/jwt"
	"petcare/internal/pkg/mq"
	"petcare/internal/pkg/reftoken"
	"petcare/internal/repository"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}

	codec, err := reftoken.New(cfg.Token.Secret)
	if err != nil {
		logger.Fatal("reference token codec", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	ownerRepo := repository.NewOwnerRepository(db)
	petRepo := repository.NewPetRepository(db)
	itemRepo := repository.NewCareItemRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	attemptRepo := repository.NewPaymentAttemptRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	var events notification.Events = notification.NewLogEvents(logger)
	if cfg.AMQP.URL != "" {
		pub, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Warn("amqp unavailable, events stay in the log", zap.Error(err))
		} else {
			defer pub.Close()
			events = pub
		}
	}

	gateway := vnpay.NewClient(vnpay.Config{
		TmnCode:    cfg.Gateway.TmnCode,
		HashSecret: cfg.Gateway.HashSecret,
		BaseURL:    cfg.Gateway.BaseURL,
		ReturnURL:  cfg.Gateway.ReturnURL,
		OrderType:  cfg.Gateway.OrderType,
	})

	notifService := notification.NewService(notifRepo, events, logger)
	notifHandler := notification.NewHandler(notifService)

	authService := auth.NewService(ownerRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(regRepo, petRepo, itemRepo, notifService, logger)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(regRepo, attemptRepo, itemRepo, gateway, codec, notifService, logger)
	paymentHandler := payment.NewHandler(paymentService, cfg.Gateway.LandingURL)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			notifHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
