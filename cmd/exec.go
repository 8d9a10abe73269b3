package cmd

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lumentix/auth"
	"lumentix/clock"
	"lumentix/config"
	"lumentix/handlers"
	"lumentix/monitoring"
	"lumentix/notify"
	"lumentix/services"
	"lumentix/storage"
	"lumentix/transfer"
)

func Start() error {
	app := pocketbase.New()

	cfg := config.LoadConfig()

	// Initialize Redis and the key-value store.
	redisClient := storage.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	store := storage.NewRedisStore(redisClient)

	// Authorization oracle. Outside development a signing secret is
	// mandatory.
	var authorizer auth.Authorizer
	switch {
	case cfg.JWTSecret != "":
		authorizer = auth.NewTokenAuthorizer(cfg.JWTSecret)
	case cfg.Environment == "development":
		log.Println("JWT_SECRET not set, authorizing all principals (development only)")
		authorizer = auth.AllowAll{}
	default:
		log.Fatal("JWT_SECRET is required outside development")
	}

	// Notification publisher.
	var publisher notify.Publisher = notify.Noop{}
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		publisher = notify.NewPubNub(notify.PubNubConfig{
			PublishKey:   cfg.PubNubPublishKey,
			SubscribeKey: cfg.PubNubSubscribeKey,
			UserID:       cfg.PubNubUserID,
		})
	}
	emitter := notify.NewEmitter(publisher, cfg.NotifyChannel)

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor()
	}

	clk := clock.System{}
	sink := transfer.LogSink{}

	// Initialize services
	eventService := services.NewEventService(store, authorizer, clk, emitter, monitor)
	ticketService := services.NewTicketService(store, authorizer, clk, emitter, monitor)
	escrowService := services.NewEscrowService(store, authorizer, clk, eventService, sink, emitter, monitor, cfg.PayoutCurrency)
	multisigService := services.NewMultisigService(store, authorizer, sink, emitter, monitor, cfg.PayoutCurrency)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	escrowHandler := handlers.NewEscrowHandler(escrowService)
	multisigHandler := handlers.NewMultisigHandler(multisigService)

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Platform endpoints
		e.Router.POST("/api/initialize", escrowHandler.Initialize)
		e.Router.PUT("/api/platform/fee", escrowHandler.SetPlatformFee)
		e.Router.GET("/api/platform/fee", escrowHandler.GetPlatformFee)
		e.Router.GET("/api/platform/balance", escrowHandler.GetPlatformBalance)
		e.Router.POST("/api/platform/withdraw", escrowHandler.WithdrawPlatformFees)

		// Event endpoints
		e.Router.POST("/api/events", eventHandler.CreateEvent)
		e.Router.GET("/api/events/{id}", eventHandler.GetEvent)
		e.Router.GET("/api/events/{id}/availability", eventHandler.GetAvailability)
		e.Router.PATCH("/api/events/{id}/status", eventHandler.UpdateStatus)
		e.Router.POST("/api/events/{id}/cancel", escrowHandler.CancelEvent)
		e.Router.POST("/api/events/{id}/complete", escrowHandler.CompleteEvent)
		e.Router.POST("/api/events/{id}/release", escrowHandler.ReleaseEscrow)

		// Ticket endpoints
		e.Router.POST("/api/tickets/purchase", ticketHandler.PurchaseTicket)
		e.Router.GET("/api/tickets/{id}", ticketHandler.GetTicket)
		e.Router.POST("/api/tickets/{id}/use", ticketHandler.UseTicket)
		e.Router.POST("/api/tickets/{id}/transfer", ticketHandler.TransferTicket)
		e.Router.POST("/api/tickets/{id}/refund", ticketHandler.RefundTicket)

		// Validator registry
		e.Router.POST("/api/events/{id}/validators", ticketHandler.AddValidator)
		e.Router.DELETE("/api/events/{id}/validators/{principal}", ticketHandler.RemoveValidator)
		e.Router.GET("/api/events/{id}/validators/{principal}", ticketHandler.IsAuthorizedValidator)

		// Multisig release policy
		e.Router.PUT("/api/events/{id}/signers", multisigHandler.SetSigners)
		e.Router.GET("/api/events/{id}/approvals", multisigHandler.GetApprovals)
		e.Router.POST("/api/events/{id}/approvals", multisigHandler.ApproveRelease)
		e.Router.DELETE("/api/events/{id}/approvals/{signer}", multisigHandler.RevokeApproval)
		e.Router.POST("/api/events/{id}/distribute", multisigHandler.DistributeEscrow)

		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := storage.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	return app.Start()
}
