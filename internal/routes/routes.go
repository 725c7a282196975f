// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and groups routes by
// functionality with their middleware.
package routes

import (
	"ridepool/internal/config"
	"ridepool/internal/gateway"
	"ridepool/internal/handlers"
	"ridepool/internal/middleware"
	"ridepool/internal/repositories"
	"ridepool/internal/services/inventory"
	"ridepool/internal/services/ledger"
	"ridepool/internal/services/notification"
	"ridepool/internal/services/payment"
	"ridepool/internal/services/settlement"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Repositories
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	paymentRepo := repositories.NewPaymentRepository(repositories.DB)
	tripRepo := repositories.NewTripRepository(repositories.DB)

	// Gateway adapter
	var gw gateway.Adapter
	gwCfg := config.LoadGateway()
	if config.UseMemoryGateway() {
		gw = gateway.NewMemoryAdapter()
	} else {
		gw = gateway.NewRazorpayAdapter(gwCfg.KeyID, gwCfg.KeySecret)
	}

	// Services
	ledgerService := ledger.NewService(walletRepo, repositories.CacheService, nil)
	inventoryService := inventory.NewService(tripRepo, repositories.CacheService)
	paymentService := payment.NewService(paymentRepo)
	settlementService := settlement.NewService(
		inventoryService,
		ledgerService,
		paymentService,
		gw,
		notification.NewLogHook(),
		settlement.Config{
			WebhookSecret:  gwCfg.WebhookSecret,
			GatewayTimeout: gwCfg.Timeout,
		},
	)

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(settlementService, paymentService)
	walletHandler := handlers.NewWalletHandler(ledgerService, settlementService)
	tripHandler := handlers.NewTripHandler(inventoryService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Gateway callbacks carry their own HMAC authentication; they are not
	// behind the JWT middleware.
	api.Post("/payments/verify", paymentHandler.VerifyPayment)
	api.Post("/payments/failure", paymentHandler.PaymentFailed)

	authMiddleware := middleware.NewAuthMiddleware()
	protected := api.Use(authMiddleware.Handler)

	payments := protected.Group("/payments")
	payments.Post("/book", paymentHandler.InitiateBooking)
	payments.Post("/:id/refund", paymentHandler.RefundPayment)
	payments.Get("/history", paymentHandler.PaymentHistory)

	wallet := protected.Group("/wallet")
	wallet.Get("/", walletHandler.GetWallet)
	wallet.Get("/balance", walletHandler.GetBalance)
	wallet.Get("/history", walletHandler.WalletHistory)
	wallet.Post("/withdraw", walletHandler.Withdraw)

	trips := protected.Group("/trips")
	trips.Post("/", middleware.RequireRole("driver"), tripHandler.CreateTrip)
	trips.Get("/:id", tripHandler.GetTrip)
	trips.Post("/:id/cancel", middleware.RequireRole("driver"), tripHandler.CancelTrip)
}
