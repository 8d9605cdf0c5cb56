package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/config"
	"github.com/example/furnistore/internal/handlers"
	"github.com/example/furnistore/internal/middleware"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	smsService := services.NewSMSService(cfg.SMSGatewayURL, cfg.SMSGatewayToken)
	otpService := services.NewOTPService(db, cfg)
	otpService.StartSweeper(cfg.OTPSweepInterval)

	dealerService := services.NewDealerService(db, cfg, otpService, emailService, smsService)
	adminService := services.NewAdminService(db, cfg)
	enquiryService := services.NewEnquiryService(db, emailService)

	authHandler := handlers.NewAuthHandler(dealerService, adminService)
	resetHandler := handlers.NewPasswordResetHandler(dealerService)
	dealerHandler := handlers.NewDealerHandler(db, dealerService, enquiryService)
	enquiryHandler := handlers.NewEnquiryHandler(db, enquiryService)
	productHandler := handlers.NewProductHandler(db)
	adminHandler := handlers.NewAdminHandler(db, adminService, dealerService)

	authRequired := middleware.AuthMiddleware(cfg)
	dealerOnly := middleware.RequireRole(models.RoleDealer)
	adminOnly := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRole(models.RoleSuperAdmin)

	api := app.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.RegisterDealer)
	auth.Post("/login", authHandler.DealerLogin)
	auth.Post("/admin/login", authHandler.AdminLogin)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/resend-otp", authHandler.ResendOTP)
	auth.Post("/forgot-password", resetHandler.ForgotPassword)
	auth.Post("/reset-password", resetHandler.ResetPassword)

	// Dealer self-service
	dealer := api.Group("/dealer", authRequired, dealerOnly)
	dealer.Get("/profile", dealerHandler.GetProfile)
	dealer.Put("/profile", dealerHandler.UpdateProfile)
	dealer.Post("/change-password", dealerHandler.ChangePassword)
	dealer.Post("/change-email", dealerHandler.RequestEmailChange)
	dealer.Post("/change-email/confirm", dealerHandler.ConfirmEmailChange)
	dealer.Get("/dashboard", dealerHandler.Dashboard)

	dealer.Get("/products", productHandler.List(true))
	dealer.Get("/products/:id", productHandler.Get(true))

	dealer.Post("/enquiries", enquiryHandler.Create)
	dealer.Get("/enquiries", enquiryHandler.ListForDealer)
	dealer.Get("/enquiries/:id", enquiryHandler.GetForDealer)

	// Admin
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Post("/change-password", adminHandler.ChangePassword)

	admin.Get("/dealers", adminHandler.ListDealers)
	admin.Get("/dealers/statistics", adminHandler.DealerStatistics)
	admin.Get("/dealers/:id", adminHandler.GetDealer)
	admin.Post("/dealers/:id/approve", adminHandler.ApproveDealer)
	admin.Post("/dealers/:id/reject", adminHandler.RejectDealer)
	admin.Patch("/dealers/:id/status", adminHandler.UpdateDealerStatus)

	admin.Get("/products", productHandler.List(false))
	admin.Get("/products/stats", productHandler.Stats)
	admin.Get("/products/:id", productHandler.Get(false))
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Patch("/products/:id/active", productHandler.SetActive)

	admin.Get("/enquiries", enquiryHandler.ListForAdmin)
	admin.Get("/enquiries/statistics", enquiryHandler.Statistics)
	admin.Get("/enquiries/:id", enquiryHandler.GetForAdmin)
	admin.Patch("/enquiries/:id/status", enquiryHandler.SetStatus)
	admin.Post("/enquiries/:id/approve", enquiryHandler.Approve)
	admin.Post("/enquiries/:id/reject", enquiryHandler.Reject)
	admin.Post("/enquiries/:id/close", enquiryHandler.Close)

	// Super admin account management
	accounts := api.Group("/admin/accounts", authRequired, superAdminOnly)
	accounts.Get("/", adminHandler.ListAdmins)
	accounts.Post("/", adminHandler.CreateAdmin)
	accounts.Put("/:id", adminHandler.UpdateAdmin)
	accounts.Patch("/:id/active", adminHandler.SetAdminActive)
}
