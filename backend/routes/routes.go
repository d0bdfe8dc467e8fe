package routes

import (
	"coursesite/backend/config"
	"coursesite/backend/controllers"
	"coursesite/backend/middleware"
	"coursesite/backend/payments"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, checkout payments.CheckoutCreator) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Public catalog; lesson pages sit behind the auth guard and the
	// handler's own entitlement check.
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/api/courses", coursesController.GetCourses)
	app.Get("/api/courses/:id", coursesController.GetCourseDetails)
	app.Get("/api/courses/:id/lessons/:lessonId", authMiddleware, coursesController.GetLesson)

	// Dashboard and profile
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
	app.Get("/api/user/profile", authMiddleware, dashboardController.GetProfile)

	// Checkout
	checkoutController := controllers.NewCheckoutController(db, cfg, checkout)
	app.Post("/api/checkout", authMiddleware, checkoutController.InitiateCheckout)

	// Stripe webhook: no session auth, trust comes from the event
	// signature alone.
	webhookController := controllers.NewWebhookController(db, cfg)
	app.Post("/api/webhooks/payment", webhookController.HandleStripeWebhook)
}
