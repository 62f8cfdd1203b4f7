package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/barbearia-app/barbearia-backend/internal/handlers"
	"github.com/barbearia-app/barbearia-backend/internal/middleware"
	"github.com/barbearia-app/barbearia-backend/internal/services"
	"github.com/barbearia-app/barbearia-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, conversation *services.ConversationService, sender services.MessageSender, jwtSecret string) {
	authHandler := handlers.NewAuthHandler(store, jwtSecret)
	catalogHandler := handlers.NewCatalogHandler(store)
	appointmentHandler := handlers.NewAppointmentHandler(store)
	adminHandler := handlers.NewAdminHandler(store)
	whatsappHandler := handlers.NewWhatsAppHandler(conversation, sender)

	app.Get("/health", handlers.Health)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public catalog
	app.Get("/services", catalogHandler.GetServices)
	app.Get("/barbers", catalogHandler.GetBarbers)

	// Authenticated booking API
	appointments := app.Group("/appointments", middleware.RequireAuth(jwtSecret))
	appointments.Get("/", appointmentHandler.GetAppointments)
	appointments.Post("/", appointmentHandler.CreateAppointment)
	appointments.Delete("/:id", appointmentHandler.CancelAppointment)

	// Admin routes
	admin := app.Group("/admin", middleware.RequireAuth(jwtSecret), middleware.RequireAdmin())
	admin.Get("/metrics", adminHandler.GetMetrics)
	admin.Get("/appointments", adminHandler.GetAllAppointments)
	admin.Get("/users", adminHandler.GetUsers)
	admin.Post("/services", adminHandler.CreateService)
	admin.Delete("/services/:id", adminHandler.DeleteService)
	admin.Post("/barbers", adminHandler.CreateBarber)
	admin.Delete("/barbers/:id", adminHandler.DeleteBarber)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// WhatsApp webhook - environment-aware validation
	if os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" || os.Getenv("EVOLUTION_API_KEY") == "" {
		webhooks.Post("/evolution", whatsappHandler.HandleWebhook)
		if os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
			println("⚠️  WhatsApp webhook validation DISABLED")
		}
	} else {
		webhooks.Post("/evolution", middleware.ValidateEvolutionKey(), whatsappHandler.HandleWebhook)
	}
}
