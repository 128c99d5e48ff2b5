package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/config"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/handlers"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	channelHandler *handlers.ChannelHandler,
	tabHandler *handlers.TabHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Uploaded files are served back under a predictable prefix.
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/stats", channelHandler.Stats)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Public browsing
	api.Get("/channels", channelHandler.List)
	api.Get("/channels/:id", channelHandler.Get)

	// Admin-only catalogue mutations
	admin := api.Group("", middleware.JWTProtected(cfg), middleware.AdminRequired())
	admin.Post("/channels", channelHandler.Create)
	admin.Put("/channels/:id", channelHandler.Update)
	admin.Delete("/channels/:id", channelHandler.Delete)

	admin.Post("/channels/:id/tabs", tabHandler.AddTab)
	admin.Put("/tabs/:id", tabHandler.UpdateTab)
	admin.Delete("/tabs/:id", tabHandler.DeleteTab)

	admin.Put("/tabs/:id/owner-content", tabHandler.UpsertOwnerContent)
	admin.Post("/tabs/:id/blocks", tabHandler.AddBlock)
	admin.Put("/blocks/:id", tabHandler.UpdateBlock)
	admin.Delete("/blocks/:id", tabHandler.DeleteBlock)

	// Uploads — any authenticated role
	uploads := api.Group("/upload", middleware.JWTProtected(cfg))
	uploads.Post("/image", uploadHandler.UploadImage)
	uploads.Post("/pdf", uploadHandler.UploadPDF)
}
