package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"glamstore/internal/handler"
	"glamstore/internal/middleware"
	"glamstore/internal/service"
	"glamstore/internal/ws"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Order    *handler.OrderHandler
	User     *handler.UserHandler
	Review   *handler.ReviewHandler
	Settings *handler.SettingsHandler
	Upload   *handler.UploadHandler
	Health   *handler.HealthHandler
}

type Options struct {
	// AuthRateLimit caps /auth requests per IP per minute; 0 disables it.
	AuthRateLimit int
}

// Setup registers every /api/v1 route. hub may be nil when no live feed is
// served.
func Setup(app *fiber.App, h Handlers, authService service.AuthService, hub *ws.Hub, opts Options) {
	requireAuth := middleware.RequireAuth(authService)
	requireAdmin := middleware.RequireAdmin()

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	if opts.AuthRateLimit > 0 {
		auth.Use(limiter.New(limiter.Config{
			Max:               opts.AuthRateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}
	auth.Post("/login", h.Auth.Login)
	auth.Post("/register", h.Auth.Register)

	api.Get("/health", h.Health.Check)

	api.Get("/products", h.Product.GetProducts)
	api.Get("/products/showcase", h.Product.GetShowcase)
	api.Get("/products/best-sellers", h.Product.GetBestSellers)
	api.Get("/products/:id", h.Product.GetProduct)
	api.Get("/products/:id/reviews", h.Review.GetReviews)

	api.Get("/categories", h.Category.GetCategories)
	api.Get("/categories/slug/:slug", h.Category.GetCategoryBySlug)
	api.Get("/categories/:id", h.Category.GetCategory)

	api.Get("/settings/featured-products", h.Settings.GetFeaturedProducts)
	api.Get("/settings/carousel", h.Settings.GetCarousel)

	// ============ AUTHENTICATED ROUTES ============
	api.Get("/me", requireAuth, h.Auth.Me)
	api.Get("/me/orders", requireAuth, h.Order.MyOrders)
	api.Post("/orders", requireAuth, h.Order.CreateOrder)
	api.Post("/products/:id/reviews", requireAuth, h.Review.SubmitReview)

	// ============ ADMIN ROUTES ============
	// Middleware is attached per route; a group-level Use on the shared
	// prefix would also run for the public routes.
	api.Post("/products", requireAuth, requireAdmin, h.Product.CreateProduct)
	api.Put("/products/:id", requireAuth, requireAdmin, h.Product.UpdateProduct)
	api.Delete("/products/:id", requireAuth, requireAdmin, h.Product.DeleteProduct)

	api.Post("/categories", requireAuth, requireAdmin, h.Category.CreateCategory)
	api.Put("/categories/:id", requireAuth, requireAdmin, h.Category.UpdateCategory)
	api.Delete("/categories/:id", requireAuth, requireAdmin, h.Category.DeleteCategory)

	api.Get("/orders", requireAuth, requireAdmin, h.Order.GetOrders)
	api.Get("/orders/:id", requireAuth, requireAdmin, h.Order.GetOrder)
	api.Put("/orders/:id/status", requireAuth, requireAdmin, h.Order.UpdateStatus)
	api.Delete("/orders/:id", requireAuth, requireAdmin, h.Order.DeleteOrder)

	api.Get("/users", requireAuth, requireAdmin, h.User.GetUsers)
	api.Post("/users", requireAuth, requireAdmin, h.User.CreateUser)
	api.Get("/users/:id", requireAuth, requireAdmin, h.User.GetUser)
	api.Put("/users/:id", requireAuth, requireAdmin, h.User.UpdateUser)
	api.Delete("/users/:id", requireAuth, requireAdmin, h.User.DeleteUser)
	api.Get("/users/:id/orders", requireAuth, requireAdmin, h.User.GetUserOrders)

	api.Post("/settings/featured-products", requireAuth, requireAdmin, h.Settings.SetFeaturedProducts)
	api.Put("/settings/carousel", requireAuth, requireAdmin, h.Settings.SetCarousel)

	api.Post("/upload", requireAuth, requireAdmin, h.Upload.Upload)
	api.Delete("/upload/:cid", requireAuth, requireAdmin, h.Upload.Unpin)

	if hub != nil {
		api.Get("/ws", requireAuth, requireAdmin, handler.UpgradeOnly, handler.LiveFeed(hub))
	}
}
