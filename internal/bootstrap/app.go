package bootstrap

import (
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"glamstore/internal/config"
	"glamstore/internal/handler"
	"glamstore/internal/middleware"
	"glamstore/internal/repository"
	"glamstore/internal/router"
	"glamstore/internal/service"
	"glamstore/internal/ws"
	"glamstore/pkg/jwt"
)

const authRateLimit = 10

// Deps are the long-lived collaborators of the HTTP app. Images and
// Verifier are optional and must be left as nil interfaces when unused.
type Deps struct {
	Config   *config.Config
	Log      logrus.FieldLogger
	Store    repository.Store
	Hub      *ws.Hub
	Images   service.ImageStore
	Verifier service.TokenVerifier
}

// NewApp wires services, handlers and routes into a Fiber app.
func NewApp(d Deps) *fiber.App {
	store := d.Store
	reconciler := repository.NewReconciler(store.Users(), store.Orders(), d.Log)

	var broadcaster service.Broadcaster
	if d.Hub != nil {
		broadcaster = d.Hub
	}

	tokens := jwt.NewManager(d.Config.JWTSecret, d.Config.TokenTTL)
	authService := service.NewAuthService(store.Users(), reconciler, tokens, d.Verifier, d.Log)
	productService := service.NewProductService(store, d.Images, broadcaster, d.Log)
	categoryService := service.NewCategoryService(store.Categories())
	orderService := service.NewOrderService(store, reconciler, broadcaster, d.Log)
	userService := service.NewUserService(store.Users(), reconciler)
	reviewService := service.NewReviewService(store.Reviews(), store.Products())
	settingsService := service.NewSettingsService(store.Settings(), d.Images, broadcaster, d.Log)
	uploadService := service.NewUploadService(d.Images, d.Log)

	app := fiber.New(fiber.Config{
		AppName:      "GlamStore API",
		BodyLimit:    d.Config.BodyLimit(),
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	router.Setup(app, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Order:    handler.NewOrderHandler(orderService),
		User:     handler.NewUserHandler(userService),
		Review:   handler.NewReviewHandler(reviewService),
		Settings: handler.NewSettingsHandler(settingsService),
		Upload:   handler.NewUploadHandler(uploadService),
		Health:   handler.NewHealthHandler(store),
	}, authService, d.Hub, router.Options{AuthRateLimit: authRateLimit})

	return app
}

// errorHandler answers errors that escape the handlers, such as unknown
// routes and oversized bodies.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}
		if code >= 500 {
			log.WithError(err).WithFields(logrus.Fields{"method": c.Method(), "path": c.Path()}).Error("unhandled server error")
			message = "Internal server error"
		}
		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
