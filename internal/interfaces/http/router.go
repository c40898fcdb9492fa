package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/clientes-api/internal/application/usecase"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
	"github.com/jhoicas/clientes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	CustomerUC     *usecase.CustomerUseCase
	Pinger         repository.Pinger // opcional, para /health
	Logger         *logger.Logger
	AllowedOrigins string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// NewApp crea la aplicación Fiber con middlewares, manejo de errores y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  deps.ReadTimeout,
		WriteTimeout: deps.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(log),
	})
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	if deps.AllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  deps.AllowedOrigins,
			AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
			ExposeHeaders: "Location, X-Request-ID",
		}))
	}

	app.Get("/health", Health(deps.AppName, deps.Pinger))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
}
