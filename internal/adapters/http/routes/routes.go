package routes

import (
	"biblioteca-api/internal/adapters/http/handlers"
	"biblioteca-api/internal/adapters/http/middleware"
	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/config"
	"biblioteca-api/internal/core/services"
	"biblioteca-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers and registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, loanRepo, cfg)
	bookService := services.NewBookService(bookRepo, loanRepo)
	loanService := services.NewLoanService(loanRepo, bookRepo, userRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(bookService)
	loanHandler := handlers.NewLoanHandler(loanService)

	auth := middleware.AuthMiddleware(cfg)

	// Public
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", auth, authHandler.Profile)

	// Books
	books := api.Group("/books")
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.Get)
	books.Post("/", auth, bookHandler.Create)

	// Loans (all routes require authentication)
	loans := api.Group("/loans")
	loans.Use(auth)
	loans.Post("/", loanHandler.Create)
	loans.Get("/", loanHandler.List)
	loans.Put("/:id/return", loanHandler.Return)

	// 404 for everything else
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "route not found", "the requested route does not exist in this API")
	})
}
