package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/aqua-delivery/internal/application/auth"
	apporder "github.com/tu-usuario/aqua-delivery/internal/application/order"
	"github.com/tu-usuario/aqua-delivery/internal/application/usecase"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	OrderUC   *apporder.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: lectura pública, escritura solo distribuidores
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleDistributor), productHandler.Create)
	products.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleDistributor), productHandler.Update)
	products.Delete("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleDistributor), productHandler.Delete)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.UpdateMe)
	users.Get("/workers", RequireRole(entity.RoleDistributor), userHandler.ListWorkers)

	// Orders (protegido; la autorización fina por pedido vive en el caso de uso)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", RequireRole(entity.RoleCustomer), orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", RequireRole(entity.RoleDistributor, entity.RoleWorker), orderHandler.UpdateStatus)
}
