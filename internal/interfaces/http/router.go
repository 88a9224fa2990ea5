package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Stockify-api/internal/application/auth"
	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/application/usecase"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Provisioning *identity.ProvisioningService
	Profiles     *identity.ProfileService
	UserUC       *usecase.UserUseCase
	HierarchyUC  *catalog.HierarchyUseCase
	ProductUC    *catalog.ProductUseCase
	References   *catalog.ReferenceService
	Sheets       *catalog.SheetUseCase
}

// Router registra las rutas de la API. Los casos de uso vuelven a comprobar cada permiso; el
// middleware corta antes y deja constancia de la denegación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	profileHandler := NewProfileHandler(deps.Profiles)
	userHandler := NewUserHandler(deps.Provisioning, deps.UserUC)
	catalogHandler := NewCatalogHandler(deps.HierarchyUC)
	productHandler := NewProductHandler(deps.ProductUC, deps.References, deps.Sheets)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/password-reset", profileHandler.RequestPasswordReset)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.AuthUC))

	me := protected.Group("/me")
	me.Get("/", profileHandler.GetMe)
	me.Patch("/", profileHandler.PatchMe)
	me.Post("/password", profileHandler.ChangePassword)

	// La pertenencia (dueño del objeto) la decide el caso de uso en GET y PATCH /:id.
	users := protected.Group("/users")
	users.Post("/", RequirePermission(rbac.CreateUsers), userHandler.Register)
	users.Get("/", RequirePermission(rbac.ManageUsers), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", RequirePermission(rbac.DeleteUsers), userHandler.Delete)
	users.Post("/:id/password-reset", RequirePermission(rbac.ConfirmPasswordReset), profileHandler.ConfirmPasswordReset)

	view := RequirePermission(rbac.ViewCatalog)
	manage := RequirePermission(rbac.ManageProducts)

	ranges := protected.Group("/ranges")
	ranges.Get("/", view, catalogHandler.ListRanges)
	ranges.Post("/", manage, catalogHandler.CreateRange)
	ranges.Get("/:id", view, catalogHandler.GetRange)
	ranges.Put("/:id", manage, catalogHandler.UpdateRange)
	ranges.Delete("/:id", manage, catalogHandler.DeleteRange)

	families := protected.Group("/families")
	families.Get("/", view, catalogHandler.ListFamilies)
	families.Post("/", manage, catalogHandler.CreateFamily)
	families.Get("/:id", view, catalogHandler.GetFamily)
	families.Put("/:id", manage, catalogHandler.UpdateFamily)
	families.Delete("/:id", manage, catalogHandler.DeleteFamily)

	packagings := protected.Group("/packagings")
	packagings.Get("/", view, catalogHandler.ListPackagings)
	packagings.Post("/", manage, catalogHandler.CreatePackaging)
	packagings.Get("/:id", view, catalogHandler.GetPackaging)
	packagings.Put("/:id", manage, catalogHandler.UpdatePackaging)
	packagings.Delete("/:id", manage, catalogHandler.DeletePackaging)

	// Rutas fijas antes de /:id.
	products := protected.Group("/products")
	products.Get("/reference", view, productHandler.PreviewReference)
	products.Post("/reference/validate", view, productHandler.ValidateReference)
	products.Get("/expired", RequirePermission(rbac.ViewExpiryAlerts), productHandler.ListExpired)
	products.Get("/", view, productHandler.List)
	products.Post("/", manage, productHandler.Create)
	products.Get("/:id", view, productHandler.GetByID)
	products.Put("/:id", manage, productHandler.Update)
	products.Delete("/:id", manage, productHandler.Delete)
	products.Get("/:id/sheet", view, productHandler.DownloadSheet)
}
