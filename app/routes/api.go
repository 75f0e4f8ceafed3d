// Package routes wires the HTTP API onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/controllers"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/app/services"
	"github.com/shashiranjanraj/ecommerce/pkg/middleware"
	"github.com/shashiranjanraj/ecommerce/pkg/rbac"
	"github.com/shashiranjanraj/ecommerce/pkg/router"
)

// RegisterAPI mounts every endpoint under /api. Reads on the catalog are
// public; everything else needs a token, and catalog mutations plus order
// status changes are admin only.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	authController := controllers.NewAuthController(services.NewAuthService(db))
	categoryController := controllers.NewCategoryController(services.NewCategoryService(db))
	productController := controllers.NewProductController(services.NewProductService(db))
	orderController := controllers.NewOrderController(services.NewOrderService(db))

	api := r.Group("/api")

	api.Post("/register", "auth.register", authController.Register)
	api.Post("/login", "auth.login", authController.Login)

	api.Get("/categories", "categories.index", categoryController.Index)
	api.Get("/categories/{id}", "categories.show", categoryController.Show)
	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/{id}", "products.show", productController.Show)

	authed := api.Group("", middleware.Auth)
	authed.Get("/profile", "auth.profile", authController.Profile)

	authed.Post("/orders", "orders.store", orderController.OrderNow)
	authed.Get("/orders", "orders.index", orderController.Index)
	authed.Get("/orders/{id}", "orders.show", orderController.Show)
	authed.Post("/orders/{id}/cancel", "orders.cancel", orderController.Cancel)

	admin := authed.Group("", rbac.HasRole(models.RoleAdmin))
	admin.Post("/categories", "categories.store", categoryController.Store)
	admin.Put("/categories/{id}", "categories.update", categoryController.Update)
	admin.Post("/categories/{id}/toggle", "categories.toggle", categoryController.Toggle)
	admin.Delete("/categories/{id}", "categories.destroy", categoryController.Destroy)

	admin.Post("/products", "products.store", productController.Store)
	admin.Put("/products/{id}", "products.update", productController.Update)
	admin.Post("/products/{id}/toggle", "products.toggle", productController.Toggle)
	admin.Post("/products/{id}/image", "products.image", productController.UploadImage)
	admin.Delete("/products/{id}", "products.destroy", productController.Destroy)

	admin.Put("/orders/{id}/status", "orders.status", orderController.ChangeStatus)
}
