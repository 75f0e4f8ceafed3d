package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_and_roles", &CreateUsersAndRoles{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_order_tables", &CreateOrderTables{})
}

// -------- 0001: users and roles --------

type CreateUsersAndRoles struct{}

func (m *CreateUsersAndRoles) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{})
}

func (m *CreateUsersAndRoles) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("user_roles", "users", "roles")
}

// -------- 0002: categories, products, links --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductCategory{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_categories", "products", "categories")
}

// -------- 0003: orders and items --------

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}
