package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/auth"
)

func init() {
	Register("roles", SeedRoles)
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
}

// SeedRoles creates the two fixed roles.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Full catalog and order management"},
		{Name: models.RoleUser, Description: "Can browse and place orders"},
	}
	for i := range roles {
		if err := db.Where("name = ?", roles[i].Name).
			FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates one admin and two customers. Seeding is idempotent:
// existing usernames are left untouched.
func SeedUsers(db *gorm.DB) error {
	var admin, user models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", models.RoleUser).First(&user).Error; err != nil {
		return err
	}

	users := []struct {
		first, last, username, email, password string
		roles                                  []models.Role
	}{
		{"Ada", "Admin", "admin", "admin@example.com", "admin123", []models.Role{admin, user}},
		{"John", "Doe", "johndoe", "john@example.com", "password", []models.Role{user}},
		{"Jane", "Smith", "janesmith", "jane@example.com", "password", []models.Role{user}},
	}

	for _, u := range users {
		var count int64
		db.Model(&models.User{}).Where("user_name = ?", u.username).Count(&count)
		if count > 0 {
			continue
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		row := models.User{
			FirstName: u.first,
			LastName:  u.last,
			UserName:  u.username,
			Email:     u.email,
			Password:  hash,
			Roles:     u.roles,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog creates three categories and ten products, linked so every
// product belongs to at least one category.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	electronics := models.Category{Name: "Electronics", Description: "Phones, laptops and accessories"}
	clothing := models.Category{Name: "Clothing", Description: "Apparel for all seasons"}
	home := models.Category{Name: "Home & Kitchen", Description: "Everything for the house"}
	for _, c := range []*models.Category{&electronics, &clothing, &home} {
		if err := db.Create(c).Error; err != nil {
			return err
		}
	}

	products := []models.Product{
		{Name: "Smartphone X", Price: 699.99, StockQuantity: 50, Properties: `{"color":"black","storage":"128GB"}`, Categories: []models.Category{electronics}},
		{Name: "Laptop Pro 14", Price: 1499.00, StockQuantity: 20, Properties: `{"ram":"16GB","cpu":"8-core"}`, Categories: []models.Category{electronics}},
		{Name: "Wireless Earbuds", Price: 129.50, StockQuantity: 120, Categories: []models.Category{electronics}},
		{Name: "4K Monitor", Price: 349.00, StockQuantity: 35, Categories: []models.Category{electronics}},
		{Name: "Cotton T-Shirt", Price: 19.99, StockQuantity: 300, Properties: `{"size":"M","color":"white"}`, Categories: []models.Category{clothing}},
		{Name: "Denim Jeans", Price: 59.90, StockQuantity: 150, Categories: []models.Category{clothing}},
		{Name: "Winter Jacket", Price: 119.00, StockQuantity: 60, Categories: []models.Category{clothing}},
		{Name: "Espresso Machine", Price: 249.99, StockQuantity: 25, Categories: []models.Category{home, electronics}},
		{Name: "Chef Knife Set", Price: 89.95, StockQuantity: 80, Categories: []models.Category{home}},
		{Name: "Robot Vacuum", Price: 399.00, StockQuantity: 15, Categories: []models.Category{home, electronics}},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
