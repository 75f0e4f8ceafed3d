package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
)

func TestProductCreateLinksCategories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProductService(db)

	c1 := createCategory(t, db, "Electronics")
	c2 := createCategory(t, db, "Home")

	p, err := svc.Create(ctx, dto.ProductRequest{
		Name:          "Desk Lamp",
		Price:         24.5,
		StockQuantity: 3,
		CategoryIDs:   []uint{c1.ID, c2.ID},
	})
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 2)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newTestDB(t))

	_, err := svc.Create(ctx, dto.ProductRequest{
		Name:        "Orphan",
		Price:       1,
		CategoryIDs: []uint{777},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductUpdateReconcilesLinks(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProductService(db)

	c1 := createCategory(t, db, "Old")
	c2 := createCategory(t, db, "New")

	p, err := svc.Create(ctx, dto.ProductRequest{
		Name: "Chair", Price: 50, CategoryIDs: []uint{c1.ID},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, dto.ProductRequest{
		Name: "Chair Deluxe", Price: 60, CategoryIDs: []uint{c2.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "Chair Deluxe", updated.Name)
	require.Equal(t, 60.0, updated.Price)
	require.Len(t, updated.Categories, 1)
	require.Equal(t, c2.ID, updated.Categories[0].ID)

	var links []models.ProductCategory
	require.NoError(t, db.Where("product_id = ?", p.ID).Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, c2.ID, links[0].CategoryID)
}

func TestProductSoftDeleteToggles(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProductService(db)
	p := createProduct(t, db, "Blinker", 5)

	hidden, err := svc.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, hidden.IsDeleted)

	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)

	restored, err := svc.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, restored.IsDeleted)
}

func TestProductListPaginates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProductService(db)
	for _, name := range []string{"a", "b", "c"} {
		createProduct(t, db, name, 1)
	}

	rows, page, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(3), page.Total)
}

func TestProductByCategory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProductService(db)

	c := createCategory(t, db, "Linked")
	in := createProduct(t, db, "in", 1)
	createProduct(t, db, "out", 1)
	hidden := createProduct(t, db, "hidden", 1)
	require.NoError(t, db.Model(hidden).Update("is_deleted", true).Error)
	require.NoError(t, db.Create(&models.ProductCategory{ProductID: in.ID, CategoryID: c.ID}).Error)
	require.NoError(t, db.Create(&models.ProductCategory{ProductID: hidden.ID, CategoryID: c.ID}).Error)

	// The association load bypasses the default scope, so the soft-deleted
	// product must still be filtered out of the result.
	got, err := svc.ByCategory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "in", got[0].Name)

	// An unknown category is an empty listing, not an error.
	none, err := svc.ByCategory(ctx, 9999)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestProductHardDeleteKeepsOrderHistory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProductService(db)

	u := createUser(t, db, "buyer")
	p := createProduct(t, db, "Discontinued", 15)
	order := &models.Order{
		UserID: u.ID,
		Status: models.OrderDelivered,
		Items:  []models.OrderItem{{ProductID: p.ID, Quantity: 2, UnitPrice: 15}},
	}
	require.NoError(t, db.Create(order).Error)

	require.NoError(t, svc.HardDelete(ctx, p.ID))

	_, err := svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The snapshot line survives the product's removal.
	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 15.0, items[0].UnitPrice)
}
