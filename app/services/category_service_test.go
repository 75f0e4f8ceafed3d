package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
)

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.Create(ctx, dto.CategoryRequest{Name: "Electronics"})
	require.NoError(t, err)

	// Uniqueness is case-insensitive.
	_, err = svc.Create(ctx, dto.CategoryRequest{Name: "ELECTRONICS"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCategoryUpdateAllowsKeepingOwnName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCategoryService(db)

	c, err := svc.Create(ctx, dto.CategoryRequest{Name: "Books"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, dto.CategoryRequest{Name: "Music"})
	require.NoError(t, err)

	// Renaming to its own name (different case) is not a conflict.
	updated, err := svc.Update(ctx, c.ID, dto.CategoryRequest{Name: "BOOKS", Description: "printed"})
	require.NoError(t, err)
	require.Equal(t, "BOOKS", updated.Name)

	// Renaming onto another category's name is.
	_, err = svc.Update(ctx, other.ID, dto.CategoryRequest{Name: "books"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCategorySoftDeleteToggles(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCategoryService(db)
	c := createCategory(t, db, "Seasonal")

	hidden, err := svc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, hidden.IsDeleted)

	// Hidden categories drop out of the default listing.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// A second toggle restores it.
	restored, err := svc.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, restored.IsDeleted)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestCategoryHardDeleteRemovesLinks(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCategoryService(db)

	c := createCategory(t, db, "Gadgets")
	p := createProduct(t, db, "Widget", 9.99)
	require.NoError(t, db.Create(&models.ProductCategory{ProductID: p.ID, CategoryID: c.ID}).Error)

	require.NoError(t, svc.HardDelete(ctx, c.ID))

	var links int64
	require.NoError(t, db.Model(&models.ProductCategory{}).Where("category_id = ?", c.ID).Count(&links).Error)
	require.Zero(t, links)

	// The product itself survives.
	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.Equal(t, int64(1), products)
}

func TestCategoryGetMissing(t *testing.T) {
	svc := NewCategoryService(newTestDB(t))
	_, err := svc.Get(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}
