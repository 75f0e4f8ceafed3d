package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/cache"
	"github.com/shashiranjanraj/ecommerce/pkg/orm"
)

const (
	categoryListKey = "categories:list"
	categoryListTTL = 5 * time.Minute
)

// CategoryService manages the product categories.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Create inserts a new category. Name uniqueness is checked case-insensitively
// before staging the insert, so a duplicate comes back as ErrConflict rather
// than a store-level constraint error.
func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	uow := orm.New(s.db)
	categories := orm.RepositoryFor[models.Category](uow)

	taken, err := categories.Exists(ctx, orm.Eq("LOWER(name)", strings.ToLower(req.Name)))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("category %q: %w", req.Name, ErrConflict)
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	categories.Add(category)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	_ = cache.Forget(categoryListKey)
	return category, nil
}

// Get returns a category with its products eager-loaded, or ErrNotFound.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	categories := orm.RepositoryFor[models.Category](orm.New(s.db))

	category, err := categories.First(ctx, orm.Eq("id", id), orm.WithIncludes("Products"))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return category, nil
}

// List returns all visible categories ordered by name. The listing is cached
// briefly; every category mutation drops the cached copy.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if cache.Get(categoryListKey, &cached) {
		return cached, nil
	}

	categories := orm.RepositoryFor[models.Category](orm.New(s.db))
	list, err := categories.GetAll(ctx, orm.All(), orm.OrderBy("name ASC"))
	if err != nil {
		return nil, err
	}
	_ = cache.Set(categoryListKey, list, categoryListTTL)
	return list, nil
}

// Count returns the number of visible categories.
func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	categories := orm.RepositoryFor[models.Category](orm.New(s.db))
	return categories.Count(ctx, orm.All())
}

// Update renames or redescribes a category. The new name must not collide
// with another category (case-insensitive).
func (s *CategoryService) Update(ctx context.Context, id uint, req dto.CategoryRequest) (*models.Category, error) {
	uow := orm.New(s.db)
	categories := orm.RepositoryFor[models.Category](uow)

	category, err := categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	existing, err := categories.First(ctx, orm.Eq("LOWER(name)", strings.ToLower(req.Name)))
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, fmt.Errorf("category %q: %w", req.Name, ErrConflict)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Touch()
	categories.Update(category)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	_ = cache.Forget(categoryListKey)
	return category, nil
}

// SoftDelete toggles the category's deleted flag: a deleted category is
// restored, a visible one is hidden. The row is looked up with the deleted
// scope disabled so both directions work.
func (s *CategoryService) SoftDelete(ctx context.Context, id uint) (*models.Category, error) {
	uow := orm.New(s.db)
	categories := orm.RepositoryFor[models.Category](uow)

	category, err := categories.First(ctx, orm.Eq("id", id), orm.WithDeleted())
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	category.IsDeleted = !category.IsDeleted
	category.Touch()
	categories.Update(category)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("soft delete category: %w", err)
	}
	_ = cache.Forget(categoryListKey)
	return category, nil
}

// HardDelete physically removes the category and its product links in one
// transaction. The link rows are staged explicitly so the commit's
// affected-row count covers them.
func (s *CategoryService) HardDelete(ctx context.Context, id uint) error {
	uow := orm.New(s.db)
	categories := orm.RepositoryFor[models.Category](uow)
	links := orm.RepositoryFor[models.ProductCategory](uow)

	category, err := categories.First(ctx, orm.Eq("id", id), orm.WithDeleted())
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	linkRows, err := links.GetAll(ctx, orm.Eq("category_id", id))
	if err != nil {
		return err
	}
	for i := range linkRows {
		links.Remove(&linkRows[i])
	}
	categories.Remove(category)

	if _, err := uow.Save(ctx); err != nil {
		return fmt.Errorf("hard delete category: %w", err)
	}
	_ = cache.Forget(categoryListKey)
	return nil
}
