package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/cache"
	"github.com/shashiranjanraj/ecommerce/pkg/collection"
	"github.com/shashiranjanraj/ecommerce/pkg/orm"
	"github.com/shashiranjanraj/ecommerce/pkg/storage"
)

const (
	productFirstPageKey = "products:list:first"
	productListTTL      = 2 * time.Minute
	defaultPerPage      = 20
)

type productPage struct {
	Rows       []models.Product `json:"rows"`
	Pagination orm.Pagination   `json:"pagination"`
}

// ProductService manages the product catalog.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// loadCategories resolves the requested category IDs, failing with
// ErrNotFound when any of them does not exist.
func loadCategories(ctx context.Context, uow *orm.UnitOfWork, ids []uint) ([]models.Category, error) {
	categories := orm.RepositoryFor[models.Category](uow)

	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		category, err := categories.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		out = append(out, *category)
	}
	return out, nil
}

// Create inserts a product and links it to the given categories. The
// association rows are written by the same commit as the product itself.
func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*models.Product, error) {
	uow := orm.New(s.db)
	products := orm.RepositoryFor[models.Product](uow)

	cats, err := loadCategories(ctx, uow, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Properties:    req.Properties,
		ImageURL:      req.ImageURL,
		Categories:    cats,
	}
	products.Add(product)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	_ = cache.Forget(productFirstPageKey)
	return product, nil
}

// Get returns a product with its categories, or ErrNotFound.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	products := orm.RepositoryFor[models.Product](orm.New(s.db))

	product, err := products.First(ctx, orm.Eq("id", id), orm.WithIncludes("Categories"))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, nil
}

// List returns one page of visible products with their categories. Only the
// default first page is cached; it is the page anonymous browsing hits.
func (s *ProductService) List(ctx context.Context, page, perPage int) ([]models.Product, orm.Pagination, error) {
	firstPage := page <= 1 && perPage == defaultPerPage

	if firstPage {
		var cached productPage
		if cache.Get(productFirstPageKey, &cached) {
			return cached.Rows, cached.Pagination, nil
		}
	}

	products := orm.RepositoryFor[models.Product](orm.New(s.db))
	rows, pagination, err := products.GetPage(ctx, orm.All(), page, perPage,
		orm.WithIncludes("Categories"), orm.OrderBy("name ASC"))
	if err != nil {
		return nil, orm.Pagination{}, err
	}

	if firstPage {
		_ = cache.Set(productFirstPageKey, productPage{Rows: rows, Pagination: pagination}, productListTTL)
	}
	return rows, pagination, nil
}

// ByCategory returns visible products linked to the given category, loaded
// in one read through the many2many association. The preload runs outside
// the repository's soft-delete scope, so flagged products are filtered here.
func (s *ProductService) ByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	categories := orm.RepositoryFor[models.Category](orm.New(s.db))

	category, err := categories.First(ctx, orm.Eq("id", categoryID), orm.WithIncludes("Products"))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return []models.Product{}, nil
	}

	visible := collection.Filter(category.Products, func(p models.Product) bool {
		return !p.IsDeleted
	})
	if visible == nil {
		visible = []models.Product{}
	}
	return visible, nil
}

// Update rewrites the product's fields and reconciles its category links:
// stale links are staged for removal, new ones for insert, and everything
// lands in one commit.
func (s *ProductService) Update(ctx context.Context, id uint, req dto.ProductRequest) (*models.Product, error) {
	uow := orm.New(s.db)
	products := orm.RepositoryFor[models.Product](uow)
	links := orm.RepositoryFor[models.ProductCategory](uow)

	product, err := products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	if _, err := loadCategories(ctx, uow, req.CategoryIDs); err != nil {
		return nil, err
	}

	current, err := links.GetAll(ctx, orm.Eq("product_id", id))
	if err != nil {
		return nil, err
	}

	haveIDs := collection.Map(current, func(l models.ProductCategory) uint { return l.CategoryID })
	for i := range current {
		cid := current[i].CategoryID
		if !collection.Contains(req.CategoryIDs, func(want uint) bool { return want == cid }) {
			links.Remove(&current[i])
		}
	}
	for _, cid := range req.CategoryIDs {
		if !collection.Contains(haveIDs, func(have uint) bool { return have == cid }) {
			links.Add(&models.ProductCategory{ProductID: id, CategoryID: cid})
		}
	}

	product.Name = req.Name
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	product.Properties = req.Properties
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}
	product.Categories = nil // links are reconciled explicitly above
	product.Touch()
	products.Update(product)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	_ = cache.Forget(productFirstPageKey)
	return s.Get(ctx, id)
}

// SoftDelete toggles the product's deleted flag.
func (s *ProductService) SoftDelete(ctx context.Context, id uint) (*models.Product, error) {
	uow := orm.New(s.db)
	products := orm.RepositoryFor[models.Product](uow)

	product, err := products.First(ctx, orm.Eq("id", id), orm.WithDeleted())
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	product.IsDeleted = !product.IsDeleted
	product.Touch()
	products.Update(product)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("soft delete product: %w", err)
	}
	_ = cache.Forget(productFirstPageKey)
	return product, nil
}

// HardDelete removes the product and its category links. Order items keep
// their snapshot rows, so order history survives the removal.
func (s *ProductService) HardDelete(ctx context.Context, id uint) error {
	uow := orm.New(s.db)
	products := orm.RepositoryFor[models.Product](uow)
	links := orm.RepositoryFor[models.ProductCategory](uow)

	product, err := products.First(ctx, orm.Eq("id", id), orm.WithDeleted())
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	linkRows, err := links.GetAll(ctx, orm.Eq("product_id", id))
	if err != nil {
		return err
	}
	for i := range linkRows {
		links.Remove(&linkRows[i])
	}
	products.Remove(product)

	if _, err := uow.Save(ctx); err != nil {
		return fmt.Errorf("hard delete product: %w", err)
	}
	_ = cache.Forget(productFirstPageKey)
	return nil
}

// UploadImage stores the image on the configured disk under
// products/<id>/<filename> and records its public URL on the product.
func (s *ProductService) UploadImage(ctx context.Context, id uint, filename string, r io.Reader) (*models.Product, error) {
	uow := orm.New(s.db)
	products := orm.RepositoryFor[models.Product](uow)

	product, err := products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	key := path.Join("products", fmt.Sprint(id), path.Base(filename))
	if err := storage.PutStream(key, r); err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}

	product.ImageURL = storage.URL(key)
	product.Touch()
	products.Update(product)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("save product image: %w", err)
	}
	_ = cache.Forget(productFirstPageKey)
	return product, nil
}
