package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/services"
	"github.com/shashiranjanraj/ecommerce/pkg/bind"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/response"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	if categoryID := queryInt(r, "category_id", 0); categoryID > 0 {
		products, err := c.service.ByCategory(r.Context(), uint(categoryID))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.Success(w, products)
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	products, pagination, err := c.service.List(r.Context(), page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Paginated(w, products, pagination)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("product created", "product_id", product.ID)
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req dto.ProductRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, product)
}

// Toggle flips the product's soft-delete flag.
func (c *ProductController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.service.SoftDelete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.HardDelete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("product deleted", "product_id", id)
	response.Message(w, "Product deleted")
}

// UploadImage accepts a multipart form with an "image" field and stores it
// on the configured disk.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer file.Close()

	product, err := c.service.UploadImage(r.Context(), id, header.Filename, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("product image uploaded", "product_id", id)
	response.Success(w, product)
}
