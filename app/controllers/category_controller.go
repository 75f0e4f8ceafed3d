package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/services"
	"github.com/shashiranjanraj/ecommerce/pkg/bind"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/response"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, categories)
}

func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	category, err := c.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("category created", "category_id", category.ID)
	response.Created(w, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req dto.CategoryRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, category)
}

// Toggle flips the category's soft-delete flag.
func (c *CategoryController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	category, err := c.service.SoftDelete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.HardDelete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("category deleted", "category_id", id)
	response.Message(w, "Category deleted")
}
