package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/app/services"
	"github.com/shashiranjanraj/ecommerce/pkg/bind"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/middleware"
	"github.com/shashiranjanraj/ecommerce/pkg/response"
	"github.com/shashiranjanraj/ecommerce/pkg/validate"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// OrderNow places an order for the authenticated user.
func (c *OrderController) OrderNow(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderNowRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	// Item lines are validated individually; the top-level validator does
	// not descend into slices.
	for _, item := range req.Items {
		if errs := validate.Struct(&item); validate.HasErrors(errs) {
			response.ValidationError(w, errs)
			return
		}
	}

	userID := middleware.UserIDFromCtx(r.Context())
	order, err := c.service.OrderNow(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order placed",
		"order_id", order.ID, "user_id", userID, "items", len(order.Items))
	response.Created(w, order)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Customers only see their own orders; admins see all.
	if middleware.RoleFromCtx(r.Context()) != models.RoleAdmin &&
		order.UserID != middleware.UserIDFromCtx(r.Context()) {
		response.Forbidden(w)
		return
	}
	response.Success(w, order)
}

// Index lists the authenticated user's orders; admins may search across all
// users via the query parameters.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	req := dto.OrderSearchRequest{
		Status:    r.URL.Query().Get("status"),
		City:      r.URL.Query().Get("city"),
		StartDate: queryTime(r, "start_date"),
		EndDate:   queryTime(r, "end_date"),
		Months:    queryInt(r, "months", 0),
		Page:      queryInt(r, "page", 1),
		PerPage:   queryInt(r, "per_page", 20),
	}
	if errs := validate.Struct(&req); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if middleware.RoleFromCtx(r.Context()) == models.RoleAdmin {
		req.UserID = uint(queryInt(r, "user_id", 0))
	} else {
		req.UserID = middleware.UserIDFromCtx(r.Context())
	}

	orders, pagination, err := c.service.Search(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// ChangeStatus moves an order to a new status (admin only, enforced by the
// route group).
func (c *OrderController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req dto.ChangeStatusRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.ChangeStatus(r.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order status changed",
		"order_id", order.ID, "status", order.Status)
	response.Success(w, order)
}

// Cancel lets the owner (or an admin) cancel an order.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if middleware.RoleFromCtx(r.Context()) != models.RoleAdmin &&
		order.UserID != middleware.UserIDFromCtx(r.Context()) {
		response.Forbidden(w)
		return
	}

	order, err = c.service.Cancel(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order cancelled", "order_id", order.ID)
	response.Success(w, order)
}
