package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/services"
	"github.com/shashiranjanraj/ecommerce/pkg/bind"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/middleware"
	"github.com/shashiranjanraj/ecommerce/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user registered", "user_id", user.ID)
	response.Created(w, user)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tokens, err := c.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user logged in", "user_id", tokens.User.ID)
	response.Success(w, tokens)
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.Profile(r.Context(), middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, user)
}
