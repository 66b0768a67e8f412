package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/conduitapp/conduit-api/internal/application"
	"github.com/conduitapp/conduit-api/internal/interface/middleware"
	"github.com/conduitapp/conduit-api/pkg/response"
	"github.com/conduitapp/conduit-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// envelope wrappers matching the {"user": {...}} request bodies
type registerRequest struct {
	User application.RegisterInput `json:"user"`
}

type loginRequest struct {
	User application.LoginInput `json:"user"`
}

type updateUserRequest struct {
	User application.UpdateUserInput `json:"user"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), req.User)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, res)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.User)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) Current(c *gin.Context) {
	res, err := h.Svc.Current(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), req.User)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
