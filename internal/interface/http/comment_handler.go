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

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Comment application.CreateCommentInput `json:"comment"`
}

func (h *CommentHandler) List(c *gin.Context) {
	res, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), c.Param("slug"), req.Comment)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, res)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("slug"), c.Param("id")); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
