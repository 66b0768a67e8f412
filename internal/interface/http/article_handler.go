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

type ArticleHandler struct {
	Svc    *application.ArticleService
	Logger *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Svc: svc, Logger: logger}
}

type createArticleRequest struct {
	Article application.CreateArticleInput `json:"article"`
}

type updateArticleRequest struct {
	Article application.UpdateArticleInput `json:"article"`
}

func (h *ArticleHandler) List(c *gin.Context) {
	var q application.ListArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ArticleHandler) Feed(c *gin.Context) {
	var q application.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Feed(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Article)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, res)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, validation.ToFieldErrors(err))
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), c.Param("slug"), req.Article)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("slug")); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *ArticleHandler) Favorite(c *gin.Context) {
	res, err := h.Svc.Favorite(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	res, err := h.Svc.Unfavorite(c.Request.Context(), middleware.UserID(c), c.Param("slug"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
