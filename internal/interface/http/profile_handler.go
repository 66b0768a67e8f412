package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/conduitapp/conduit-api/internal/application"
	"github.com/conduitapp/conduit-api/internal/interface/middleware"
	"github.com/conduitapp/conduit-api/pkg/response"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("username"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	res, err := h.Svc.Follow(c.Request.Context(), middleware.UserID(c), c.Param("username"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	res, err := h.Svc.Unfollow(c.Request.Context(), middleware.UserID(c), c.Param("username"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
