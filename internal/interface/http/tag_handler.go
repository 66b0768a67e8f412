package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/conduitapp/conduit-api/internal/application"
	"github.com/conduitapp/conduit-api/pkg/response"
)

type TagHandler struct {
	Svc    *application.TagService
	Logger *logrus.Logger
}

func NewTagHandler(svc *application.TagService, logger *logrus.Logger) *TagHandler {
	return &TagHandler{Svc: svc, Logger: logger}
}

func (h *TagHandler) List(c *gin.Context) {
	res, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
