package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/infrastructure/imagestore"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
)

// ImagesHandler serves stored attachment bytes under /images/<name>,
// the same path form that ad and avatar references use.
type ImagesHandler struct {
	Store  *imagestore.Store
	Logger *logrus.Logger
}

func NewImagesHandler(store *imagestore.Store, logger *logrus.Logger) *ImagesHandler {
	return &ImagesHandler{Store: store, Logger: logger}
}

func (h *ImagesHandler) Get(c *gin.Context) {
	ref := imagestore.RefPrefix + c.Param("image")
	data, err := h.Store.Read(ref)
	if err != nil {
		writeImageError(c, h.Logger, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func writeImageError(c *gin.Context, logger *logrus.Logger, err error) {
	if errors.Is(err, imagestore.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "image not found", nil)
		return
	}
	logger.WithError(err).Error("image read failed")
	response.Error(c, http.StatusInternalServerError, "attachment operation failed", nil)
}
