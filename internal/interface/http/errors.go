package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/application"
	"github.com/oksasatya/go-classifieds-api/internal/infrastructure/imagestore"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
)

// writeServiceError maps the service failure classes onto status
// codes: not-found 404, forbidden 403, bad filename 400, attachment
// I/O 500. Anything else is an opaque 500.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var attErr *imagestore.AttachmentError
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "resource not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "not author or administrator", nil)
	case errors.Is(err, imagestore.ErrNoExtension):
		response.Error(c, http.StatusBadRequest, "filename has no extension", nil)
	case errors.As(err, &attErr):
		logger.WithError(err).Error("attachment operation failed")
		response.Error(c, http.StatusInternalServerError, "attachment operation failed", nil)
	default:
		logger.WithError(err).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
