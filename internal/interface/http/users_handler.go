package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/application"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
	"github.com/oksasatya/go-classifieds-api/pkg/validation"
)

type UsersHandler struct {
	Svc    *application.UsersService
	Logger *logrus.Logger
}

func NewUsersHandler(svc *application.UsersService, logger *logrus.Logger) *UsersHandler {
	return &UsersHandler{Svc: svc, Logger: logger}
}

type setPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8,max=16"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=16"`
}

// readUpload pulls the bytes and original filename out of a multipart
// file header.
func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

func (h *UsersHandler) Me(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	u, err := h.Svc.Get(c.Request.Context(), email)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile")
}

func (h *UsersHandler) UpdateMe(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	var req application.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	out, err := h.Svc.UpdateProfile(c.Request.Context(), email, req)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "profile updated")
}

func (h *UsersHandler) SetPassword(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ok, err := h.Svc.SetPassword(c.Request.Context(), email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if !ok {
		response.Error(c, http.StatusForbidden, "current password does not match", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, "password updated")
}

func (h *UsersHandler) UpdateImage(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	data, filename, err := readUpload(fh)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cannot read upload", nil)
		return
	}
	ref, err := h.Svc.ReplaceAvatar(c.Request.Context(), email, data, filename)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image": ref}, "avatar updated")
}

func (h *UsersHandler) DeleteMe(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	u, err := h.Svc.Get(c.Request.Context(), email)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), email, u.ID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "account deleted")
}
