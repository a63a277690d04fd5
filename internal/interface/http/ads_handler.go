package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/application"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
	"github.com/oksasatya/go-classifieds-api/pkg/validation"
)

type AdsHandler struct {
	Svc    *application.AdsService
	Logger *logrus.Logger
}

func NewAdsHandler(svc *application.AdsService, logger *logrus.Logger) *AdsHandler {
	return &AdsHandler{Svc: svc, Logger: logger}
}

func adID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ad id", nil)
		return 0, false
	}
	return id, true
}

func (h *AdsHandler) List(c *gin.Context) {
	ads, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ads, "ads")
}

// Create takes a multipart form: a "properties" JSON part with the ad
// fields and an "image" file part.
func (h *AdsHandler) Create(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)

	var props application.CreateOrUpdateAd
	if err := binding.JSON.BindBody([]byte(c.PostForm("properties")), &props); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid properties", validation.ToDetails(err))
		return
	}
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

	ad, err := h.Svc.Create(c.Request.Context(), email, props, data, filename)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, ad, "ad created")
}

func (h *AdsHandler) Get(c *gin.Context) {
	id, ok := adID(c)
	if !ok {
		return
	}
	ad, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ad, "ad")
}

func (h *AdsHandler) Update(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	id, ok := adID(c)
	if !ok {
		return
	}
	var props application.CreateOrUpdateAd
	if err := c.ShouldBindJSON(&props); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ad, err := h.Svc.Update(c.Request.Context(), email, id, props)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ad, "ad updated")
}

func (h *AdsHandler) Remove(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	id, ok := adID(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), email, id); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdsHandler) ListMine(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	ads, err := h.Svc.ListMine(c.Request.Context(), email)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ads, "my ads")
}

// ReplaceImage swaps the ad image and answers with the stored bytes.
func (h *AdsHandler) ReplaceImage(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	id, ok := adID(c)
	if !ok {
		return
	}
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
	stored, err := h.Svc.ReplaceImage(c.Request.Context(), email, id, data, filename)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", stored)
}

func (h *AdsHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
