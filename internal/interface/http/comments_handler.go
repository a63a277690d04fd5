package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/application"
	"github.com/oksasatya/go-classifieds-api/internal/interface/middleware"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
	"github.com/oksasatya/go-classifieds-api/pkg/validation"
)

type CommentsHandler struct {
	Svc    *application.CommentsService
	Logger *logrus.Logger
}

func NewCommentsHandler(svc *application.CommentsService, logger *logrus.Logger) *CommentsHandler {
	return &CommentsHandler{Svc: svc, Logger: logger}
}

func commentIDs(c *gin.Context) (adID, commentID int, ok bool) {
	adID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ad id", nil)
		return 0, 0, false
	}
	commentID, err = strconv.Atoi(c.Param("commentId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid comment id", nil)
		return 0, 0, false
	}
	return adID, commentID, true
}

func (h *CommentsHandler) List(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ad id", nil)
		return
	}
	comments, err := h.Svc.List(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments")
}

func (h *CommentsHandler) Add(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ad id", nil)
		return
	}
	var props application.CreateOrUpdateComment
	if err := c.ShouldBindJSON(&props); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comment, err := h.Svc.Add(c.Request.Context(), email, id, props)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment added")
}

func (h *CommentsHandler) Update(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	adID, commentID, ok := commentIDs(c)
	if !ok {
		return
	}
	var props application.CreateOrUpdateComment
	if err := c.ShouldBindJSON(&props); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comment, err := h.Svc.Update(c.Request.Context(), email, props, commentID, adID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, comment, "comment updated")
}

func (h *CommentsHandler) Remove(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	adID, commentID, ok := commentIDs(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), email, adID, commentID); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
