package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-classifieds-api/internal/infrastructure/imagestore"
)

func newImagesRouter(t *testing.T) (*gin.Engine, *imagestore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := imagestore.New(t.TempDir(), logger)
	h := NewImagesHandler(store, logger)
	r := gin.New()
	r.GET("/images/:image", h.Get)
	return r, store
}

func TestImagesGet(t *testing.T) {
	r, store := newImagesRouter(t)

	ref, err := store.Put("a.png", []byte("imagebytes"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, ref, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "imagebytes", w.Body.String())
}

func TestImagesGetMissing(t *testing.T) {
	r, _ := newImagesRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/images/nope.png", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
