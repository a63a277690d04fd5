package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/images", cfg.ImagesDir)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Equal(t, "ads", cfg.ESAdsIndex)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("IMAGES_DIR", "/var/lib/images")
	t.Setenv("JWT_ACCESS_TTL", "30m")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/lib/images", cfg.ImagesDir)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "ads")

	cfg := Load()
	assert.Equal(t, "postgres://postgres:postgres@db:5432/ads?sslmode=disable", cfg.PostgresDSN())
}

func TestSplitLists(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200, http://es2:9200 ,")

	cfg := Load()
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}
