package config

import (
	"rapidaid-dashboard-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("PORT", "")
	t.Setenv("REGION_BBOX", "")
	t.Setenv("MAP_LINK_HOSTS", "")
	t.Setenv("SHORT_LINK_HOSTS", "")
	t.Setenv("LINK_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, domain.DefaultBoundingBox, cfg.Region)
	assert.Equal(t, 24*time.Hour, cfg.LinkCacheTTL)
	assert.Empty(t, cfg.MapLinkHosts)
	assert.Empty(t, cfg.ShortLinkHosts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/rapidaid")
	t.Setenv("PORT", "9090")
	t.Setenv("REGION_BBOX", "51.2,51.8,-0.6,0.4")
	t.Setenv("MAP_LINK_HOSTS", "maps.example.com, ,google.com/maps")
	t.Setenv("SHORT_LINK_HOSTS", "maps.app.goo.gl,links.example.com/s")
	t.Setenv("LINK_CACHE_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, domain.BoundingBox{MinLat: 51.2, MaxLat: 51.8, MinLng: -0.6, MaxLng: 0.4}, cfg.Region)
	assert.Equal(t, []string{"maps.example.com", "google.com/maps"}, cfg.MapLinkHosts)
	assert.Equal(t, []string{"maps.app.goo.gl", "links.example.com/s"}, cfg.ShortLinkHosts)
	assert.Equal(t, 15*time.Minute, cfg.LinkCacheTTL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORE": "postgres", "DATABASE_URL": ""}},
		{"unknown store", map[string]string{"STORE": "sqlite"}},
		{"bad bbox", map[string]string{"STORE": "memory", "REGION_BBOX": "1,2"}},
		{"bad ttl", map[string]string{"STORE": "memory", "LINK_CACHE_TTL": "soon"}},
		{"negative ttl", map[string]string{"STORE": "memory", "LINK_CACHE_TTL": "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REGION_BBOX", "")
			t.Setenv("LINK_CACHE_TTL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
