package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$04$abcdefghijklmnopqrstuu")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "America/Sao_Paulo", cfg.AppTimezone)
	assert.Equal(t, 30*time.Second, cfg.CatalogSnapshotTTL)
	assert.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, "*/15 * * * *", cfg.DashboardWarmupCron)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresAdminHash(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestInTestMode(t *testing.T) {
	t.Setenv("RENT_TEST_MODE", "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv("RENT_TEST_MODE", "")
	RefreshTestMode()
	assert.False(t, InTestMode())
}
