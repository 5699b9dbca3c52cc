package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ConfigPath)
	assert.Nil(t, cfg.Mode)
	assert.Nil(t, cfg.MaxBinDimension)
	assert.Nil(t, cfg.Padding)
	assert.Nil(t, cfg.AllowRotation)
	assert.Equal(t, 1.0, cfg.PixelsPerUnit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ATLASPACK_CONFIG", "/etc/atlaspack.json")
	t.Setenv("ATLASPACK_MODE", "dynamic")
	t.Setenv("ATLASPACK_MAX_BIN_DIMENSION", "512")
	t.Setenv("ATLASPACK_PADDING", "0")
	t.Setenv("ATLASPACK_ALLOW_ROTATION", "false")
	t.Setenv("ATLASPACK_DXF_PIXELS_PER_UNIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/atlaspack.json", cfg.ConfigPath)
	require.NotNil(t, cfg.Mode)
	assert.Equal(t, model.ModeDynamic, *cfg.Mode)
	require.NotNil(t, cfg.MaxBinDimension)
	assert.Equal(t, 512, *cfg.MaxBinDimension)
	require.NotNil(t, cfg.Padding)
	assert.Equal(t, 0, *cfg.Padding)
	require.NotNil(t, cfg.AllowRotation)
	assert.False(t, *cfg.AllowRotation)
	assert.Equal(t, 2.5, cfg.PixelsPerUnit)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("ATLASPACK_PADDING", "wide")

	_, err := Load()
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Setenv("ATLASPACK_PADDING", "0")
	t.Setenv("ATLASPACK_REPORT_TITLE", "Sprites")

	cfg, err := Load()
	require.NoError(t, err)

	app := model.DefaultAppConfig()
	cfg.Apply(&app)

	assert.Equal(t, 0, app.DefaultPadding, "set variable overrides")
	assert.Equal(t, "Sprites", app.ReportTitle)
	assert.Equal(t, 1024, app.DefaultMaxBinDimension, "unset variable keeps saved value")
	assert.True(t, app.DefaultAllowRotation)
	assert.Equal(t, model.ModeBatch, app.DefaultMode)
}
