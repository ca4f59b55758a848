package config

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
)

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	DataDirOverride = ""
	Verbose = false
	t.Cleanup(viper.Reset)
	return home
}

func TestDefaults(t *testing.T) {
	home := setup(t)
	InitConfig()

	cfg, err := ServiceConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "atree"), cfg.DataDir)
	assert.Equal(t, ".", cfg.DefaultRoot)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, diagram.ResumeOnGlyph, cfg.BlankLinePolicy)

	logger, err := NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestEnvironmentAndFlags(t *testing.T) {
	setup(t)
	t.Setenv("ATREE_BLANK_LINE_POLICY", "stop")
	t.Setenv("ATREE_LOG_LEVEL", "info")
	t.Setenv("ATREE_CACHE_SIZE", "8")
	InitConfig()

	DataDirOverride = "/tmp/elsewhere"
	cfg, err := ServiceConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", cfg.DataDir)
	assert.Equal(t, 8, cfg.CacheSize)
	assert.Equal(t, diagram.StopAtBlank, cfg.BlankLinePolicy)

	logger, err := NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	Verbose = true
	logger, err = NewLogger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestInvalidSettings(t *testing.T) {
	setup(t)
	t.Setenv("ATREE_BLANK_LINE_POLICY", "sometimes")
	t.Setenv("ATREE_LOG_LEVEL", "loud")
	InitConfig()

	_, err := ServiceConfig()
	assert.Error(t, err)

	_, err = NewLogger()
	assert.Error(t, err)
}

func TestInitService(t *testing.T) {
	home := setup(t)
	InitConfig()
	DataDirOverride = filepath.Join(home, "data")

	svc, err := InitService()
	require.NoError(t, err)
	defer svc.Close()
	assert.Equal(t, DataDirOverride, svc.Config.DataDir)
}
