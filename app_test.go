package main

import (
	"bytes"
	"flag"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/memmaker/termcraft/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func TestParseFlagsOverridesConfig(t *testing.T) {
	opts, err := parseFlags([]string{"-scenario", "classic", "-mode", "shaded", "-demo", "-frames", "50", "-width", "80", "-texture", "bricks"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := game.DefaultConfig()
	opts.apply(&cfg)
	assert.Equal(t, "classic", cfg.Loop.Scenario)
	assert.Equal(t, "shaded", cfg.Render.Mode)
	assert.Equal(t, "bricks", cfg.Render.Texture)
	assert.True(t, cfg.Loop.Demo)
	assert.Equal(t, uint64(50), cfg.Loop.MaxFrames)
	assert.Equal(t, 80, cfg.Screen.Width)
	assert.Equal(t, game.DefaultConfig().Screen.Height, cfg.Screen.Height)
	assert.False(t, cfg.Screen.AutoSize)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags([]string{"-h"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, flag.ErrHelp)

	_, err = parseFlags([]string{"-frames", "many"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseFlags([]string{"extra"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadConfigValidatesOverrides(t *testing.T) {
	t.Setenv(game.ConfigEnv, "")
	_, err := loadConfig(options{mode: "wireframe"})
	assert.Error(t, err)

	cfg, err := loadConfig(options{scenario: "classic"})
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.Loop.Scenario)
}

func TestSetupLogging(t *testing.T) {
	defer func(level util.LogLevel, categories util.LogCategory) {
		util.GLOBAL_LOG_LEVEL, util.GLOBAL_LOG_CATEGORIES = level, categories
	}(util.GLOBAL_LOG_LEVEL, util.GLOBAL_LOG_CATEGORIES)

	path := filepath.Join(t.TempDir(), "termcraft.log")
	_, closeLog, err := setupLogging(game.LogConfig{File: path, Level: "debug", Categories: []string{"physics"}})
	require.NoError(t, err)
	assert.NoError(t, closeLog())
	assert.Equal(t, util.LogLevelDebug, util.GLOBAL_LOG_LEVEL)
	assert.Equal(t, util.LogPhysics, util.GLOBAL_LOG_CATEGORIES)
	assert.FileExists(t, path)

	_, _, err = setupLogging(game.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
