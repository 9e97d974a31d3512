package util

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLogFiltersByLevelAndCategory(t *testing.T) {
	oldLevel, oldCategories := GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES
	defer func() {
		GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES = oldLevel, oldCategories
		SetLogOutput(bytes.NewBuffer(nil), "")
	}()

	var buf bytes.Buffer
	SetLogOutput(&buf, "abc")
	GLOBAL_LOG_LEVEL = LogLevelInfo
	GLOBAL_LOG_CATEGORIES = LogVoxel | LogSystem

	LogVoxelInfo("placed block")
	LogVoxelDebug("hidden debug")
	LogPhysicsInfo("hidden category")
	LogSystemError("boom")

	out := buf.String()
	assert.Contains(t, out, "[abc] ")
	assert.Contains(t, out, "INFO voxel: placed block")
	assert.Contains(t, out, "ERROR system: boom")
	assert.NotContains(t, out, "hidden")
}

func TestParseLogSettings(t *testing.T) {
	lvl, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, lvl)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)

	cats, err := ParseLogCategories([]string{"voxel", "Render"})
	require.NoError(t, err)
	assert.Equal(t, LogVoxel|LogRender, cats)

	cats, err = ParseLogCategories(nil)
	require.NoError(t, err)
	assert.Equal(t, LogAll, cats)

	_, err = ParseLogCategories([]string{"network"})
	assert.Error(t, err)
}
