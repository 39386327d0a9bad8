package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rgqview.log")

	logger, closer, err := InitLogger("rgqview", path, false)
	require.NoError(t, err)
	logger.Info("section revealed", "section", "Tutorial 1")
	logger.Debug("hidden at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"section revealed"`)
	assert.Contains(t, string(data), `"section":"Tutorial 1"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNewDebugIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("loading")
	assert.Contains(t, buf.String(), `"source"`)
}

func TestRotateIfNeeded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), maxLogSize), 0644))
	require.NoError(t, os.WriteFile(path+".1", []byte("older"), 0644))

	require.NoError(t, rotateIfNeeded(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	rotated, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "older", string(rotated))
	info, err := os.Stat(path + ".1")
	require.NoError(t, err)
	assert.EqualValues(t, maxLogSize, info.Size())
}

func TestRotateIfNeededSmallFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("small"), 0644))

	require.NoError(t, rotateIfNeeded(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRotateIfNeededReportsBackupFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), maxLogSize), 0644))
	// a non-empty directory where the oldest backup lives cannot be removed
	require.NoError(t, os.MkdirAll(filepath.Join(path+".3", "keep"), 0755))

	err := rotateIfNeeded(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove oldest log backup")

	_, err = os.Stat(path)
	assert.NoError(t, err, "current log must stay in place")
}
