package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, MkDir(dir))
	require.NoError(t, MkDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "tmp_a.wav"), filepath.Join(dir, "a.wav")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	require.NoError(t, MoveFile(src, dst))
	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestSetupLoggingJSON(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	var buf bytes.Buffer
	require.NoError(t, SetupLogging(&buf, "debug", true))
	logrus.WithField("path", "a.mp3").Debug("Loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Loaded", line["msg"])
	assert.Equal(t, "a.mp3", line["path"])
	assert.Equal(t, "debug", line["level"])

	assert.Error(t, SetupLogging(&buf, "loud", false))
}

func TestWithMaxLevel(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)

	quiet := WithMaxLevel(base.WithField("playlist", "demo"), logrus.WarnLevel)
	quiet.Info("hidden")
	assert.Empty(t, buf.String())

	quiet.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "playlist=demo")
	assert.Equal(t, logrus.DebugLevel, base.GetLevel())
}

func TestDiscardLogger(t *testing.T) {
	l := DiscardLogger()
	l.Error("nothing")
	assert.NotNil(t, l.Out)
}
