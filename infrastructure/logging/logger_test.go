package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_automation/infrastructure/config"
)

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggerConfig{Level: "debug", Format: "text"}, &buf)

	Component(logger, "wait").Debug("polling")

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, "component=wait")
	assert.Contains(t, out, `msg=polling`)
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggerConfig{Level: "info", Format: "json"}, &buf)

	logger.WithField("scenario", "register").Info("passed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "passed", entry["msg"])
	assert.Equal(t, "register", entry["scenario"])
}

func TestNewLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	logger := newLogger(config.LoggerConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger := newLogger(config.LoggerConfig{Level: "info", File: path, MaxSize: 1}, &bytes.Buffer{})

	logger.Info("to disk")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to disk")
}
