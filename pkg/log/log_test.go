package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	for _, level := range Levels {
		_, err := parseLevel(level)
		assert.NoError(t, err, level)
	}
	_, err := parseLevel("verbose")
	assert.Error(t, err)

	_, err = NewLogger("verbose", false)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, json := range []bool{false, true} {
		logger, err := NewLogger("warn", json)
		assert.NoError(t, err)
		assert.NotNil(t, logger.With("format", json))
	}
}

func TestLoggerWith(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.With("component", "codec").Debugf("skipping field %s", "hash")
	logger.Warning("plain")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "skipping field hash", entries[0].Message)
	assert.Equal(t, "codec", entries[0].ContextMap()["component"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Errorf("discarded %d", 1)
	assert.NoError(t, logger.Sync())
}
