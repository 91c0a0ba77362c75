package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"exchange-rates/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithOutput("debug", &buf)

	l.WithField("base", "EUR").Debug("rates synced")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rates synced", line["message"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "EUR", line["base"])
	assert.Contains(t, line, "timestamp")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := logger.NewWithOutput("chatty", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
