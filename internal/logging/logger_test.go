package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
		"fatal":   logrus.FatalLevel,
		"PANIC":   logrus.PanicLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestJSONOutputWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "debug", true)
	WithComponent(l, "dispatch").WithField("operation", "RemoveProjectMutation").Debug("sent")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatch", entry["component"])
	assert.Equal(t, "RemoveProjectMutation", entry["operation"])
	assert.Equal(t, "sent", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "warn", false)
	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
