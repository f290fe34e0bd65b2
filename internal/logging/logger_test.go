package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelInfo)
	})
	return buf
}

func TestErrorIncludesErrorText(t *testing.T) {
	buf := capture(t)
	Error("reward failed", errors.New("boom"), Fields{"reward": "script"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "reward failed", line["msg"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "script", line["reward"])
}

func TestLevelFilters(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelError)
	Info("hidden", nil)
	Debug("hidden", nil)
	assert.Empty(t, buf.String())

	SetLevel(LevelDebug)
	Debug("shown", nil)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
