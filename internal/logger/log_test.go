package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesNameAndError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("registry", &buf).With("room", "abcdef")

	log.Error("Room closed", errors.New("boom"))
	out := buf.String()
	assert.Contains(t, out, "logger=registry")
	assert.Contains(t, out, "room=abcdef")
	assert.Contains(t, out, `msg="Room closed"`)
	assert.Contains(t, out, "error=boom")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })
	var buf bytes.Buffer
	log := NewWithWriter("test", &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	SetLevel("DEBUG")
	log.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")

	SetLevel("error")
	buf.Reset()
	log.Warn("quiet")
	assert.Empty(t, buf.String())

	SetLevel("nonsense")
	log.Info("back to info")
	assert.Contains(t, buf.String(), `msg="back to info"`)
}
