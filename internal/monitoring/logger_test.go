package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("test message")
	assert.True(t, called, "custom logger was not called")

	called = false
	SetLogger(nil)
	Logf("test message")
	assert.False(t, called, "no-op logger should not have triggered callback")
}

func TestSetDebugLogger(t *testing.T) {
	original := Debugf
	defer func() { Debugf = original }()

	var got string
	SetDebugLogger(func(format string, v ...interface{}) { got = format })
	Debugf("frame %d", 1)
	assert.Equal(t, "frame %d", got)

	SetDebugLogger(nil)
	assert.NotPanics(t, func() { Debugf("frame %d", 2) })
}

func TestLogf_Default(t *testing.T) {
	require.NotNil(t, Logf)
	require.NotNil(t, Debugf)
}

func TestSetup(t *testing.T) {
	origLevel := logrus.GetLevel()
	origFormatter := logrus.StandardLogger().Formatter
	origOut := logrus.StandardLogger().Out
	defer func() {
		logrus.SetLevel(origLevel)
		logrus.SetFormatter(origFormatter)
		logrus.SetOutput(origOut)
	}()

	var buf bytes.Buffer
	Setup(SetupParams{Level: "warn", JSON: true, Output: &buf})

	logrus.Infof("hidden")
	assert.Zero(t, buf.Len(), "info should be filtered at warn level")

	logrus.Warnf("rep counted: %d", 3)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rep counted: 3", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
}

func TestSetup_File(t *testing.T) {
	origOut := logrus.StandardLogger().Out
	origFormatter := logrus.StandardLogger().Formatter
	defer func() {
		logrus.SetOutput(origOut)
		logrus.SetFormatter(origFormatter)
	}()

	var stdout bytes.Buffer
	path := filepath.Join(t.TempDir(), "formcheck")
	Setup(SetupParams{Level: "info", Output: &stdout, File: path, ToStdout: true})

	logrus.Infof("session started")

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
	assert.Contains(t, stdout.String(), "session started")
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestCombinedWriter(t *testing.T) {
	var a, b bytes.Buffer
	errDisk := errors.New("disk full")

	cw := NewCombinedWriter(&a, failingWriter{errDisk}, &b)
	n, err := cw.Write([]byte("rep"))

	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, "rep", a.String())
	assert.Equal(t, "rep", b.String(), "later writers still receive data")
}

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"trace":   logrus.TraceLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"info":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"chatty":  logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), "GetLevel(%q)", in)
	}
}
