package monitoring

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logf is the package-level diagnostic logger for rep counts, phase changes
// and session lifecycle. It defaults to logrus at info level but may be
// replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = logrus.Infof

// Debugf carries per-frame chatter (rejected transitions, occluded frames).
// It defaults to logrus at debug level, so it is silent unless Setup raised
// the level.
var Debugf func(format string, v ...interface{}) = logrus.Debugf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebugLogger replaces the per-frame logger. Passing nil will set a no-op
// logger.
func SetDebugLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = f
}

// SetupParams configures the process-wide logrus logger.
type SetupParams struct {
	Level  string
	JSON   bool
	Output io.Writer // defaults to stdout

	// File, when set, sends logs to a size-rotated file. With ToStdout the
	// logs go to both.
	File     string
	ToStdout bool
}

// Setup configures the standard logrus logger that Logf and Debugf write to.
func Setup(params SetupParams) {
	if params.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.Level))

	out := params.Output
	if out == nil {
		out = os.Stdout
	}
	if params.File == "" {
		logrus.SetOutput(out)
		return
	}

	file := params.File
	if !strings.HasSuffix(file, ".log") {
		file += ".log"
	}
	rotating := &lumberjack.Logger{
		Filename: file,
		MaxSize:  50, // megabytes
		Compress: true,
	}
	if params.ToStdout {
		logrus.SetOutput(NewCombinedWriter(out, rotating))
		return
	}
	logrus.SetOutput(rotating)
}

// CombinedWriter writes to every writer and keeps going past failures,
// returning their combined error.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n = max(n, written)
	}
	return n, err
}

// GetLevel maps a level name to a logrus level. Unknown names map to info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
