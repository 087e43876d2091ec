package xlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.String())
	require.Equal(t, "INFO", LogLevelInfo.String())
	require.Equal(t, "WARN", LogLevelWarn.String())
	require.Equal(t, "ERROR", LogLevelError.String())
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())
}

func TestGetLogLevelOrDefault(t *testing.T) {
	testcases := []struct {
		in  string
		exp zapcore.Level
	}{
		{"", zapcore.DebugLevel},
		{"  ", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
		{"unknown", zapcore.DebugLevel},
	}
	for _, tc := range testcases {
		t.Run(tc.in, func(tt *testing.T) {
			require.Equal(tt, tc.exp, getLogLevelOrDefault(tc.in))
		})
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	res := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return res
}

func TestXLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewXLogger(
		WithXLoggerWriter(buf),
		WithXLoggerEncoder(JSON),
		WithXLoggerLevel(LogLevelInfo),
	)
	require.Equal(t, "info", logger.Level())

	logger.Debug("dropped")
	logger.Info("kept", zap.Int("key", 7))
	logger.Warn("warned")
	logger.Error(errors.New("boom"), "failed")
	logger.Error(nil, "failed without error")
	require.NoError(t, logger.Sync())

	lines := decodeLines(t, buf)
	require.Len(t, lines, 4)
	require.Equal(t, "kept", lines[0]["msg"])
	require.Equal(t, "INFO", lines[0]["lvl"])
	require.Equal(t, float64(7), lines[0]["key"])
	require.Equal(t, "WARN", lines[1]["lvl"])
	require.Equal(t, "boom", lines[2]["error"])
	_, ok := lines[3]["error"]
	require.False(t, ok)
	require.Contains(t, lines[0]["callAt"], "xlog_test.go")
}

func TestXLogger_IncreaseLogLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewXLogger(
		WithXLoggerWriter(buf),
		WithXLoggerLevel(LogLevelDebug),
	)
	child := logger.Named("rbtree")

	child.Debug("first")
	logger.IncreaseLogLevel(zapcore.ErrorLevel)
	require.Equal(t, "error", child.Level())
	child.Debug("second")
	child.Logf(zapcore.ErrorLevel, "third %d", 3)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	require.Equal(t, "first", lines[0]["msg"])
	require.Equal(t, "rbtree", lines[0]["component"])
	require.Equal(t, "third 3", lines[1]["msg"])
}

func TestXLogger_PlainText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewXLogger(
		WithXLoggerWriter(buf),
		WithXLoggerEncoder(PlainText),
		WithXLoggerLevelEncoder(zapcore.LowercaseLevelEncoder),
		WithXLoggerTimeEncoder(zapcore.EpochTimeEncoder),
	)
	logger.Info("plain")
	require.Contains(t, buf.String(), "info")
	require.Contains(t, buf.String(), "plain")
}

func TestXLogger_BadOptions(t *testing.T) {
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(nil))
	})
	require.NotPanics(t, func() {
		NewXLogger(nil, WithXLoggerLevelEncoder(nil), WithXLoggerTimeEncoder(nil))
	})
}

func TestNopXLogger(t *testing.T) {
	logger := NewNopXLogger()
	require.NotPanics(t, func() {
		logger.Debug("nop")
		logger.Named("child").Error(errors.New("nop"), "nop")
		logger.Logf(zapcore.InfoLevel, "%s", "nop")
	})
	require.NoError(t, logger.Sync())
	require.NotNil(t, logger.zap())
}

func TestXLogger_SharedStdOut(t *testing.T) {
	require.Same(t, stdOutWriteSyncer(), stdOutWriteSyncer())

	warmup := NewXLogger(WithXLoggerLevel(LogLevelInfo))
	warmup.Info("stdout warmup")

	before := runtime.NumGoroutine()
	loggers := make([]XLogger, 0, 50)
	for i := 0; i < 50; i++ {
		logger := NewXLogger(WithXLoggerLevel(LogLevelInfo))
		logger.Info("stdout shared", zap.Int("idx", i))
		loggers = append(loggers, logger)
	}
	after := runtime.NumGoroutine()
	require.LessOrEqual(t, after, before+2)
	require.Len(t, loggers, 50)
	_ = warmup.Sync()
}
