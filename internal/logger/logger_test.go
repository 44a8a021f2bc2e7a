package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{"ERROR", logger.ERROR},
		{"nonsense", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestTextOutput_SortedFieldsAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithClock(fixedClock)).
		WithPrefix("attempt_service").
		WithFields(map[string]any{"user_id": "u1", "lesson_id": "l1"})

	log.Info("submitted %d answers", 3)

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2024-03-04 10:00:00.000 INFO "))
	assert.Contains(t, line, "[attempt_service]")
	assert.Contains(t, line, "submitted 3 answers")
	assert.Less(t, strings.Index(line, "lesson_id=l1"), strings.Index(line, "user_id=u1"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithClock(fixedClock),
	).WithPrefix("db").WithField("attempt", 2)

	log.Error("commit failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "commit failed", entry["msg"])
	assert.Equal(t, "db", entry["component"])
	assert.Equal(t, float64(2), entry["attempt"])
	assert.Equal(t, "2024-03-04T10:00:00Z", entry["ts"])
}

func TestWithFieldDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf))
	_ = parent.WithField("request_id", "abc")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.Discard().WithField("k", "v")
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
