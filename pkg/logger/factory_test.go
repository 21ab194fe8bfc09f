package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))

		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))

		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.App("fieldrulesd")))

		log.Info("msg")
		assert.Equal(t, "fieldrulesd", decode(t, buf)["app"])
	})

	t.Run("form scope from context", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormScopeExtractor())

		ctx := logger.WithFormScope(context.Background(), "signup", "s-1")
		log.WarnContext(ctx, "expression check faulted", logger.Field("age"), logger.Error(errors.New("boom")))

		entry := decode(t, buf)
		assert.Equal(t, "signup", entry["form"])
		assert.Equal(t, "s-1", entry["session"])
		assert.Equal(t, "age", entry["field"])
		assert.Equal(t, "boom", entry["error"])
	})

	t.Run("no scope in context adds nothing", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormScopeExtractor())

		log.InfoContext(context.Background(), "plain")
		entry := decode(t, buf)
		assert.NotContains(t, entry, "form")
		assert.NotContains(t, entry, "session")
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("production is json at info", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("prod", "svc"))

		log.Debug("dropped")
		log.Info("kept")
		entry := decode(t, buf)
		assert.Equal(t, "production", entry["env"])
		assert.Equal(t, "svc", entry["app"])
	})

	t.Run("development is text at debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("", "svc"))

		log.Debug("visible")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { logger.Discard().Error("nothing") })
}
