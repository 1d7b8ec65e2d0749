package log_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/stepdriver/stepdriver/pkg/log"
	"github.com/stepdriver/stepdriver/pkg/types"
)

func TestAdapter(t *testing.T) {
	out := &bytes.Buffer{}
	zl := zerolog.New(out)
	logger := log.NewZerologAdapter(zl)

	logger.Info().
		Str("unit", "test").
		Int("n", 1).
		Msg("hello")

	assert.Contains(t, out.String(), `"unit":"test"`)
	assert.Contains(t, out.String(), `"n":1`)
	assert.Contains(t, out.String(), `"message":"hello"`)
}

func TestAdapterScopedContext(t *testing.T) {
	out := &bytes.Buffer{}
	zl := zerolog.New(out)
	logger := log.NewZerologAdapter(zl)

	scoped := logger.With().Str("step_title", "Open portal").Str("step_kind", "goto").Logger()
	scoped.Info().Msg("Navigating")

	assert.Contains(t, out.String(), `"step_title":"Open portal"`)
	assert.Contains(t, out.String(), `"step_kind":"goto"`)
}

type captureSink struct {
	events []*log.LogEvent
}

func (c *captureSink) Write(e *log.LogEvent) error {
	c.events = append(c.events, e)
	return nil
}

func (c *captureSink) Close() error { return nil }

func TestRouterParsesZerologLines(t *testing.T) {
	sink := &captureSink{}
	router := log.NewRouter(sink)

	zl := zerolog.New(router)
	logger := log.NewZerologAdapter(zl)
	logger.Warn().Str("selector", "div.row").Msg("No elements matched")

	if assert.Len(t, sink.events, 1) {
		evt := sink.events[0]
		assert.Equal(t, types.WarnLevel, evt.Level)
		assert.Equal(t, "No elements matched", evt.Message)
		assert.Equal(t, "div.row", evt.Fields["selector"])
	}
}
