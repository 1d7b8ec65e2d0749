package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stepdriver/stepdriver/pkg/core"
)

func TestGetField(t *testing.T) {
	record := map[string]any{
		"Title": "capitalized",
		"arrt":  "href",
		"sleep": float64(2),
	}

	t.Run("exact key wins", func(t *testing.T) {
		r := map[string]any{"kind": "click", "type": "goto"}
		assert.Equal(t, "click", core.GetField(r, "kind", "type"))
	})

	t.Run("alias fallback", func(t *testing.T) {
		assert.Equal(t, "href", core.GetField(record, "attribute", "attr", "arrt"))
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		assert.Equal(t, "capitalized", core.GetField(record, "title"))
	})

	t.Run("absent key yields nil", func(t *testing.T) {
		assert.Nil(t, core.GetField(record, "missing"))
	})
}

func TestStringField(t *testing.T) {
	record := map[string]any{
		"url":   "https://example.com",
		"count": float64(3),
		"flag":  true,
		"junk":  []any{"x"},
	}

	assert.Equal(t, "https://example.com", core.StringField(record, "url"))
	assert.Equal(t, "3", core.StringField(record, "count"))
	assert.Equal(t, "true", core.StringField(record, "flag"))
	assert.Equal(t, "", core.StringField(record, "junk"))
	assert.Equal(t, "", core.StringField(record, "missing"))
}

func TestBoolField(t *testing.T) {
	record := map[string]any{
		"a": true,
		"b": "true",
		"c": "nope",
		"d": float64(1),
	}

	assert.True(t, core.BoolField(record, "a"))
	assert.True(t, core.BoolField(record, "b"))
	assert.False(t, core.BoolField(record, "c"))
	assert.False(t, core.BoolField(record, "d"))
	assert.False(t, core.BoolField(record, "missing"))
}

func TestIntField(t *testing.T) {
	record := map[string]any{
		"index":  float64(2),
		"zero":   float64(0),
		"string": " 7 ",
		"bad":    "x",
	}

	if idx := core.IntField(record, "index"); assert.NotNil(t, idx) {
		assert.Equal(t, 2, *idx)
	}
	if zero := core.IntField(record, "zero"); assert.NotNil(t, zero) {
		assert.Equal(t, 0, *zero)
	}
	if s := core.IntField(record, "string"); assert.NotNil(t, s) {
		assert.Equal(t, 7, *s)
	}
	assert.Nil(t, core.IntField(record, "bad"))
	assert.Nil(t, core.IntField(record, "missing"))
}

func TestSecondsField(t *testing.T) {
	record := map[string]any{
		"sleep":    float64(2),
		"fraction": 0.5,
		"negative": float64(-1),
	}

	assert.Equal(t, 2*time.Second, core.SecondsField(record, "sleep"))
	assert.Equal(t, 500*time.Millisecond, core.SecondsField(record, "fraction"))
	assert.Equal(t, time.Duration(0), core.SecondsField(record, "negative"))
	assert.Equal(t, time.Duration(0), core.SecondsField(record, "missing"))
}
