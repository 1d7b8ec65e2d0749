package core

import (
	"strconv"
	"strings"
	"time"
)

// GetField fetches a value from a raw step record under a primary key, a
// list of known alias keys (hand-edited documents misspell attr as arrt,
// capitalize Title, and so on), or a case-insensitive match. Absence never
// errors; it yields nil.
func GetField(record map[string]any, key string, aliases ...string) any {
	if v, ok := record[key]; ok {
		return v
	}
	for _, a := range aliases {
		if v, ok := record[a]; ok {
			return v
		}
	}
	for k, v := range record {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// StringField is GetField coerced to a string; numbers are formatted,
// anything else yields "".
func StringField(record map[string]any, key string, aliases ...string) string {
	return asString(GetField(record, key, aliases...))
}

// BoolField is GetField coerced to a bool, defaulting to false.
func BoolField(record map[string]any, key string, aliases ...string) bool {
	switch v := GetField(record, key, aliases...).(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

// IntField is GetField coerced to *int; non-numeric values yield nil.
func IntField(record map[string]any, key string, aliases ...string) *int {
	n, ok := asInt(GetField(record, key, aliases...))
	if !ok {
		return nil
	}
	return &n
}

// SecondsField reads a numeric field expressed in seconds and returns it
// as a duration. Zero when absent or malformed.
func SecondsField(record map[string]any, key string, aliases ...string) time.Duration {
	f, ok := asFloat(GetField(record, key, aliases...))
	if !ok || f <= 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
