// Package coerce converts raw input values into the Go representation of a
// declared field type. Every function is total: input that cannot be
// converted yields ok=false instead of an error.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Int converts v into an int64. Fractional input is truncated toward zero.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		return parseInt(string(n))
	case string:
		return parseInt(n)
	case []byte:
		return parseInt(string(n))
	}
	return 0, false
}

// Float converts v into a float64. NaN and ±Inf are rejected.
func Float(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		return parseFloat(string(n))
	case string:
		return parseFloat(n)
	case []byte:
		return parseFloat(string(n))
	default:
		i, ok := Int(v)
		if !ok {
			return 0, false
		}
		f = float64(i)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders non-nil input as a string. nil stays absent.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	case json.Number:
		return string(s), true
	case time.Time:
		return FormatTime(s), true
	case *time.Time:
		if s == nil {
			return "", false
		}
		return FormatTime(*s), true
	case bool:
		return strconv.FormatBool(s), true
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case fmt.Stringer:
		return s.String(), true
	}
	return fmt.Sprint(v), true
}

// Bool normalizes native booleans, 1/0 and the usual textual spellings.
// Anything else is absent.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case nil:
		return false, false
	case bool:
		return b, true
	case string:
		return parseBool(b)
	case []byte:
		return parseBool(string(b))
	}
	if f, ok := Float(v); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

// Time parses a time.Time from a native time, a string or a Unix timestamp in
// milliseconds. layout, when non-empty, is tried before the built-in layouts.
func Time(v any, layout string) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return parseTime(t, layout)
	case []byte:
		return parseTime(string(t), layout)
	case json.Number:
		return parseTime(string(t), layout)
	case bool:
		return time.Time{}, false
	}
	ms, ok := Int(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Equal reports whether two coerced values are the same. Times compare by
// instant, everything else deeply.
func Equal(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// Len returns the length of strings (in runes), slices, arrays and maps.
// Other kinds are measured by their string rendering. nil has length 0.
func Len(v any) int {
	switch s := v.(type) {
	case nil:
		return 0
	case string:
		return len([]rune(s))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	}
	s, _ := String(v)
	return len([]rune(s))
}

// Clone copies slices and maps so the result shares no backing storage with
// v. []any and map[string]any are copied deeply, other slice and map types
// one level deep. Every other value is returned unchanged.
func Clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	}
	return v
}

// FormatTime renders t as RFC3339Nano in UTC (trailing zeros trimmed).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ---- helpers ----

func uintToInt(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	}
	return false, false
}

// timeLayouts are tried in order after the caller supplied layout.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseTime(s, layout string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if layout != "" {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	// numeric strings are millisecond timestamps
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}
