// Package validate coerces loosely typed input (decoded JSON, path and
// query parameters) into the strict types the stores expect.  A value is
// an integer only if it is one: 1.5, 1.0, "1", true and nil are not.
package validate

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

var (
	userNameRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Int returns v as an int when v holds a value of any integer kind that
// fits in an int.  json.Number is accepted when its text is a base-10
// integer, so decoders should be configured with UseNumber.
func Int(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return fromInt64(t)
	case uint:
		return fromUint64(uint64(t))
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return fromUint64(uint64(t))
	case uint64:
		return fromUint64(t)
	case json.Number:
		n, err := strconv.Atoi(string(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func fromInt64(n int64) (int, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func fromUint64(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// PositiveInt is Int restricted to values greater than zero.
func PositiveInt(v any) (int, bool) {
	n, ok := Int(v)
	return n, ok && n > 0
}

// Param parses a path or query parameter as a base-10 integer.
// Any sign is allowed; range checks belong to the caller.
func Param(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns v when it holds a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// UserName reports whether s is made of ASCII letters and digits only.
func UserName(s string) bool { return userNameRe.MatchString(s) }

// Date reports whether s has the YYYY-MM-DD shape.  The value is not
// checked against a calendar.
func Date(s string) bool { return dateRe.MatchString(s) }
