package validate_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-reservation/internal/validate"
)

func Test_Int(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"int", 5, 5, true},
		{"negative int", -2, -2, true},
		{"int64", int64(7), 7, true},
		{"uint", uint(4), 4, true},
		{"uint32", uint32(9), 9, true},
		{"uint64", uint64(11), 11, true},
		{"uint64 overflow", uint64(math.MaxUint64), 0, false},
		{"json integer", json.Number("3"), 3, true},
		{"json fraction", json.Number("1.5"), 0, false},
		{"json integral float", json.Number("1.0"), 0, false},
		{"json exponent", json.Number("1e2"), 0, false},
		{"float64", 1.5, 0, false},
		{"whole float64", 2.0, 0, false},
		{"string", "1", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := validate.Int(tc.in)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_PositiveInt(t *testing.T) {
	_, ok := validate.PositiveInt(0)
	assert.False(t, ok)
	_, ok = validate.PositiveInt(-1)
	assert.False(t, ok)
	n, ok := validate.PositiveInt(json.Number("4"))
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func Test_Param(t *testing.T) {
	n, ok := validate.Param("-3")
	assert.True(t, ok)
	assert.Equal(t, -3, n)

	_, ok = validate.Param("1.5")
	assert.False(t, ok)
	_, ok = validate.Param("abc")
	assert.False(t, ok)
	_, ok = validate.Param("")
	assert.False(t, ok)
}

func Test_String(t *testing.T) {
	s, ok := validate.String("user1")
	assert.True(t, ok)
	assert.Equal(t, "user1", s)

	_, ok = validate.String(1)
	assert.False(t, ok)
	_, ok = validate.String(nil)
	assert.False(t, ok)
}

func Test_UserName(t *testing.T) {
	assert.True(t, validate.UserName("user1"))
	assert.True(t, validate.UserName("ABC123"))
	assert.False(t, validate.UserName(""))
	assert.False(t, validate.UserName("user_1"))
	assert.False(t, validate.UserName("user#$%"))
	assert.False(t, validate.UserName("zażółć"))
}

func Test_Date(t *testing.T) {
	assert.True(t, validate.Date("2026-03-01"))
	assert.True(t, validate.Date("9999-99-99"), "shape only")
	assert.False(t, validate.Date("2026-3-01"))
	assert.False(t, validate.Date("01-03-2026"))
	assert.False(t, validate.Date("2026-03-01T00:00"))
	assert.False(t, validate.Date(""))
}
