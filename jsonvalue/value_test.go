package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{
			name:     "nulls are equal",
			a:        NullValue(),
			b:        NullValue(),
			expected: true,
		},
		{
			name:     "different kinds are unequal",
			a:        NullValue(),
			b:        BoolValue(false),
			expected: false,
		},
		{
			name:     "integers compare by value",
			a:        NumberValue(IntNumber(3)),
			b:        NumberValue(IntNumber(3)),
			expected: true,
		},
		{
			name:     "integer and float with same magnitude are not equal",
			a:        NumberValue(IntNumber(3)),
			b:        NumberValue(FloatNumber(3)),
			expected: false,
		},
		{
			name:     "arrays compare elementwise in order",
			a:        ArrayValue([]Value{StringValue("a"), StringValue("b")}),
			b:        ArrayValue([]Value{StringValue("a"), StringValue("b")}),
			expected: true,
		},
		{
			name:     "arrays with different order are unequal",
			a:        ArrayValue([]Value{StringValue("a"), StringValue("b")}),
			b:        ArrayValue([]Value{StringValue("b"), StringValue("a")}),
			expected: false,
		},
		{
			name: "objects compare by key regardless of insertion order",
			a: ObjectValue(map[string]Value{
				"x": NumberValue(IntNumber(1)),
				"y": NumberValue(IntNumber(2)),
			}),
			b: ObjectValue(map[string]Value{
				"y": NumberValue(IntNumber(2)),
				"x": NumberValue(IntNumber(1)),
			}),
			expected: true,
		},
		{
			name: "objects with a missing key are unequal",
			a: ObjectValue(map[string]Value{
				"x": NumberValue(IntNumber(1)),
			}),
			b:        ObjectValue(map[string]Value{}),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Equal(tc.a, tc.b))
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := ArrayValue([]Value{
		ObjectValue(map[string]Value{"k": StringValue("v")}),
	})

	clone := original.Clone()
	clone.ArrayVal[0].ObjectVal["k"] = StringValue("mutated")

	got, ok := original.ArrayVal[0].ObjectVal["k"].AsString()
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestAsString(t *testing.T) {
	s, ok := StringValue("hi").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	_, ok = NumberValue(IntNumber(1)).AsString()
	assert.False(t, ok)
}
