package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInterfaceRoundTrip(t *testing.T) {
	v := ObjectValue(map[string]Value{
		"name":   StringValue("ferris"),
		"count":  NumberValue(IntNumber(7)),
		"weight": NumberValue(FloatNumber(1.5)),
		"tags":   ArrayValue([]Value{StringValue("a"), StringValue("b")}),
		"active": BoolValue(true),
		"extra":  NullValue(),
	})

	out := v.ToInterface()
	m, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ferris", m["name"])
	assert.Equal(t, int64(7), m["count"])
	assert.Equal(t, 1.5, m["weight"])
	assert.Equal(t, true, m["active"])
	assert.Nil(t, m["extra"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
}

func TestMarshalJSON(t *testing.T) {
	v := ArrayValue([]Value{NumberValue(IntNumber(1)), StringValue("x"), BoolValue(false)})

	out, err := Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"x",false]`, string(out))
}

func TestFromInterfaceRoundTrip(t *testing.T) {
	in := map[string]any{
		"a": float64(3),
		"b": float64(3.5),
		"c": "hi",
		"d": true,
		"e": nil,
		"f": []any{float64(1), float64(2)},
	}

	got := FromInterface(in)
	require.Equal(t, Object, got.Kind)
	assert.True(t, Equal(got.ObjectVal["a"], NumberValue(IntNumber(3))))
	assert.True(t, Equal(got.ObjectVal["b"], NumberValue(FloatNumber(3.5))))
	assert.True(t, Equal(got.ObjectVal["c"], StringValue("hi")))
	assert.True(t, Equal(got.ObjectVal["d"], BoolValue(true)))
	assert.True(t, Equal(got.ObjectVal["e"], NullValue()))
	assert.True(t, Equal(got.ObjectVal["f"], ArrayValue([]Value{NumberValue(IntNumber(1)), NumberValue(IntNumber(2))})))
}
