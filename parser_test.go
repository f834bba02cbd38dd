package gasp

import (
	"testing"

	"github.com/iantbutler01/gasp/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLenientObject(t *testing.T) {
	got, err := Parse(`{name: 'ferris', count: 3, active: true}`)
	require.NoError(t, err)

	want := jsonvalue.ObjectValue(map[string]jsonvalue.Value{
		"name":   jsonvalue.StringValue("ferris"),
		"count":  jsonvalue.NumberValue(jsonvalue.IntNumber(3)),
		"active": jsonvalue.BoolValue(true),
	})
	assert.True(t, jsonvalue.Equal(want, got))
}

func TestParseTrailingComma(t *testing.T) {
	got, err := Parse(`[1, 2, 3,]`)
	require.NoError(t, err)

	want := jsonvalue.ArrayValue([]jsonvalue.Value{
		jsonvalue.NumberValue(jsonvalue.IntNumber(1)),
		jsonvalue.NumberValue(jsonvalue.IntNumber(2)),
		jsonvalue.NumberValue(jsonvalue.IntNumber(3)),
	})
	assert.True(t, jsonvalue.Equal(want, got))
}

func TestParseImplicitArrayViaJuxtaposition(t *testing.T) {
	got, err := Parse(`1 2 3`)
	require.NoError(t, err)

	want := jsonvalue.ArrayValue([]jsonvalue.Value{
		jsonvalue.NumberValue(jsonvalue.IntNumber(1)),
		jsonvalue.NumberValue(jsonvalue.IntNumber(2)),
		jsonvalue.NumberValue(jsonvalue.IntNumber(3)),
	})
	assert.True(t, jsonvalue.Equal(want, got))
}

func TestParseSingleScalarRootUnwraps(t *testing.T) {
	got, err := Parse(`42`)
	require.NoError(t, err)
	assert.True(t, jsonvalue.Equal(jsonvalue.NumberValue(jsonvalue.IntNumber(42)), got))
}

func TestParseUnterminatedSingleFrameStillResolves(t *testing.T) {
	p := NewParser()
	got, err := p.Parse(`{"a": 1`)
	// End of input ends the trailing number, leaving a single still-open
	// frame, which resolves via Finish's best-effort path rather than
	// erroring; only two or more open containers count as genuinely
	// ambiguous (see treebuilder's equivalent case).
	require.NoError(t, err)
	want := jsonvalue.ObjectValue(map[string]jsonvalue.Value{"a": jsonvalue.NumberValue(jsonvalue.IntNumber(1))})
	assert.True(t, jsonvalue.Equal(want, got))
}

func TestParseInvalidEscapeErrors(t *testing.T) {
	_, err := Parse(`"bad\qend"`)
	assert.Error(t, err)
}

func TestParseWithStrictRootKeepsSingletonWrapped(t *testing.T) {
	got, err := NewParser().WithStrictRoot().Parse(`42`)
	require.NoError(t, err)

	want := jsonvalue.ArrayValue([]jsonvalue.Value{jsonvalue.NumberValue(jsonvalue.IntNumber(42))})
	assert.True(t, jsonvalue.Equal(want, got))
}

func TestMarshalRendersCompactJSON(t *testing.T) {
	v := jsonvalue.ObjectValue(map[string]jsonvalue.Value{"ok": jsonvalue.BoolValue(true)})
	out, err := Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(out))
}
