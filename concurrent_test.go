package gasp

import (
	"context"
	"testing"

	"github.com/iantbutler01/gasp/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConcurrentPreservesOrderAndValues(t *testing.T) {
	jobs := []Job{
		{Name: "one", Text: `{"a": 1}`},
		{Name: "two", Text: `[1, 2, 3]`},
		{Name: "three", Text: `"just a string"`},
	}

	results, err := RunConcurrent(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "one", results[0].Name)
	assert.True(t, jsonvalue.Equal(
		jsonvalue.ObjectValue(map[string]jsonvalue.Value{"a": jsonvalue.NumberValue(jsonvalue.IntNumber(1))}),
		results[0].Value,
	))

	assert.Equal(t, "two", results[1].Name)
	assert.True(t, jsonvalue.Equal(
		jsonvalue.ArrayValue([]jsonvalue.Value{
			jsonvalue.NumberValue(jsonvalue.IntNumber(1)),
			jsonvalue.NumberValue(jsonvalue.IntNumber(2)),
			jsonvalue.NumberValue(jsonvalue.IntNumber(3)),
		}),
		results[1].Value,
	))

	assert.Equal(t, "three", results[2].Name)
	assert.True(t, jsonvalue.Equal(jsonvalue.StringValue("just a string"), results[2].Value))
}

func TestRunConcurrentWrapsJobError(t *testing.T) {
	jobs := []Job{
		{Name: "bad", Text: `"bad\qend"`},
	}

	_, err := RunConcurrent(context.Background(), jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
}
