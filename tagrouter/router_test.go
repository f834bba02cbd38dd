package tagrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r *TagRouter, chunks ...string) []TagEvent {
	t.Helper()
	var events []TagEvent
	for _, c := range chunks {
		err := r.Push(c, func(ev TagEvent) error {
			events = append(events, ev)
			return nil
		})
		require.NoError(t, err)
	}
	return events
}

func TestPushBasicOpenPayloadClose(t *testing.T) {
	r := New()
	events := collect(t, r, "<Thought>hello world</Thought>")

	require.Len(t, events, 3)
	assert.Equal(t, Open{Name: "Thought"}, events[0])
	assert.Equal(t, Payload{Text: "hello world"}, events[1])
	assert.Equal(t, Close{Name: "Thought"}, events[2])
}

func TestPushSplitAcrossChunks(t *testing.T) {
	r := New()
	events := collect(t, r, "<Tho", "ught>hel", "lo</Th", "ought>")

	require.Len(t, events, 4)
	assert.Equal(t, Open{Name: "Thought"}, events[0])
	assert.Equal(t, Payload{Text: "hel"}, events[1])
	assert.Equal(t, Payload{Text: "lo"}, events[2])
	// Close arrives in whichever chunk completes the '>' — here the last one.
	assert.Equal(t, Close{Name: "Thought"}, events[3])
}

func TestPushIgnoredTagSuppressesContent(t *testing.T) {
	r := NewWithFilter(nil, []string{"secret"})
	events := collect(t, r, "<Answer>before<secret>hidden</secret>after</Answer>")

	var texts []string
	for _, ev := range events {
		if p, ok := ev.(Payload); ok {
			texts = append(texts, p.Text)
		}
	}
	assert.Equal(t, []string{"before", "after"}, texts)
}

func TestPushWantedFilterIgnoresUnlistedTags(t *testing.T) {
	r := NewWithFilter([]string{"answer"}, nil)
	events := collect(t, r, "<Other>skip me</Other><Answer>keep me</Answer>")

	require.Len(t, events, 3)
	assert.Equal(t, Open{Name: "Answer"}, events[0])
	assert.Equal(t, Payload{Text: "keep me"}, events[1])
	assert.Equal(t, Close{Name: "Answer"}, events[2])
}

func TestPushNestedPassthroughTag(t *testing.T) {
	r := NewWithFilter([]string{"answer"}, nil)
	events := collect(t, r, "<Answer>look <b>here</b> now</Answer>")

	var texts []string
	for _, ev := range events {
		if p, ok := ev.(Payload); ok {
			texts = append(texts, p.Text)
		}
	}
	assert.Equal(t, []string{"look ", "<b>", "here", "</b>", " now"}, texts)
}

func TestPushCaseInsensitiveMatching(t *testing.T) {
	r := NewWithFilter([]string{"Answer"}, nil)
	events := collect(t, r, "<ANSWER>x</answer>")

	require.Len(t, events, 3)
	assert.Equal(t, Open{Name: "ANSWER"}, events[0])
	assert.Equal(t, Close{Name: "answer"}, events[2])
}

func TestPushTailIsBoundedWhenOutside(t *testing.T) {
	r := New()
	long := make([]byte, tailKeep*3)
	for i := range long {
		long[i] = 'x'
	}
	require.NoError(t, r.Push(string(long), func(TagEvent) error { return nil }))
	assert.LessOrEqual(t, r.buf.Len(), tailKeep)
}
