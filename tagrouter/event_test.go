package tagrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagEventKinds(t *testing.T) {
	assert.Equal(t, TagEventOpen, Open{Name: "a"}.Kind())
	assert.Equal(t, TagEventPayload, Payload{Text: "a"}.Kind())
	assert.Equal(t, TagEventClose, Close{Name: "a"}.Kind())
}
