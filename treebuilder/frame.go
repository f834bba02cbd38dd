package treebuilder

import (
	"strings"

	"github.com/iantbutler01/gasp/jsonvalue"
)

type frameKind int

const (
	frameObj frameKind = iota
	frameArr
	frameStr
	frameIdent
	frameNum
)

// frame is one level of the builder's live stack: either a container
// accumulating finished children, or a scalar accumulating raw text across
// chunk boundaries. Kept as an unexported tagged struct (mirrors Frame in
// the ported Rust Builder) since frames are mutated in place as events
// arrive, unlike jsonvalue.Value which is immutable data.
type frame struct {
	kind frameKind

	obj     map[string]jsonvalue.Value
	lastKey *string

	arr []jsonvalue.Value

	buf strings.Builder
}

func newObjFrame() *frame {
	return &frame{kind: frameObj, obj: make(map[string]jsonvalue.Value)}
}

func newArrFrame() *frame {
	return &frame{kind: frameArr}
}
