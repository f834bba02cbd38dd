// Package treebuilder consumes jsonscan.Events and assembles them into
// jsonvalue.Values, maintaining a live stack of in-progress containers and
// scalars so that, at any point during a stream, the best-current
// approximation of the whole value can be projected as a Snapshot
// (spec.md §4.3).
package treebuilder

import (
	"github.com/hashicorp/go-hclog"

	"github.com/iantbutler01/gasp/jsonscan"
	"github.com/iantbutler01/gasp/jsonvalue"
	"github.com/iantbutler01/gasp/perror"
)

// Builder accumulates scanner events into a value tree. It is not safe for
// concurrent use; each stream owns one Builder.
type Builder struct {
	stack []*frame
	path  jsonvalue.Path

	streaming bool

	disableCoalescing          bool
	disableImplicitArrayUnwrap bool

	log hclog.Logger
}

// New returns a Builder. When streaming is true, FeedEvent returns Partial
// snapshots as the tree grows; when false, only Finish ever yields a value,
// and an input that ends with more than one frame still open (after a
// trailing number or bare identifier is committed) is an error rather than
// a best-effort snapshot.
func New(streaming bool) *Builder {
	return &Builder{streaming: streaming, log: hclog.NewNullLogger()}
}

// WithLogger attaches a logger to the builder. The builder itself emits no
// log records.
func (b *Builder) WithLogger(log hclog.Logger) *Builder {
	if log != nil {
		b.log = log
	}
	return b
}

// DisableSplitStringCoalescing turns off the heuristic that glues a
// string array element onto its predecessor when the predecessor is a
// string ending in a comma (optionally followed by a space), stripping that
// comma tail (see finishValueAndMaybeSnapshot). The heuristic is on by
// default; most producers benefit from the coalescing.
func (b *Builder) DisableSplitStringCoalescing() *Builder {
	b.disableCoalescing = true
	return b
}

// DisableImplicitArrayUnwrap makes Finish always return the top-level
// implicit array (even when it has exactly one element) instead of
// unwrapping a singleton. Use this when callers need to distinguish
// "one bare value" from "one value wrapped by juxtaposition".
func (b *Builder) DisableImplicitArrayUnwrap() *Builder {
	b.disableImplicitArrayUnwrap = true
	return b
}

func (b *Builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) pushPathForScalar() {
	t := b.top()
	if t == nil {
		return
	}
	switch t.kind {
	case frameArr:
		b.path = append(b.path, jsonvalue.IndexItem(len(t.arr)))
	case frameObj:
		if t.lastKey != nil {
			b.path = append(b.path, jsonvalue.KeyItem(*t.lastKey))
		}
	}
}

func (b *Builder) popPathForScalar() {
	if len(b.path) > 0 {
		b.path = b.path[:len(b.path)-1]
	}
}

func (b *Builder) currentRootSnapshotValue() (jsonvalue.Value, bool) {
	if len(b.stack) == 0 {
		return jsonvalue.Value{}, false
	}
	return buildSnapshotFromStack(b.stack, 0), true
}

// buildSnapshotFromStack recursively reconstructs the value the live stack
// currently represents, showing completed children alongside whatever
// scalar or container is still actively being built (spec.md §4.3,
// "Snapshot projection").
func buildSnapshotFromStack(stack []*frame, idx int) jsonvalue.Value {
	cur := stack[idx]

	if idx == len(stack)-1 {
		switch cur.kind {
		case frameStr, frameNum, frameIdent:
			return jsonvalue.StringValue(cur.buf.String())
		case frameObj:
			snap := make(map[string]jsonvalue.Value, len(cur.obj)+1)
			for k, v := range cur.obj {
				snap[k] = v
			}
			if cur.lastKey != nil {
				if _, ok := snap[*cur.lastKey]; !ok {
					snap[*cur.lastKey] = jsonvalue.StringValue("")
				}
			}
			return jsonvalue.ObjectValue(snap)
		case frameArr:
			out := make([]jsonvalue.Value, len(cur.arr))
			copy(out, cur.arr)
			return jsonvalue.ArrayValue(out)
		}
	}

	switch cur.kind {
	case frameObj:
		snap := make(map[string]jsonvalue.Value, len(cur.obj)+1)
		for k, v := range cur.obj {
			snap[k] = v
		}
		if cur.lastKey != nil {
			if idx+1 < len(stack) {
				snap[*cur.lastKey] = buildSnapshotFromStack(stack, idx+1)
			} else {
				snap[*cur.lastKey] = jsonvalue.StringValue("")
			}
		} else if idx+1 < len(stack) {
			keySnap := buildSnapshotFromStack(stack, idx+1)
			if keySnap.Kind == jsonvalue.String && keySnap.StringVal != "" {
				snap[keySnap.StringVal] = jsonvalue.StringValue("")
			}
		}
		return jsonvalue.ObjectValue(snap)
	case frameArr:
		out := make([]jsonvalue.Value, len(cur.arr))
		copy(out, cur.arr)
		if idx+1 < len(stack) {
			out = append(out, buildSnapshotFromStack(stack, idx+1))
		}
		return jsonvalue.ArrayValue(out)
	default:
		// A scalar frame can only ever be the last frame on the stack.
		return jsonvalue.NullValue()
	}
}

func (b *Builder) startContainer(f *frame) {
	t := b.top()
	if t != nil {
		switch t.kind {
		case frameArr:
			b.path = append(b.path, jsonvalue.IndexItem(len(t.arr)))
		case frameObj:
			if t.lastKey != nil {
				b.path = append(b.path, jsonvalue.KeyItem(*t.lastKey))
			}
		}
	}
	b.stack = append(b.stack, f)
}

func (b *Builder) finishContainer() (jsonvalue.Value, error) {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	var val jsonvalue.Value
	switch f.kind {
	case frameObj:
		val = jsonvalue.ObjectValue(f.obj)
	case frameArr:
		val = jsonvalue.ArrayValue(f.arr)
	default:
		// Structurally unreachable: ']'/'}' can't be scanned while a scalar
		// frame is open, since the scanner closes scalars before Outer ever
		// sees a bracket.
		return jsonvalue.Value{}, perror.New(perror.UnexpectedChar)
	}
	if len(b.path) > 0 {
		b.path = b.path[:len(b.path)-1]
	}
	return val, nil
}

func (b *Builder) ensureIdentFrame() {
	if t := b.top(); t == nil || t.kind != frameIdent {
		b.pushPathForScalar()
		b.stack = append(b.stack, &frame{kind: frameIdent})
	}
}

func (b *Builder) ensureNumFrame() {
	if t := b.top(); t == nil || t.kind != frameNum {
		b.pushPathForScalar()
		b.stack = append(b.stack, &frame{kind: frameNum})
	}
}

func (b *Builder) ensureStringFrame() {
	if t := b.top(); t == nil || t.kind != frameStr {
		if t != nil {
			switch t.kind {
			case frameArr:
				b.path = append(b.path, jsonvalue.IndexItem(len(t.arr)))
			case frameObj:
				if t.lastKey != nil {
					b.path = append(b.path, jsonvalue.KeyItem(*t.lastKey))
				}
			}
		}
		b.stack = append(b.stack, &frame{kind: frameStr})
	}
}

func (b *Builder) parentWantsKey() bool {
	t := b.top()
	return t != nil && t.kind == frameObj && t.lastKey == nil
}

// finishValueAndMaybeSnapshot attaches val to whatever is now the top of the
// stack (wrapping it in a fresh implicit top-level array if the stack was
// empty), then, in streaming mode, projects and returns the new root
// snapshot.
func (b *Builder) finishValueAndMaybeSnapshot(val jsonvalue.Value) (Snapshot, error) {
	if t := b.top(); t != nil {
		switch t.kind {
		case frameObj:
			if t.lastKey == nil {
				return nil, perror.ErrInvalidKey
			}
			key := *t.lastKey
			t.obj[key] = val
			t.lastKey = nil
		case frameArr:
			if val.Kind == jsonvalue.String {
				cur := val.StringVal
				if trimmed(cur) == "" {
					return nil, nil
				}
				if !b.disableCoalescing && len(t.arr) > 0 {
					lastIdx := len(t.arr) - 1
					if t.arr[lastIdx].Kind == jsonvalue.String {
						last := t.arr[lastIdx].StringVal
						if hasCommaTail(last) {
							last = trimCommaTail(last)
							last += cur
							t.arr[lastIdx] = jsonvalue.StringValue(last)
							return nil, nil
						}
					}
				}
			}
			t.arr = append(t.arr, val)
		}
	} else {
		// Root value with nothing on the stack yet: wrap it in the implicit
		// top-level array (spec.md §4.3, "implicit top-level array via
		// juxtaposition"). From here on the stack is never empty again
		// within this call.
		b.stack = append(b.stack, &frame{kind: frameArr, arr: []jsonvalue.Value{val}})
	}

	isContainer := val.Kind == jsonvalue.Object || val.Kind == jsonvalue.Array

	if b.streaming {
		if snapVal, ok := b.currentRootSnapshotValue(); ok {
			if !isContainer {
				b.popPathForScalar()
			}
			return Partial{Path: jsonvalue.Path{}, Value: snapVal}, nil
		}
	}

	if !isContainer {
		b.popPathForScalar()
	}
	return nil, nil
}

func trimmed(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == ',' || s[start] == '\t' || s[start] == '\n' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == ',' || s[end-1] == '\t' || s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

func hasCommaTail(s string) bool {
	return len(s) > 0 && (s[len(s)-1] == ',' || (len(s) >= 2 && s[len(s)-2] == ',' && s[len(s)-1] == ' '))
}

func trimCommaTail(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ',' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}

// FeedEvent advances the builder by one scanner event, returning a Snapshot
// when streaming mode has a new root approximation to report.
func (b *Builder) FeedEvent(ev jsonscan.Event) (Snapshot, error) {
	switch e := ev.(type) {
	case jsonscan.StartObject:
		b.startContainer(newObjFrame())
		return nil, nil

	case jsonscan.StartArray:
		b.startContainer(newArrFrame())
		return nil, nil

	case jsonscan.EndObject:
		val, err := b.finishContainer()
		if err != nil {
			return nil, err
		}
		return b.finishValueAndMaybeSnapshot(val)

	case jsonscan.EndArray:
		val, err := b.finishContainer()
		if err != nil {
			return nil, err
		}
		return b.finishValueAndMaybeSnapshot(val)

	case jsonscan.StrChunk:
		b.ensureStringFrame()
		t := b.top()
		t.buf.WriteString(e.Text)
		if b.streaming {
			return Partial{Path: b.path.Clone(), Value: jsonvalue.StringValue(t.buf.String())}, nil
		}
		return nil, nil

	case jsonscan.StrEnd:
		if t := b.top(); t != nil && t.kind == frameObj && t.lastKey == nil {
			key, err := unescape(e.Text)
			if err != nil {
				return nil, err
			}
			t.lastKey = &key
			return nil, nil
		}

		if t := b.top(); t != nil && t.kind == frameStr {
			b.stack = b.stack[:len(b.stack)-1]
			t.buf.WriteString(e.Text)
			cooked, err := unescape(t.buf.String())
			if err != nil {
				return nil, err
			}
			if parent := b.top(); parent != nil && parent.kind == frameObj && parent.lastKey == nil {
				key := cooked
				parent.lastKey = &key
				return nil, nil
			}
			return b.finishValueAndMaybeSnapshot(jsonvalue.StringValue(cooked))
		}

		cooked, err := unescape(e.Text)
		if err != nil {
			return nil, err
		}
		b.pushPathForScalar()
		return b.finishValueAndMaybeSnapshot(jsonvalue.StringValue(cooked))

	case jsonscan.NumberChunk:
		b.ensureNumFrame()
		t := b.top()
		t.buf.WriteString(e.Text)
		if b.streaming {
			return Partial{Path: b.path.Clone(), Value: jsonvalue.StringValue(t.buf.String())}, nil
		}
		return nil, nil

	case jsonscan.NumberEnd:
		if t := b.top(); t != nil && t.kind == frameNum {
			t.buf.WriteString(e.Text)
			num, err := parseNumber(t.buf.String())
			if err != nil {
				return nil, err
			}
			b.stack = b.stack[:len(b.stack)-1]
			return b.finishValueAndMaybeSnapshot(jsonvalue.NumberValue(num))
		}

		num, err := parseNumber(e.Text)
		if err != nil {
			return nil, err
		}
		b.pushPathForScalar()
		return b.finishValueAndMaybeSnapshot(jsonvalue.NumberValue(num))

	case jsonscan.IdentChunk:
		b.ensureIdentFrame()
		t := b.top()
		t.buf.WriteString(e.Text)
		if b.streaming {
			return Partial{Path: b.path.Clone(), Value: jsonvalue.StringValue(t.buf.String())}, nil
		}
		return nil, nil

	case jsonscan.IdentEnd:
		if t := b.top(); t != nil && t.kind == frameIdent {
			t.buf.WriteString(e.Text)
			txt := t.buf.String()
			b.stack = b.stack[:len(b.stack)-1]

			if lit, ok := parseIdent(txt); ok {
				return b.finishValueAndMaybeSnapshot(lit)
			}

			if b.parentWantsKey() {
				if _, isKeyword := parseIdent(txt); isKeyword {
					return nil, perror.ErrInvalidKey
				}
				if parent := b.top(); parent != nil {
					key := txt
					parent.lastKey = &key
				}
				return nil, nil
			}

			return b.finishValueAndMaybeSnapshot(jsonvalue.StringValue(squashWS(txt)))
		}

		if b.parentWantsKey() {
			if _, isKeyword := parseIdent(e.Text); isKeyword {
				return nil, perror.ErrInvalidKey
			}
			if parent := b.top(); parent != nil {
				key := e.Text
				parent.lastKey = &key
			}
			return nil, nil
		}

		val, ok := parseIdent(e.Text)
		if !ok {
			val = jsonvalue.StringValue(e.Text)
		}
		b.pushPathForScalar()
		return b.finishValueAndMaybeSnapshot(val)

	default:
		return nil, nil
	}
}

// Finish finalizes the builder at end of input. In non-streaming mode a
// trailing number or bare identifier is first committed to its parent, since
// end of input ends it. After that, in streaming mode, a stack of more than
// one frame yields its best-effort snapshot rather than an error; in
// non-streaming mode the same condition is UnexpectedEof.
func (b *Builder) Finish() (jsonvalue.Value, error) {
	if len(b.stack) == 0 {
		return jsonvalue.NullValue(), nil
	}

	if !b.streaming && len(b.stack) > 1 {
		var end jsonscan.Event
		switch b.top().kind {
		case frameNum:
			end = jsonscan.NumberEnd{}
		case frameIdent:
			end = jsonscan.IdentEnd{}
		}
		if end != nil {
			if _, err := b.FeedEvent(end); err != nil {
				return jsonvalue.Value{}, err
			}
		}
	}

	if len(b.stack) != 1 {
		if b.streaming {
			return buildSnapshotFromStack(b.stack, 0), nil
		}
		return jsonvalue.Value{}, perror.ErrUnexpectedEOF
	}

	top := b.stack[0]
	switch top.kind {
	case frameArr:
		if !b.disableImplicitArrayUnwrap && len(top.arr) == 1 {
			return top.arr[0], nil
		}
		return jsonvalue.ArrayValue(top.arr), nil
	case frameObj:
		return jsonvalue.ObjectValue(top.obj), nil
	case frameStr:
		s, err := unescape(top.buf.String())
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.StringValue(s), nil
	case frameNum:
		n, err := parseNumber(top.buf.String())
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.NumberValue(n), nil
	case frameIdent:
		if v, ok := parseIdent(top.buf.String()); ok {
			return v, nil
		}
		return jsonvalue.NullValue(), nil
	}
	return jsonvalue.NullValue(), nil
}
