// Package tagrouter recognizes XML-like `<Tag>...</Tag>` regions inside an
// incrementally-delivered text stream, classifying their content as wanted,
// ignored, or passthrough. Tag names and angle brackets may be split across
// arbitrary chunk boundaries; the router retains whatever's needed between
// Push calls to recognize them once they're complete.
package tagrouter

import (
	"strings"

	"github.com/hashicorp/go-hclog"
)

// tailKeep bounds how much trailing text the router retains when it's not
// inside a wanted region, so a tag beginning just before a chunk boundary is
// still recognizable on the next Push (spec.md §4.1, "Split-tag tolerance").
const tailKeep = 200

// TagRouter segments an incremental text stream into tag-bounded regions.
type TagRouter struct {
	buf strings.Builder

	inside bool // true while between a wanted tag's Open and Close

	wanted  map[string]struct{} // lowercased; empty means "everything not ignored"
	ignored map[string]struct{} // lowercased

	insideIgnored bool
	ignoredDepth  int

	log hclog.Logger
}

// New builds a TagRouter with no tag filtering: every tag is wanted.
func New() *TagRouter {
	return NewWithFilter(nil, nil)
}

// NewWithFilter builds a TagRouter that only processes tags named in wanted
// (or, if wanted is empty, every tag not named in ignored), and that
// completely suppresses content inside tags named in ignored. Both slices
// are compared case-insensitively.
func NewWithFilter(wanted, ignored []string) *TagRouter {
	r := &TagRouter{
		wanted:  toLowerSet(wanted),
		ignored: toLowerSet(ignored),
		log:     hclog.NewNullLogger(),
	}
	return r
}

// WithLogger attaches a logger for tracing tag classification decisions.
func (r *TagRouter) WithLogger(log hclog.Logger) *TagRouter {
	if log != nil {
		r.log = log
	}
	return r
}

func toLowerSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// Push feeds the next chunk of text, invoking emit once per TagEvent in
// temporal order. emit returning an error aborts processing of this chunk
// immediately (later text is not recovered; a fresh Push would continue
// from the router's buffered remainder only).
func (r *TagRouter) Push(chunk string, emit func(TagEvent) error) error {
	r.buf.WriteString(chunk)
	buf := r.buf.String()
	r.log.Trace("push", "chunk", chunk, "buffer", buf)

	for {
		lt := strings.IndexByte(buf, '<')
		if lt == -1 {
			break
		}

		if lt > 0 {
			leading := buf[:lt]
			if r.inside && !r.insideIgnored && leading != "" {
				r.log.Trace("emit leading payload", "text", leading)
				if err := emit(Payload{Text: leading}); err != nil {
					r.buf.Reset()
					r.buf.WriteString(buf)
					return err
				}
			}
		}

		gt := strings.IndexByte(buf[lt:], '>')
		if gt == -1 {
			// Tag split across chunks: drop the handled prefix, keep from '<' on.
			buf = buf[lt:]
			r.buf.Reset()
			r.buf.WriteString(buf)
			return nil
		}
		gt += lt

		tagBody := buf[lt+1 : gt]
		isClose := strings.HasPrefix(tagBody, "/")
		namePart := tagBody
		if isClose {
			namePart = tagBody[1:]
		}
		name := firstToken(namePart)
		nameLower := strings.ToLower(name)

		_, isIgnored := r.ignored[nameLower]
		var isWanted bool
		if len(r.wanted) == 0 {
			isWanted = !isIgnored
		} else {
			_, isWanted = r.wanted[nameLower]
		}

		if r.inside && !r.insideIgnored && !isWanted && !isIgnored {
			// Nested tag that's neither wanted nor ignored: pass it through
			// verbatim, including its angle brackets (spec.md §4.1).
			tagContent := buf[lt : gt+1]
			if err := emit(Payload{Text: tagContent}); err != nil {
				r.buf.Reset()
				r.buf.WriteString(buf)
				return err
			}
			buf = buf[gt+1:]
			continue
		}

		if !isClose {
			switch {
			case isIgnored:
				r.insideIgnored = true
				r.ignoredDepth++
			case isWanted && !r.insideIgnored:
				if err := emit(Open{Name: name}); err != nil {
					r.buf.Reset()
					r.buf.WriteString(buf)
					return err
				}
				r.inside = true
			}
		} else {
			switch {
			case isIgnored && r.insideIgnored:
				r.ignoredDepth--
				if r.ignoredDepth == 0 {
					r.insideIgnored = false
				}
			case isWanted && !r.insideIgnored:
				if err := emit(Close{Name: name}); err != nil {
					r.buf.Reset()
					r.buf.WriteString(buf)
					return err
				}
				r.inside = false
			}
		}

		buf = buf[gt+1:]
	}

	r.buf.Reset()
	if r.inside && !r.insideIgnored && buf != "" {
		if err := emit(Payload{Text: buf}); err != nil {
			r.buf.WriteString(buf)
			return err
		}
		return nil
	}

	if len(buf) > tailKeep {
		buf = buf[len(buf)-tailKeep:]
	}
	r.buf.WriteString(buf)
	return nil
}

func firstToken(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
