// Package gasp extracts JSON values embedded in tag-delimited regions of an
// incrementally-delivered text stream (typically LLM output), tolerating a
// lenient JSON dialect and reporting a live best-current-approximation of
// the value as each chunk arrives.
package gasp

import (
	"github.com/iantbutler01/gasp/jsonscan"
	"github.com/iantbutler01/gasp/jsonvalue"
	"github.com/iantbutler01/gasp/treebuilder"
)

// Parser is a one-shot (non-streaming) parser for the lenient dialect: it
// accumulates pushed text and only yields a value once the input is fully
// consumed, via Finish.
type Parser struct {
	scanner *jsonscan.Scanner
	builder *treebuilder.Builder
}

// NewParser returns a Parser ready to accept text via Parse.
func NewParser() *Parser {
	return &Parser{scanner: jsonscan.New(), builder: treebuilder.New(false)}
}

// WithStrictRoot disables the implicit top-level-array unwrap (spec.md §9,
// "expose a flag if a strict root is desired"): a single juxtaposed root
// value stays wrapped in its one-element array instead of being unwrapped,
// so callers can tell "one bare value" apart from "one value produced by
// juxtaposition".
func (p *Parser) WithStrictRoot() *Parser {
	p.builder.DisableImplicitArrayUnwrap()
	return p
}

// Parse feeds text to the parser and drives it to completion, returning the
// fully assembled value. Call it once per complete document; for a document
// delivered across multiple chunks use Stream instead.
func (p *Parser) Parse(text string) (jsonvalue.Value, error) {
	p.scanner.Push(text)
	for {
		switch step := p.scanner.NextStep().(type) {
		case jsonscan.EventStep:
			snap, err := p.builder.FeedEvent(step.Event)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			if c, ok := snap.(treebuilder.Complete); ok {
				return c.Value, nil
			}
		case jsonscan.NeedMoreStep:
			return p.builder.Finish()
		case jsonscan.ErrorStep:
			return jsonvalue.Value{}, step.Err
		}
	}
}

// Parse is a convenience wrapper for parsing a single, complete document in
// one call.
func Parse(text string) (jsonvalue.Value, error) {
	return NewParser().Parse(text)
}

// Marshal renders a Value as compact JSON text, for callers (like
// cmd/gaspdemo) that want to print a Stream.Step snapshot without reaching
// into the jsonvalue package directly.
func Marshal(v jsonvalue.Value) ([]byte, error) {
	return jsonvalue.Marshal(v)
}
