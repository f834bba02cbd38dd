package jsonscan

import "github.com/iantbutler01/gasp/perror"

// StepKind discriminates the three things a single NextStep call can report.
type StepKind int

const (
	StepEvent StepKind = iota
	StepNeedMore
	StepError
)

// Step is the result of one NextStep call: exactly one Event, a signal that
// more input is required before progress can resume, or a terminal error.
type Step interface {
	Kind() StepKind
}

// EventStep wraps a produced Event.
type EventStep struct{ Event Event }

func (EventStep) Kind() StepKind { return StepEvent }

// NeedMoreStep signals the scanner has consumed everything pushed so far and
// cannot make further progress without another Push.
type NeedMoreStep struct{}

func (NeedMoreStep) Kind() StepKind { return StepNeedMore }

// ErrorStep signals the input violates the dialect grammar. The scanner does
// not attempt to recover; callers should treat the whole stream as failed.
type ErrorStep struct{ Err *perror.ParseError }

func (ErrorStep) Kind() StepKind { return StepError }
