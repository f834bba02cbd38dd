package gasp

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/iantbutler01/gasp/jsonscan"
	"github.com/iantbutler01/gasp/jsonvalue"
	"github.com/iantbutler01/gasp/tagrouter"
	"github.com/iantbutler01/gasp/treebuilder"
)

// Stream drives the full TagRouter -> Scanner -> Builder pipeline over an
// incrementally-delivered text stream, bounded to wanted/ignored tag regions,
// yielding the best-current-approximation of the captured JSON value after
// every Step call until the capturing region closes.
type Stream struct {
	id string

	router    *tagrouter.TagRouter
	capturing bool
	scanner   *jsonscan.Scanner
	builder   *treebuilder.Builder
	done      bool

	wanted  map[string]struct{}
	ignored map[string]struct{}

	log hclog.Logger

	debugPath   string
	debugTraces []debugTraceEntry
}

// New returns a Stream that only captures JSON from tags named in wanted
// (or, if wanted is empty, from any tag not named in ignored).
func New(wanted, ignored []string) *Stream {
	return &Stream{
		id:      uuid.NewString(),
		router:  tagrouter.NewWithFilter(wanted, ignored),
		wanted:  toLowerSet(wanted),
		ignored: toLowerSet(ignored),
		scanner: jsonscan.New(),
		builder: treebuilder.New(true),
		log:     hclog.NewNullLogger(),
	}
}

func toLowerSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// WithLogger attaches a logger to the stream, its tag router (which traces
// pushed chunks and payload text) and the builders created for later
// capturing regions.
// The stream itself logs only debug-trace write failures.
func (s *Stream) WithLogger(log hclog.Logger) *Stream {
	if log == nil {
		return s
	}
	s.log = log
	s.router = s.router.WithLogger(log)
	return s
}

// WithDebugTrace enables dumping a YAML trace of every Step call's input
// and resulting snapshot to path; the file is rewritten with the whole
// trace after each Step, mirroring the teacher's LLM.WithDebug() debug.yaml
// mechanism.
func (s *Stream) WithDebugTrace(path string) *Stream {
	s.debugPath = path
	return s
}

// ID returns the stream's correlation identifier, stable for its lifetime.
func (s *Stream) ID() string { return s.id }

// IsDone reports whether the wanted region has been closed and no further
// Step calls will produce new values.
func (s *Stream) IsDone() bool { return s.done }

// Step feeds the next chunk of text and returns the most recent value
// snapshot produced while processing it, or nil if nothing new was
// produced (e.g. payload arrived outside any wanted region, or the chunk
// held only part of a tag).
func (s *Stream) Step(chunk string) (*jsonvalue.Value, error) {
	if s.done {
		return nil, nil
	}

	var latest *jsonvalue.Value

	err := s.router.Push(chunk, func(ev tagrouter.TagEvent) error {
		switch e := ev.(type) {
		case tagrouter.Open:
			nameLower := strings.ToLower(e.Name)
			_, inWanted := s.wanted[nameLower]
			s.capturing = len(s.wanted) == 0 || inWanted
			if s.capturing {
				s.scanner = jsonscan.New()
				s.builder = treebuilder.New(true).WithLogger(s.log)
			}
			return nil

		case tagrouter.Payload:
			if !s.capturing {
				return nil
			}
			s.scanner.Push(e.Text)
		scanLoop:
			for {
				switch step := s.scanner.NextStep().(type) {
				case jsonscan.EventStep:
					snap, err := s.builder.FeedEvent(step.Event)
					if err != nil {
						return err
					}
					if p, ok := snap.(treebuilder.Partial); ok {
						v := unwrapSingleton(p.Value)
						latest = &v
					}
				case jsonscan.NeedMoreStep:
					v, err := s.builder.Finish()
					if err != nil {
						return err
					}
					v = unwrapSingleton(v)
					latest = &v
					break scanLoop
				case jsonscan.ErrorStep:
					return step.Err
				}
			}
			return nil

		case tagrouter.Close:
			nameLower := strings.ToLower(e.Name)
			_, inWanted := s.wanted[nameLower]
			isWanted := len(s.wanted) == 0 || inWanted
			if !s.capturing || !isWanted {
				return nil
			}
		drainLoop:
			for {
				switch step := s.scanner.NextStep().(type) {
				case jsonscan.EventStep:
					if _, err := s.builder.FeedEvent(step.Event); err != nil {
						return err
					}
				case jsonscan.NeedMoreStep:
					break drainLoop
				case jsonscan.ErrorStep:
					return step.Err
				}
			}
			v, err := s.builder.Finish()
			if err != nil {
				return err
			}
			v = unwrapSingleton(v)
			latest = &v
			s.done = true
			s.capturing = false
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.debugPath != "" {
		s.recordDebugTrace(chunk, latest)
	}

	return latest, nil
}

// unwrapSingleton drops one layer of array wrapping when the value is a
// single-element array, matching the teacher-domain's StreamParser-level
// defensive unwrap on top of Builder.Finish's own singleton unwrap.
func unwrapSingleton(v jsonvalue.Value) jsonvalue.Value {
	if v.Kind == jsonvalue.Array && len(v.ArrayVal) == 1 {
		return v.ArrayVal[0]
	}
	return v
}
