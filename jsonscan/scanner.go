package jsonscan

import (
	"unicode/utf8"

	"github.com/iantbutler01/gasp/perror"
)

type lexState int

const (
	stateOuter lexState = iota
	stateInString
	stateInEscape
	stateInUnicodeEscape
	stateInNumber
	stateInIdent
)

// Scanner tokenizes a lenient JSON dialect from text delivered in arbitrary
// pushes. It holds only the unconsumed remainder of the stream plus whatever
// sub-token state is needed to resume mid-scalar; it never retains the full
// history of everything pushed (spec.md §5, "bounded per-layer buffering").
type Scanner struct {
	buf string
	pos int

	state    lexState
	tokStart int

	stringQuote     byte
	unicodeHexCount int
}

// New returns a Scanner ready to receive its first Push.
func New() *Scanner {
	return &Scanner{state: stateOuter}
}

// Push appends the next fragment of text to the scanner's input. It does not
// itself produce events; call NextStep repeatedly afterward.
func (s *Scanner) Push(text string) {
	if s.pos == 0 {
		s.buf += text
		return
	}
	remainder := s.buf[s.pos:]
	newTokStart := s.tokStart - s.pos
	if newTokStart < 0 {
		newTokStart = 0
	}
	s.buf = remainder + text
	s.tokStart = newTokStart
	s.pos = 0
}

// ResetTokBufAndLexerStateIfMidScalar discards any in-progress scalar token
// and returns the lexer to its outer state, so that text pushed afterwards
// (for example a new capturing region after a wanted tag's </Name>) starts
// clean rather than splicing unrelated text onto a dangling token. Stream
// does not call it; it creates a fresh Scanner for each capturing region.
func (s *Scanner) ResetTokBufAndLexerStateIfMidScalar() {
	switch s.state {
	case stateInString, stateInEscape, stateInUnicodeEscape, stateInNumber, stateInIdent:
		s.state = stateOuter
		s.tokStart = s.pos
	}
}

// NextStep advances the scanner by at most one Event and reports what
// happened: an Event was produced, more input is needed, or the input
// violates the dialect grammar.
func (s *Scanner) NextStep() Step {
	switch s.state {
	case stateOuter:
		return s.stepOuter()
	case stateInString, stateInEscape, stateInUnicodeEscape:
		return s.stepString()
	case stateInNumber:
		return s.stepNumber()
	case stateInIdent:
		return s.stepIdent()
	default:
		return NeedMoreStep{}
	}
}

func (s *Scanner) stepOuter() Step {
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == ':':
			s.pos++
			continue
		case c == '{':
			s.pos++
			return EventStep{StartObject{}}
		case c == '}':
			s.pos++
			return EventStep{EndObject{}}
		case c == '[':
			s.pos++
			return EventStep{StartArray{}}
		case c == ']':
			s.pos++
			return EventStep{EndArray{}}
		case c == '"' || c == '\'':
			s.stringQuote = c
			s.pos++
			s.tokStart = s.pos
			s.state = stateInString
			return s.stepString()
		case isNumberStart(c):
			s.tokStart = s.pos
			s.state = stateInNumber
			return s.stepNumber()
		case isIdentStart(c):
			s.tokStart = s.pos
			s.state = stateInIdent
			return s.stepIdent()
		default:
			r, _ := utf8.DecodeRuneInString(s.buf[s.pos:])
			return ErrorStep{perror.NewUnexpectedChar(r)}
		}
	}
	return NeedMoreStep{}
}

func (s *Scanner) stepString() Step {
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		switch s.state {
		case stateInString:
			switch c {
			case s.stringQuote:
				frag := s.buf[s.tokStart:s.pos]
				s.pos++
				s.state = stateOuter
				return EventStep{StrEnd{Text: frag}}
			case '\\':
				s.pos++
				s.state = stateInEscape
			default:
				s.pos++
			}
		case stateInEscape:
			switch c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.pos++
				s.state = stateInString
			case '\'':
				// Only meaningful inside single-quoted strings, but harmless
				// to accept unconditionally.
				s.pos++
				s.state = stateInString
			case 'u':
				s.pos++
				s.state = stateInUnicodeEscape
				s.unicodeHexCount = 0
			default:
				return ErrorStep{perror.ErrInvalidEscape}
			}
		case stateInUnicodeEscape:
			if !isHexDigit(c) {
				return ErrorStep{perror.ErrInvalidEscape}
			}
			s.pos++
			s.unicodeHexCount++
			if s.unicodeHexCount == 4 {
				s.state = stateInString
			}
		}
	}

	if s.pos > s.tokStart {
		frag := s.buf[s.tokStart:s.pos]
		s.tokStart = s.pos
		return EventStep{StrChunk{Text: frag}}
	}
	return NeedMoreStep{}
}

func (s *Scanner) stepNumber() Step {
	for s.pos < len(s.buf) && isNumberChar(s.buf[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.buf) {
		frag := s.buf[s.tokStart:s.pos]
		s.state = stateOuter
		return EventStep{NumberEnd{Text: frag}}
	}
	if s.pos > s.tokStart {
		frag := s.buf[s.tokStart:s.pos]
		s.tokStart = s.pos
		return EventStep{NumberChunk{Text: frag}}
	}
	return NeedMoreStep{}
}

func (s *Scanner) stepIdent() Step {
	for s.pos < len(s.buf) && isIdentChar(s.buf[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.buf) {
		frag := s.buf[s.tokStart:s.pos]
		s.state = stateOuter
		return EventStep{IdentEnd{Text: frag}}
	}
	if s.pos > s.tokStart {
		frag := s.buf[s.tokStart:s.pos]
		s.tokStart = s.pos
		return EventStep{IdentChunk{Text: frag}}
	}
	return NeedMoreStep{}
}

func isNumberStart(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.'
}

func isNumberChar(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
