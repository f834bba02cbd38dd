package gasp

import "github.com/iantbutler01/gasp/perror"

// ErrorKind and ParseError are aliased from perror rather than redefined
// here, so jsonscan and treebuilder (which gasp itself depends on) can
// produce them without importing gasp and creating a cycle.
type ErrorKind = perror.ErrorKind
type ParseError = perror.ParseError

const (
	InvalidKey     = perror.InvalidKey
	InvalidEscape  = perror.InvalidEscape
	InvalidNumber  = perror.InvalidNumber
	UnexpectedEOF  = perror.UnexpectedEOF
	UnexpectedChar = perror.UnexpectedChar
)
