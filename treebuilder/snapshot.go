package treebuilder

import "github.com/iantbutler01/gasp/jsonvalue"

// SnapshotKind discriminates the Snapshot variants.
type SnapshotKind int

const (
	SnapshotPartial SnapshotKind = iota
	SnapshotComplete
)

// Snapshot is what FeedEvent hands back after an event that changed the
// best-current-approximation of the value being built: either a partial
// value (still streaming) or the finished root value.
type Snapshot interface {
	Kind() SnapshotKind
}

// Partial carries the live, possibly-incomplete value along with the path
// to whichever scalar is still being accumulated.
type Partial struct {
	Path  jsonvalue.Path
	Value jsonvalue.Value
}

func (Partial) Kind() SnapshotKind { return SnapshotPartial }

// Complete carries a finished root value. Builder.FeedEvent does not return
// it in either mode: a completed root is kept in the implicit top-level
// array, and the final value comes from Builder.Finish.
type Complete struct {
	Value jsonvalue.Value
}

func (Complete) Kind() SnapshotKind { return SnapshotComplete }
