package jsonvalue

import "strconv"

// PathItemKind discriminates the two ways a Path can address a location.
type PathItemKind int

const (
	PathKey PathItemKind = iota
	PathIndex
)

// PathItem is one step of a Path: either an object key or an array index.
type PathItem struct {
	Kind  PathItemKind
	Key   string
	Index int
}

// KeyItem builds a PathItem addressing an object field.
func KeyItem(key string) PathItem { return PathItem{Kind: PathKey, Key: key} }

// IndexItem builds a PathItem addressing an array element.
func IndexItem(index int) PathItem { return PathItem{Kind: PathIndex, Index: index} }

// Path is an ordered sequence of PathItems from the root to the in-progress
// scalar (see spec.md §3, "Invariants (Builder)").
type Path []PathItem

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) String() string {
	out := ""
	for _, item := range p {
		switch item.Kind {
		case PathKey:
			out += "." + item.Key
		case PathIndex:
			out += "[" + strconv.Itoa(item.Index) + "]"
		}
	}
	return out
}
