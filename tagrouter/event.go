package tagrouter

// TagEventKind discriminates the TagEvent variants, mirroring the
// Type()/UpdateType discriminator idiom the teacher uses for its Update
// interface (llms/update.go).
type TagEventKind int

const (
	TagEventOpen TagEventKind = iota
	TagEventPayload
	TagEventClose
)

// TagEvent is the closed set of events TagRouter emits while consuming a
// byte/text stream: a tag opening, a run of payload text, or a tag closing.
type TagEvent interface {
	Kind() TagEventKind
}

// Open fires when a wanted tag's opening `<Name>` (or `<Name attr=..>`) has
// been fully recognized.
type Open struct {
	Name string
}

func (Open) Kind() TagEventKind { return TagEventOpen }

// Payload carries a run of text belonging to the currently wanted region. It
// may also carry a verbatim `<...>...</...>` nested tag that is neither
// wanted nor ignored (spec.md §4.1, "Nested non-wanted, non-ignored tags").
type Payload struct {
	Text string
}

func (Payload) Kind() TagEventKind { return TagEventPayload }

// Close fires when a wanted tag's `</Name>` has been fully recognized.
type Close struct {
	Name string
}

func (Close) Kind() TagEventKind { return TagEventClose }
