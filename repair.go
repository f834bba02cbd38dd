package gasp

import (
	"github.com/iantbutler01/gasp/internal/repair"
	"github.com/iantbutler01/gasp/jsonvalue"
)

// RepairParse is a fallback for a complete document the lenient streaming
// parser rejects outright: it runs the text through a dedicated JSON-repair
// pass and reparses strictly. Unlike Parse, it does not accept the lenient
// dialect (unquoted keys, single quotes, and so on) except to the extent
// the repair library itself tolerates them.
func RepairParse(text string) (jsonvalue.Value, error) {
	return repair.RepairAndParse(text)
}
