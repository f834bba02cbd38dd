package gasp

import (
	"os"

	"sigs.k8s.io/yaml"

	"github.com/iantbutler01/gasp/jsonvalue"
)

// debugTraceEntry is one Step call's input and resulting snapshot, recorded
// when WithDebugTrace is set.
type debugTraceEntry struct {
	Chunk    string      `json:"chunk"`
	Snapshot interface{} `json:"snapshot,omitempty"`
}

func (s *Stream) recordDebugTrace(chunk string, latest *jsonvalue.Value) {
	entry := debugTraceEntry{Chunk: chunk}
	if latest != nil {
		entry.Snapshot = latest.ToInterface()
	}
	s.debugTraces = append(s.debugTraces, entry)

	out, err := yaml.Marshal(s.debugTraces)
	if err != nil {
		s.log.Warn("failed to marshal debug trace", "error", err)
		return
	}
	if err := os.WriteFile(s.debugPath, out, 0o644); err != nil {
		s.log.Warn("failed to write debug trace", "path", s.debugPath, "error", err)
	}
}
