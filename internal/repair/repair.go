// Package repair provides a fallback path for documents the lenient
// streaming pipeline can't make sense of at all (truncated mid-escape,
// badly malformed key/value), using a dedicated repair library rather than
// the incremental scanner/builder. Grounded on YaoApp/gou's json.Parse
// progressive-fallback chain (try strict, try decomment, try jsonrepair).
package repair

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"

	"github.com/iantbutler01/gasp/jsonvalue"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// RepairAndParse runs a whole (non-streaming) document through jsonrepair
// before parsing it, for callers that would rather accept a best-effort
// repaired document than a parse error. It does not understand the tag
// routing or lenient-dialect rules of the rest of gasp: it expects strict
// JSON once repaired.
func RepairAndParse(text string) (jsonvalue.Value, error) {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return jsonvalue.Value{}, err
	}

	var decoded any
	if err := api.UnmarshalFromString(repaired, &decoded); err != nil {
		return jsonvalue.Value{}, err
	}

	return jsonvalue.FromInterface(decoded), nil
}
