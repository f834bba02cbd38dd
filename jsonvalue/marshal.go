package jsonvalue

import jsoniter "github.com/json-iterator/go"

var marshalAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ToInterface converts a Value into the usual Go any-tree (map[string]any,
// []any, string, float64/int64, bool, nil) that jsoniter/encoding-json style
// consumers expect.
func (v Value) ToInterface() any {
	switch v.Kind {
	case Null:
		return nil
	case Bool:
		return v.BoolVal
	case Num:
		if v.NumberVal.Kind == Integer {
			return v.NumberVal.Int
		}
		return v.NumberVal.Float
	case String:
		return v.StringVal
	case Array:
		out := make([]any, len(v.ArrayVal))
		for i, item := range v.ArrayVal {
			out[i] = item.ToInterface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.ObjectVal))
		for k, item := range v.ObjectVal {
			out[k] = item.ToInterface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler (and is what jsoniter itself calls
// into) by delegating to jsoniter rather than the standard library encoder,
// matching YaoApp/gou's use of jsoniter as a drop-in faster replacement.
func (v Value) MarshalJSON() ([]byte, error) {
	return marshalAPI.Marshal(v.ToInterface())
}

// Marshal renders a Value as compact JSON text using jsoniter.
func Marshal(v Value) ([]byte, error) {
	return v.MarshalJSON()
}
