package treebuilder

import (
	"strconv"
	"strings"

	"github.com/iantbutler01/gasp/jsonvalue"
	"github.com/iantbutler01/gasp/perror"
)

// parseIdent recognizes the bare keywords of the dialect, including any
// prefix of one (so a still-streaming "tru" reads as true rather than an
// error), matching spec.md §4.3's "bare-identifier finalisation".
func parseIdent(buf string) (jsonvalue.Value, bool) {
	switch buf {
	case "t", "tr", "tru", "true":
		return jsonvalue.BoolValue(true), true
	case "f", "fa", "fal", "fals", "false":
		return jsonvalue.BoolValue(false), true
	case "n", "nu", "nul", "null":
		return jsonvalue.NullValue(), true
	default:
		return jsonvalue.Value{}, false
	}
}

// parseNumber cooks a raw number token: a leading bare '.' (optionally
// signed) is treated as "0.", and any trailing run of delimiter/operator
// characters left over from streaming boundaries is trimmed before the
// numeric parse (spec.md §4.3, "Number finalisation").
func parseNumber(raw string) (jsonvalue.Number, error) {
	cooked := raw
	switch {
	case strings.HasPrefix(raw, "."):
		cooked = "0" + raw
	case strings.HasPrefix(raw, "-.") || strings.HasPrefix(raw, "+."):
		cooked = raw[:1] + "0" + raw[1:]
	}

	for len(cooked) > 0 && strings.ContainsRune("},] \n\r\t-+.eE", rune(cooked[len(cooked)-1])) {
		cooked = cooked[:len(cooked)-1]
	}

	if strings.ContainsAny(cooked, ".eE") {
		f, err := strconv.ParseFloat(cooked, 64)
		if err != nil {
			return jsonvalue.Number{}, perror.NewInvalidNumber(cooked)
		}
		return jsonvalue.FloatNumber(f), nil
	}
	i, err := strconv.ParseInt(cooked, 10, 64)
	if err != nil {
		return jsonvalue.Number{}, perror.NewInvalidNumber(cooked)
	}
	return jsonvalue.IntNumber(i), nil
}

// unescape decodes the dialect's escape set over a fully assembled raw
// string. Each \uXXXX becomes exactly one rune from its code point; no
// surrogate-pair combination is attempted (spec.md §4.3 Non-goals).
func unescape(src string) (string, error) {
	runes := []rune(src)
	var out strings.Builder
	out.Grow(len(src))

	for i := 0; i < len(runes); {
		c := runes[i]
		if c != '\\' {
			out.WriteRune(c)
			i++
			continue
		}
		i++
		if i >= len(runes) {
			return "", perror.ErrInvalidEscape
		}
		switch runes[i] {
		case '"':
			out.WriteRune('"')
			i++
		case '\\':
			out.WriteRune('\\')
			i++
		case '/':
			out.WriteRune('/')
			i++
		case 'b':
			out.WriteRune('\b')
			i++
		case 'f':
			out.WriteRune('\f')
			i++
		case 'n':
			out.WriteRune('\n')
			i++
		case 'r':
			out.WriteRune('\r')
			i++
		case 't':
			out.WriteRune('\t')
			i++
		case '\'':
			out.WriteRune('\'')
			i++
		case 'u':
			i++
			if i+4 > len(runes) {
				return "", perror.ErrInvalidEscape
			}
			hex := string(runes[i : i+4])
			cp, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return "", perror.ErrInvalidEscape
			}
			out.WriteRune(rune(cp))
			i += 4
		default:
			return "", perror.ErrInvalidEscape
		}
	}
	return out.String(), nil
}

// squashWS collapses runs of whitespace to a single space, applied to
// unquoted string values so a multi-line bare token reads naturally.
func squashWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
