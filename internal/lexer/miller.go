package lexer

import (
	"strconv"
	"strings"
)

// ParseMillerPayload splits the raw text of a Miller-index literal (as
// returned by Lexer.ScanMillerPayload) into its signed integer components.
//
// Two literal styles are supported, selected by whether the payload
// contains whitespace: a dense form ("10-11", "111") where
// each optionally-signed single digit is one component, or a
// space-separated form ("12 3 4") where each whitespace-separated signed
// integer (of any width) is one component. Mixing the two styles in one
// payload is a lex error.
func ParseMillerPayload(payload string, pos Position) ([]int, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil, errAt(pos, "empty Miller index")
	}

	if strings.ContainsAny(trimmed, " \t\n") {
		fields := strings.Fields(trimmed)
		out := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errAt(pos, "malformed Miller index component %q", f)
			}
			out = append(out, n)
		}
		if len(out) != 3 && len(out) != 4 {
			return nil, errAt(pos, "Miller index must have 3 or 4 components, got %d", len(out))
		}
		return out, nil
	}

	var out []int
	i := 0
	for i < len(trimmed) {
		sign := 1
		if trimmed[i] == '-' {
			sign = -1
			i++
			if i >= len(trimmed) {
				return nil, errAt(pos, "dangling '-' in Miller index %q", trimmed)
			}
		}
		c := trimmed[i]
		if c < '0' || c > '9' {
			return nil, errAt(pos, "malformed Miller index %q: expected digit, found %q", trimmed, string(c))
		}
		out = append(out, sign*int(c-'0'))
		i++
	}
	if len(out) != 3 && len(out) != 4 {
		return nil, errAt(pos, "Miller index must have 3 or 4 components, got %d", len(out))
	}
	return out, nil
}
